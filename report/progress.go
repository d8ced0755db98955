// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package report

import (
	"fmt"
	"io"
	"time"
)

// ProgressTracker prints a single self-overwriting progress line while a
// long computation runs. It is driven by Observe, which has the shape of
// medoid.ProgressFunc.
type ProgressTracker struct {
	writer   io.Writer
	unit     string
	interval int

	total    int
	current  int
	reported int

	startTime time.Time
	started   bool
	finished  bool

	now func() time.Time
}

// NewProgressTracker returns a tracker writing to writer. unit names the
// items counted, interval is the minimum advance between two reports.
func NewProgressTracker(writer io.Writer, unit string, interval int) *ProgressTracker {
	if interval < 1 {
		interval = 1
	}
	return &ProgressTracker{
		writer:   writer,
		unit:     unit,
		interval: interval,
		now:      time.Now,
	}
}

// Observe records that done of total items are complete. The first call
// starts the clock. Reaching total finishes the line.
func (p *ProgressTracker) Observe(done, total int) {
	if p.finished {
		return
	}
	if !p.started {
		p.startTime = p.now()
		p.started = true
	}

	p.total = total
	p.current = min(done, total)

	if p.current >= p.total {
		p.Finish()
		return
	}
	if p.current-p.reported >= p.interval {
		p.report()
		p.reported = p.current
	}
}

// Finish prints the final count and ends the progress line.
// It does nothing if Observe was never called.
func (p *ProgressTracker) Finish() {
	if !p.started || p.finished {
		return
	}
	p.finished = true
	p.current = p.total
	p.report()
	fmt.Fprintln(p.writer)
}

// Elapsed returns the time since the first Observe.
func (p *ProgressTracker) Elapsed() time.Duration {
	if !p.started {
		return 0
	}
	return p.now().Sub(p.startTime)
}

func (p *ProgressTracker) report() {
	rate := 0.0
	if secs := p.Elapsed().Seconds(); secs > 0 {
		rate = float64(p.current) / secs
	}

	percentage := 100.0
	if p.total > 0 {
		percentage = float64(p.current) / float64(p.total) * 100.0
	}

	fmt.Fprintf(p.writer, "\rProgress: %d/%d %s (%.1f%%) - %.1f %s/s",
		p.current, p.total, p.unit, percentage, rate, p.unit)
}
