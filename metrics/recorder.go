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

package metrics

import "time"

// Report kinds used as label values.
const (
	KindSimilarity     = "similarity"
	KindMedoid         = "medoid"
	KindClassification = "classification"
	KindAnnotate       = "annotate"
	KindSegments       = "segments"
	KindUnits          = "units"
	KindNormalize      = "normalize"
)

// Recorder observes an analysis run.
type Recorder interface {
	// TableLoaded is called once per table with its dimensions and
	// content fingerprint.
	TableLoaded(witnesses, sites int, fingerprint string)
	// Compared counts pairwise witness comparisons.
	Compared(pairs int)
	// Classified counts confusion matrices computed.
	Classified(cells int)
	// SegmentsSelected counts apparatus segments written by a filter.
	SegmentsSelected(kind string, n int)
	// ReportDone records how long a report took.
	ReportDone(kind string, d time.Duration)
}

// Noop is a Recorder that records nothing.
type Noop struct{}

var _ Recorder = Noop{}

func (Noop) TableLoaded(_, _ int, _ string)       {}
func (Noop) Compared(_ int)                       {}
func (Noop) Classified(_ int)                     {}
func (Noop) SegmentsSelected(_ string, _ int)     {}
func (Noop) ReportDone(_ string, _ time.Duration) {}
