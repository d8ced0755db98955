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

package apparatus

import (
	"bufio"
	"io"
)

// Stats summarizes one filtering pass.
type Stats struct {
	Lines    int // lines read
	Segments int // segment headers seen
	Selected int // segments written
}

// selector writes the segments chosen by a predicate, preceded by the
// verse marker and lemma still pending when each is chosen.
type selector struct {
	w *bufio.Writer

	verse, lemma       string
	newVerse, newLemma bool
	selected           bool

	// choose decides whether the segment numbered n is written.
	choose func(n int) bool
	// preamble, when set, returns extra lines written after the pending
	// verse and lemma and before the segment header.
	preamble func(n int) []string

	stats Stats
}

func (s *selector) run(r io.Reader) (Stats, error) {
	sc := NewScanner(r)
	for sc.Scan() {
		s.feed(sc.Line())
	}
	if err := sc.Err(); err != nil {
		return s.stats, err
	}
	return s.stats, s.w.Flush()
}

func (s *selector) feed(line Line) {
	s.stats.Lines++

	switch line.Kind {
	case Verse:
		s.verse = line.Text
		s.newVerse = true

	case Lemma:
		s.lemma = line.Payload()
		s.newLemma = true

	case Segment:
		s.stats.Segments++
		if s.selected {
			s.w.WriteString("\n")
		}
		n := line.SegmentNumber()
		s.selected = s.choose(n)
		if !s.selected {
			return
		}
		s.stats.Selected++
		if s.newVerse {
			s.writeLine(s.verse)
			s.newVerse = false
		}
		if s.newLemma {
			s.writeLine(s.lemma)
			s.newLemma = false
		}
		if s.preamble != nil {
			for _, extra := range s.preamble(n) {
				s.writeLine(extra)
			}
		}
		s.writeLine(line.Payload())

	case Variant:
		if s.selected {
			s.writeLine(line.Payload())
		}

	case Blank:
		if s.selected {
			s.w.WriteString("\n")
		}
		s.selected = false
	}
}

func (s *selector) writeLine(text string) {
	s.w.WriteString(text)
	s.w.WriteString("\n")
}
