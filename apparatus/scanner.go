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
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/poiesic/stemma/core"
)

// LemmaLabelWidth is the width of the label that prefixes every lemma line.
const LemmaLabelWidth = 6

// Kind classifies an apparatus line.
type Kind int

const (
	// Other is any line the format does not define.
	Other Kind = iota
	// Verse is a verse or location marker ('@').
	Verse
	// Lemma is the base text ('>').
	Lemma
	// Segment opens a variation unit ('^').
	Segment
	// Variant is a variant detail line ('=').
	Variant
	// Blank ends the current segment.
	Blank
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Verse:
		return "verse"
	case Lemma:
		return "lemma"
	case Segment:
		return "segment"
	case Variant:
		return "variant"
	case Blank:
		return "blank"
	}
	return "other"
}

// Line is one classified line of an apparatus stream, without its newline.
type Line struct {
	Kind Kind
	Text string
	No   int // 1-based line number
}

// Payload returns the line with its prefix removed: the first byte for
// segment and variant lines, the label for lemma lines.
func (l Line) Payload() string {
	switch l.Kind {
	case Segment, Variant:
		return l.Text[1:]
	case Lemma:
		if len(l.Text) <= LemmaLabelWidth {
			return ""
		}
		return l.Text[LemmaLabelWidth:]
	}
	return l.Text
}

// SegmentNumber parses the number of a segment header the way atoi does:
// leading blanks, an optional sign, then digits; anything else yields 0.
func (l Line) SegmentNumber() int {
	s := strings.TrimLeft(l.Payload(), " \t")
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n := 0
	for i := 0; i < len(s) && core.IsDigit(s[i]); i++ {
		n = n*10 + int(s[i]-'0')
	}
	if neg {
		return -n
	}
	return n
}

// Classify returns the kind of a line without its newline.
func Classify(text string) Kind {
	if text == "" {
		return Blank
	}
	switch text[0] {
	case '@':
		return Verse
	case '>':
		return Lemma
	case '^':
		return Segment
	case '=':
		return Variant
	}
	return Other
}

// Scanner reads an apparatus stream line by line. Lines may be of any
// length.
type Scanner struct {
	r    *bufio.Reader
	line Line
	no   int
	err  error
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{r: bufio.NewReader(r)}
}

// Scan advances to the next line. It returns false at end of input or on
// a read error, which Err reports.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	text, err := s.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		s.err = fmt.Errorf("%w: line %d: %w", core.ErrIO, s.no+1, err)
		return false
	}
	if text == "" && err != nil {
		return false
	}
	s.no++
	text = strings.TrimSuffix(text, "\n")
	s.line = Line{Kind: Classify(text), Text: text, No: s.no}
	return true
}

// Line returns the most recent line read by Scan.
func (s *Scanner) Line() Line {
	return s.line
}

// Err returns the first read error, if any.
func (s *Scanner) Err() error {
	return s.err
}
