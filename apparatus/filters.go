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
	"strings"
)

// unitIndent prefixes every variant row written by ExtractUnits.
const unitIndent = "      "

// SelectSegments copies from r to w the segments whose number is in ids.
// Segment 0 is never selected.
func SelectSegments(w io.Writer, r io.Reader, ids []int) (Stats, error) {
	want := make(map[int]bool, len(ids))
	for _, id := range ids {
		if id != 0 {
			want[id] = true
		}
	}

	sel := &selector{
		w:      bufio.NewWriter(w),
		choose: func(n int) bool { return want[n] },
	}
	return sel.run(r)
}

// ExtractUnits writes the variant units in which any of the named witnesses
// is cited. A witness is cited on a variant line when its name appears
// between blanks. Each kept variant becomes a row of the variant code
// followed by one column per witness, blank where the witness is not cited.
//
// Verse markers and lemmas are copied through. The segment header is
// written before the first kept row of its segment. With more than one
// witness, a lacuna row ('?') is never the first row written for a
// segment.
func ExtractUnits(w io.Writer, r io.Reader, names []string) (Stats, error) {
	bw := bufio.NewWriter(w)
	var stats Stats

	var unit string
	newUnit := false

	sc := NewScanner(r)
	for sc.Scan() {
		line := sc.Line()
		stats.Lines++

		switch line.Kind {
		case Verse:
			bw.WriteString(line.Text)
			bw.WriteString("\n")

		case Lemma:
			bw.WriteString(line.Payload())
			bw.WriteString("\n")

		case Segment:
			stats.Segments++
			unit = line.Payload()
			newUnit = true

		case Variant:
			row, found := unitRow(line, names)
			if !found {
				continue
			}
			code := variantCode(line)
			if newUnit && code == '?' && len(names) > 1 {
				continue
			}
			if newUnit {
				bw.WriteString(unit)
				bw.WriteString("\n")
				stats.Selected++
			}
			bw.WriteString(row)
			newUnit = false
		}
	}
	if err := sc.Err(); err != nil {
		return stats, err
	}
	return stats, bw.Flush()
}

func variantCode(line Line) byte {
	if len(line.Text) < 2 {
		return ' '
	}
	return line.Text[1]
}

// unitRow lays out one variant line as a row of witness columns.
func unitRow(line Line, names []string) (string, bool) {
	var b strings.Builder
	b.WriteString(unitIndent)
	b.WriteByte(variantCode(line))

	found := false
	for _, name := range names {
		needle := " " + name + " "
		if strings.Contains(line.Text, needle) {
			found = true
			b.WriteString(" ")
			b.WriteString(name)
		} else {
			b.WriteString(strings.Repeat(" ", len(needle)-1))
		}
	}
	b.WriteString("\n")
	return b.String(), found
}

// Normalize copies r to w line by line, dropping carriage returns and
// trailing blanks. Every line written ends in a newline, including a final
// line that had none.
func Normalize(w io.Writer, r io.Reader) (Stats, error) {
	bw := bufio.NewWriter(w)
	var stats Stats

	sc := NewScanner(r)
	for sc.Scan() {
		stats.Lines++
		text := strings.ReplaceAll(sc.Line().Text, "\r", "")
		bw.WriteString(strings.TrimRight(text, " \t"))
		bw.WriteString("\n")
	}
	if err := sc.Err(); err != nil {
		return stats, err
	}
	return stats, bw.Flush()
}
