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
	"fmt"
	"io"

	"github.com/poiesic/stemma/core"
	"github.com/poiesic/stemma/similarity"
)

// DefaultRestLabel names agreement in the unmarked majority reading.
const DefaultRestLabel = "rest"

// AnnotateOption configures Annotate.
type AnnotateOption func(*annotateOptions)

type annotateOptions struct {
	restLabel string
}

// WithRestLabel overrides the label of the baseline agreement line.
// An empty label keeps the default.
func WithRestLabel(label string) AnnotateOption {
	return func(o *annotateOptions) {
		if label != "" {
			o.restLabel = label
		}
	}
}

// RestLine returns the line written before a segment where ms1 and ms2
// agree in the baseline reading.
func RestLine(label, ms1, ms2 string) string {
	return fmt.Sprintf("  %s: %s %s", label, ms1, ms2)
}

// Annotate copies from r to w the segments at which ms1 and ms2 agree
// under any agreement type in mask.
//
// Segment n refers to site n-1 of the table; segments outside the table
// are dropped. When ms1 reads the baseline digit at a kept segment, a
// RestLine is written ahead of the segment header.
func Annotate(w io.Writer, r io.Reader, t *core.Table, mask similarity.Mask, ms1, ms2 *core.Witness, opts ...AnnotateOption) (Stats, error) {
	if t == nil {
		return Stats{}, ErrTableRequired
	}
	if ms1 == nil || ms2 == nil {
		return Stats{}, ErrWitnessRequired
	}
	if mask == 0 {
		return Stats{}, ErrNoAgreementType
	}

	o := &annotateOptions{restLabel: DefaultRestLabel}
	for _, opt := range opts {
		opt(o)
	}

	agreement := similarity.Compare(t, ms1, ms2).Mask
	rest := RestLine(o.restLabel, ms1.Name, ms2.Name)

	sel := &selector{
		w: bufio.NewWriter(w),
		choose: func(n int) bool {
			site := n - 1
			return site >= 0 && site < t.NumSites && agreement[site].Has(mask)
		},
		preamble: func(n int) []string {
			if ms1.Readings[n-1] == core.Baseline {
				return []string{rest}
			}
			return nil
		},
	}
	return sel.run(r)
}

// AnnotateByName resolves ms1 and ms2 in t and calls Annotate. A name that
// does not resolve fails with an error wrapping core.ErrNotFound before
// anything is read or written.
func AnnotateByName(w io.Writer, r io.Reader, t *core.Table, mask similarity.Mask, ms1, ms2 string, opts ...AnnotateOption) (Stats, error) {
	if t == nil {
		return Stats{}, ErrTableRequired
	}
	w1, err := t.Find(ms1)
	if err != nil {
		return Stats{}, err
	}
	w2, err := t.Find(ms2)
	if err != nil {
		return Stats{}, err
	}
	return Annotate(w, r, t, mask, w1, w2, opts...)
}
