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
	"bufio"
	"fmt"
	"io"

	"github.com/poiesic/stemma/classify"
	"github.com/poiesic/stemma/core"
	"github.com/poiesic/stemma/medoid"
	"github.com/poiesic/stemma/similarity"
)

const (
	similarityFormat = "%-10s %-10s  |O: %0.03f %5d %5d  |A: %0.03f %5d %5d  |AB: %0.03f %5d %5d  |B: %0.03f %5d %5d  || %g\n"
	medoidFormat     = "%-12s %8.04f\n"
	phiFormat        = "%4d %c phi: %7.04f "
	phiVerboseFormat = "%4d %c phi: %7.04f %7.04f %7.04f %7g "
)

// WriteSimilarity writes one line comparing ms with every witness of t,
// itself included, in table order. Each line carries the rate, agreements
// and eligible sites of types O, A, AB and B, then the relationship number.
// It returns the number of comparisons written.
func WriteSimilarity(w io.Writer, t *core.Table, ms *core.Witness) (int, error) {
	bw := bufio.NewWriter(w)
	for _, ll := range t.Witnesses {
		res := similarity.Compare(t, ms, ll)
		rn := similarity.RelationshipNumber(t, ms, ll)
		fmt.Fprintf(bw, similarityFormat,
			ms.Name, ll.Name,
			res.O.Rate(), res.O.Agreements, res.O.Eligible,
			res.A.Rate(), res.A.Agreements, res.A.Eligible,
			res.AB.Rate(), res.AB.Agreements, res.AB.Eligible,
			res.B.Rate(), res.B.Agreements, res.B.Eligible,
			rn)
	}
	return len(t.Witnesses), bw.Flush()
}

// WriteMedoids writes the ranked witnesses with their distance sums.
// A positive limit keeps only the first limit entries.
func WriteMedoids(w io.Writer, ranked []medoid.Ranked, limit int) error {
	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}
	bw := bufio.NewWriter(w)
	for _, r := range ranked {
		fmt.Fprintf(bw, medoidFormat, r.Witness.Name, r.Score)
	}
	return bw.Flush()
}

// WriteClassification writes the phi coefficient of every (site, variant)
// pair against the selection set of t. After the score come the selected
// witnesses reading the variant, then between "[!" and "!]" the selected
// witnesses that do not, then the unselected witnesses that do.
// It returns the number of pairs written.
func WriteClassification(w io.Writer, t *core.Table) (int, error) {
	return writeClassification(w, t, false)
}

// WriteClassificationVerbose is WriteClassification with the true positive
// rate, true negative rate and diagnostic odds ratio after phi.
func WriteClassificationVerbose(w io.Writer, t *core.Table) (int, error) {
	return writeClassification(w, t, true)
}

func writeClassification(w io.Writer, t *core.Table, verbose bool) (int, error) {
	bw := bufio.NewWriter(w)
	n := 0
	classify.Scan(t, classify.InSelection, func(c classify.Cell) {
		n++
		cm := c.Matrix
		if verbose {
			fmt.Fprintf(bw, phiVerboseFormat, c.Site, c.Variant, cm.MCC, cm.TPR, cm.TNR, cm.DOR)
		} else {
			fmt.Fprintf(bw, phiFormat, c.Site, c.Variant, cm.MCC)
		}
		writeNames(bw, t, c.Site, func(w *core.Witness, rdg byte) bool {
			return w.InSelectionSet && rdg == c.Variant
		})
		bw.WriteString(" [!")
		writeNames(bw, t, c.Site, func(w *core.Witness, rdg byte) bool {
			return w.InSelectionSet && rdg != c.Variant
		})
		bw.WriteString(" !]")
		writeNames(bw, t, c.Site, func(w *core.Witness, rdg byte) bool {
			return !w.InSelectionSet && rdg == c.Variant
		})
		bw.WriteString("\n")
	})
	return n, bw.Flush()
}

func writeNames(bw *bufio.Writer, t *core.Table, site int, keep func(*core.Witness, byte) bool) {
	for _, w := range t.Witnesses {
		if keep(w, w.Readings[site]) {
			bw.WriteString(" ")
			bw.WriteString(w.Name)
		}
	}
}
