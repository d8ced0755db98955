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

package classify

import (
	"math"

	"github.com/poiesic/stemma/core"
)

// haldane is added to every cell of the odds ratio so it is always finite.
const haldane = 0.5

// ConfusionMatrix holds the counts and derived statistics for one
// (site, variant) pair.
type ConfusionMatrix struct {
	TP int // reads variant, in subset
	FP int // reads variant, not in subset
	FN int // other reading, in subset
	TN int // other reading, not in subset

	TPR float64 // sensitivity, recall
	TNR float64 // specificity
	DOR float64 // diagnostic odds ratio
	MCC float64 // Matthews correlation coefficient, phi
}

// Population returns the number of witnesses classified.
func (cm ConfusionMatrix) Population() int {
	return cm.TP + cm.FP + cm.FN + cm.TN
}

// Subset reports whether a witness belongs to the group being predicted.
type Subset func(w *core.Witness) bool

// InSelection is the Subset of witnesses marked in the selection set.
func InSelection(w *core.Witness) bool {
	return w.InSelectionSet
}

// Classify builds the confusion matrix of variant at site against subset.
// Lacunose witnesses are left out of every cell. A nil subset means
// InSelection.
func Classify(t *core.Table, site int, variant byte, subset Subset) ConfusionMatrix {
	if subset == nil {
		subset = InSelection
	}

	var cm ConfusionMatrix
	for _, w := range t.Witnesses {
		rdg := w.Readings[site]
		if rdg == core.Lacuna {
			continue
		}
		in := subset(w)
		switch {
		case rdg == variant && in:
			cm.TP++
		case rdg == variant:
			cm.FP++
		case in:
			cm.FN++
		default:
			cm.TN++
		}
	}

	cm.derive()
	return cm
}

func (cm *ConfusionMatrix) derive() {
	tp, fp := float64(cm.TP), float64(cm.FP)
	fn, tn := float64(cm.FN), float64(cm.TN)

	pos := tp + fn // actual members
	neg := fp + tn // actual non-members
	pp := tp + fp  // predicted members
	pn := fn + tn  // predicted non-members

	cm.TPR = ratio(tp, pos)
	cm.TNR = ratio(tn, neg)

	cm.DOR = (tp + haldane) * (tn + haldane) / ((fp + haldane) * (fn + haldane))

	sq := pos * neg * pp * pn
	if sq > 0 {
		cm.MCC = (tp*tn - fp*fn) / math.Sqrt(sq)
	} else {
		cm.MCC = 0.0
	}
}

// ratio returns num/den, or NaN when den is 0.
func ratio(num, den float64) float64 {
	if den == 0 {
		return math.NaN()
	}
	return num / den
}

// Cell is one (site, variant) pair visited by Scan.
type Cell struct {
	Site    int
	Variant byte
	Matrix  ConfusionMatrix
}

// Scan classifies every digit variant from '0' up to the maximum reading of
// each site, in site order, and passes each result to fn.
func Scan(t *core.Table, subset Subset, fn func(Cell)) {
	for site := 0; site < t.NumSites; site++ {
		for v := core.Baseline; v <= t.MaxReadings[site]; v++ {
			fn(Cell{Site: site, Variant: v, Matrix: Classify(t, site, v, subset)})
		}
	}
}
