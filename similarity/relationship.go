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

package similarity

import (
	"math"

	"github.com/poiesic/stemma/core"
)

// RelationshipNumber returns Waltz's relationship number between ms and ll:
//
//	RN = mean over shared sites of (attested - 1) / agreeing
//
// where a shared site is one at which neither witness is lacunose, agreeing
// counts the witnesses reading as ms does and attested is the number of
// witnesses in the table. Sites where ms and ll disagree score 0.
//
// Attested counts every witness, lacunose or not.
//
// The result is NaN when the two witnesses share no site.
func RelationshipNumber(t *core.Table, ms, ll *core.Witness) float64 {
	rn := 0.0
	shared := 0

	for site := 0; site < t.NumSites; site++ {
		msRdg := ms.Readings[site]
		llRdg := ll.Readings[site]
		if msRdg == core.Lacuna || llRdg == core.Lacuna {
			continue
		}

		shared++
		if msRdg != llRdg {
			continue
		}

		attested := t.NumLeafs
		agreeing := 0
		for _, w := range t.Witnesses {
			if w.Readings[site] == msRdg {
				agreeing++
			}
		}
		rn += float64(attested-1) / float64(agreeing)
	}

	if shared == 0 {
		return math.NaN()
	}
	return rn / float64(shared)
}
