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

import "github.com/poiesic/stemma/core"

// Tally counts agreements among the sites eligible for one agreement type.
type Tally struct {
	Agreements int
	Eligible   int
}

// Rate returns Agreements/Eligible, or 0.0 when no site was eligible.
func (t Tally) Rate() float64 {
	if t.Eligible == 0 {
		return 0.0
	}
	return float64(t.Agreements) / float64(t.Eligible)
}

func (t *Tally) add(agree bool) {
	t.Eligible++
	if agree {
		t.Agreements++
	}
}

// Result holds the outcome of comparing two witnesses.
type Result struct {
	O  Tally
	A  Tally
	B  Tally
	AB Tally

	// Mask has one entry per site: the types for which the site was
	// eligible and the witnesses agreed. Lacunose sites are 0.
	Mask []Mask
}

// Rate returns the type-O agreement rate, the primary similarity score.
func (r Result) Rate() float64 {
	return r.O.Rate()
}

// Tally returns the tally for a single agreement type.
func (r Result) Tally(m Mask) Tally {
	switch m {
	case MaskO:
		return r.O
	case MaskA:
		return r.A
	case MaskB:
		return r.B
	case MaskAB:
		return r.AB
	}
	return Tally{}
}

// Compare tallies agreement between ms and ll over every site where
// neither is lacunose. Eligibility for types A, B and AB depends on ms only.
func Compare(t *core.Table, ms, ll *core.Witness) Result {
	res := Result{Mask: make([]Mask, t.NumSites)}

	for site := 0; site < t.NumSites; site++ {
		msRdg := ms.Readings[site]
		llRdg := ll.Readings[site]
		if msRdg == core.Lacuna || llRdg == core.Lacuna {
			continue
		}

		rdgA := t.ReferenceA(site)
		rdgB := t.ReferenceB(site)
		agree := msRdg == llRdg

		var m Mask
		res.O.add(agree)
		if agree {
			m |= MaskO
		}
		if msRdg != rdgA {
			res.A.add(agree)
			if agree {
				m |= MaskA
			}
		}
		if msRdg != rdgB {
			res.B.add(agree)
			if agree {
				m |= MaskB
			}
		}
		if msRdg != rdgA && msRdg != rdgB {
			res.AB.add(agree)
			if agree {
				m |= MaskAB
			}
		}
		res.Mask[site] = m
	}

	return res
}
