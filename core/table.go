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

package core

// NewTable builds a Table from witnesses in input order, assigning ids and
// precomputing the maximum and majority reading of every site.
func NewTable(witnesses []*Witness) (*Table, error) {
	if err := ValidateWitnesses(witnesses); err != nil {
		return nil, err
	}

	t := &Table{
		NumLeafs:  len(witnesses),
		NumSites:  len(witnesses[0].Readings),
		Witnesses: witnesses,
		refA:      NoReference,
		refB:      NoReference,
	}
	for id, w := range witnesses {
		w.ID = id
	}

	t.MaxReadings = make([]byte, t.NumSites)
	t.MajorityReadings = make([]byte, t.NumSites)
	for site := 0; site < t.NumSites; site++ {
		t.MaxReadings[site], t.MajorityReadings[site] = t.summarize(site)
	}

	return t, nil
}

// summarize returns the greatest digit and the majority digit at site.
// A digit takes the majority only when its count strictly exceeds the
// running maximum, so the first digit to reach the final count wins ties.
func (t *Table) summarize(site int) (maxRdg, majRdg byte) {
	var counts [10]int
	maxRdg, majRdg = Baseline, Baseline
	maxCnt := 0

	for _, w := range t.Witnesses {
		r := w.Readings[site]
		if !IsDigit(r) {
			continue
		}
		if r > maxRdg {
			maxRdg = r
		}
		idx := r - '0'
		counts[idx]++
		if counts[idx] > maxCnt {
			maxCnt = counts[idx]
			majRdg = r
		}
	}
	return maxRdg, majRdg
}

// Find returns the first witness named name.
// The match is exact and case-sensitive. On failure the error is a
// *LookupError wrapping ErrNotFound.
func (t *Table) Find(name string) (*Witness, error) {
	if id := t.index(name); id != NoReference {
		return t.Witnesses[id], nil
	}
	return nil, &LookupError{Name: name, Suggestions: t.Suggest(name)}
}

func (t *Table) index(name string) int {
	if name == "" {
		return NoReference
	}
	for id, w := range t.Witnesses {
		if w.Name == name {
			return id
		}
	}
	return NoReference
}

// SetReferences resolves the archetype (A) and majority (B) witnesses by
// name. A name that is empty or unknown leaves that reference unset, which
// falls back to the baseline digit for A and the per-site majority for B.
// The returned slice lists the non-empty names that failed to resolve.
func (t *Table) SetReferences(archetype, majority string) []string {
	var unresolved []string

	t.refA = t.index(archetype)
	if t.refA == NoReference && archetype != "" {
		unresolved = append(unresolved, archetype)
	}

	t.refB = t.index(majority)
	if t.refB == NoReference && majority != "" {
		unresolved = append(unresolved, majority)
	}

	return unresolved
}

// References returns the ids of the A and B reference witnesses.
func (t *Table) References() (a, b int) {
	return t.refA, t.refB
}

// ReferenceA returns the archetype reading at site.
func (t *Table) ReferenceA(site int) byte {
	if t.refA >= 0 && t.refA < t.NumLeafs {
		return t.Witnesses[t.refA].Readings[site]
	}
	return Baseline
}

// ReferenceB returns the majority/Byzantine reading at site.
func (t *Table) ReferenceB(site int) byte {
	if t.refB >= 0 && t.refB < t.NumLeafs {
		return t.Witnesses[t.refB].Readings[site]
	}
	return t.MajorityReadings[site]
}

// Select marks the named witnesses as members of the selection set and
// returns the names that did not resolve.
func (t *Table) Select(names ...string) []string {
	var unresolved []string
	for _, name := range names {
		id := t.index(name)
		if id == NoReference {
			unresolved = append(unresolved, name)
			continue
		}
		t.Witnesses[id].InSelectionSet = true
	}
	return unresolved
}

// ClearSelection empties the selection set.
func (t *Table) ClearSelection() {
	for _, w := range t.Witnesses {
		w.InSelectionSet = false
	}
}
