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

import (
	"sort"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
)

const (
	// MaxSuggestions caps the names offered for an unresolved witness.
	MaxSuggestions = 3

	// MaxSuggestionDistance is the largest edit distance still suggested.
	MaxSuggestionDistance = 2
)

// Suggest returns witness names close to name, nearest first.
// Names are compared case-folded, so "p46" suggests "P46".
func (t *Table) Suggest(name string) []string {
	if name == "" {
		return nil
	}

	// cases.Caser is stateful; use a fresh one per call.
	fold := cases.Fold()
	needle := fold.String(name)

	type candidate struct {
		name     string
		distance int
		order    int
	}
	var candidates []candidate
	seen := make(map[string]bool)
	for i, w := range t.Witnesses {
		if seen[w.Name] {
			continue
		}
		seen[w.Name] = true

		d := levenshtein.ComputeDistance(needle, fold.String(w.Name))
		if d <= MaxSuggestionDistance {
			candidates = append(candidates, candidate{name: w.Name, distance: d, order: i})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return candidates[i].order < candidates[j].order
	})

	if len(candidates) > MaxSuggestions {
		candidates = candidates[:MaxSuggestions]
	}
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.name
	}
	return names
}
