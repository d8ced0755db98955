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
	"errors"
	"fmt"
	"strings"
)

// Mask is a set of agreement types.
type Mask uint8

const (
	MaskO Mask = 1 << iota
	MaskA
	MaskB
	MaskAB

	MaskAll = MaskO | MaskA | MaskB | MaskAB
)

// ErrInvalidMask is returned by ParseMask for an unknown agreement type.
var ErrInvalidMask = errors.New("invalid agreement type")

var maskNames = []struct {
	mask Mask
	name string
}{
	{MaskO, "O"},
	{MaskA, "A"},
	{MaskB, "B"},
	{MaskAB, "AB"},
}

// Has reports whether any type in other is also in m.
func (m Mask) Has(other Mask) bool {
	return m&other != 0
}

// String renders the mask as type names joined by "|", e.g. "O|AB".
func (m Mask) String() string {
	if m == 0 {
		return "none"
	}
	var parts []string
	for _, mn := range maskNames {
		if m&mn.mask != 0 {
			parts = append(parts, mn.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseMask parses agreement type names separated by "|" or ",".
// Names are case-insensitive: "ab", "O|B" and "A,AB" are all valid.
func ParseMask(s string) (Mask, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '|' || r == ','
	})
	if len(fields) == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMask, s)
	}

	var m Mask
	for _, f := range fields {
		f = strings.ToUpper(strings.TrimSpace(f))
		found := false
		for _, mn := range maskNames {
			if f == mn.name {
				m |= mn.mask
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: %q (want O, A, B or AB)", ErrInvalidMask, f)
		}
	}
	return m, nil
}
