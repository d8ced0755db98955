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
	"fmt"
	"strings"
)

// IsDigit reports whether r is one of the primary variant codes 0-9.
func IsDigit(r byte) bool {
	return r >= '0' && r <= '9'
}

// ValidReading reports whether r belongs to the reading alphabet.
func ValidReading(r byte) bool {
	return strings.IndexByte(Alphabet, r) >= 0
}

// ValidateReadings checks every byte of a reading string against the
// alphabet and returns the site of the first offending byte.
func ValidateReadings(readings []byte) error {
	for site, r := range readings {
		if !ValidReading(r) {
			return fmt.Errorf("%w %q at site %d", ErrInvalidReading, r, site)
		}
	}
	return nil
}

// ValidateWitnesses validates the shape of a witness list before it is
// turned into a Table.
//
// Validation rules:
//   - at least one witness
//   - every witness has the same number of readings
//   - every reading is in the alphabet
//
// Duplicate names are allowed; lookups resolve to the first.
func ValidateWitnesses(witnesses []*Witness) error {
	if len(witnesses) == 0 {
		return ErrNoWitnesses
	}

	for _, w := range witnesses {
		if w == nil {
			return fmt.Errorf("%w: nil witness", ErrFormat)
		}
	}

	nSites := len(witnesses[0].Readings)
	for _, w := range witnesses {
		if len(w.Readings) != nSites {
			return fmt.Errorf("%w: %s has %d readings, expected %d",
				ErrRaggedTable, w.Name, len(w.Readings), nSites)
		}
		if err := ValidateReadings(w.Readings); err != nil {
			return fmt.Errorf("witness %s: %w", w.Name, err)
		}
	}
	return nil
}
