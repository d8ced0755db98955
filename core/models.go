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
	"encoding/hex"
	"strconv"

	"github.com/go-crypt/x/blake2b"
)

// Lacuna marks a site where a witness has no evidence.
const Lacuna byte = '?'

// Baseline is the digit standing in for reference A when no archetype
// witness is configured, and the default maximum and majority reading.
const Baseline byte = '0'

// NoReference marks an unset reference witness.
const NoReference = -1

// Alphabet lists every byte a reading may take.
const Alphabet = "?0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ-"

// Witness is one extant copy of the text.
type Witness struct {
	ID             int
	Name           string
	Readings       []byte // one reading per site
	InSelectionSet bool
}

// Reading returns the witness reading at site.
func (w *Witness) Reading(site int) byte {
	return w.Readings[site]
}

// IsLacuna reports whether the witness is lacunose at site.
func (w *Witness) IsLacuna(site int) bool {
	return w.Readings[site] == Lacuna
}

// Table holds witnesses by sites together with the per-site summaries
// derived at load time.
type Table struct {
	NumLeafs int
	NumSites int

	Witnesses []*Witness

	MaxReadings      []byte // greatest digit attested at each site
	MajorityReadings []byte // most frequent digit at each site

	refA int // archetype witness, or NoReference
	refB int // majority/Byzantine witness, or NoReference
}

// Witness returns the witness with the given id.
func (t *Table) Witness(id int) *Witness {
	return t.Witnesses[id]
}

// Fingerprint returns a short BLAKE2b digest of the table contents.
// Identical tables always produce identical fingerprints.
func (t *Table) Fingerprint() string {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(strconv.Itoa(t.NumLeafs)))
	h.Write([]byte{' '})
	h.Write([]byte(strconv.Itoa(t.NumSites)))
	h.Write([]byte{'\n'})
	for _, w := range t.Witnesses {
		h.Write([]byte(w.Name))
		h.Write([]byte{' '})
		h.Write(w.Readings)
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
