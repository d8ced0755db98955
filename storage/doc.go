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

// Package storage reads and writes witness tables in the tx text format.
//
// # Format
//
// A tx file is a stream of whitespace-separated tokens:
//
//	<nLeafs> <nSites>
//	<name> <readings>
//	...
//
// followed by exactly nLeafs records. Each readings token holds one byte per
// site drawn from core.Alphabet. When nSites is 0 a record is the name alone.
// Tokens after the last record are ignored.
//
// # Usage
//
//	table, err := storage.OpenTable("mss.tx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Parse failures are *core.FormatError values carrying the source name, line
// and offending token; they match core.ErrFormat under errors.Is. Failures to
// open or read the input match core.ErrIO.
//
// WriteTable emits the canonical form, so reading a canonical file and
// writing it back reproduces it byte for byte.
package storage
