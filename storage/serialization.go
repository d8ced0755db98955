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

package storage

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/poiesic/stemma/core"
)

// maxLineSize bounds a single line of a tx file.
const maxLineSize = 64 * 1024 * 1024

// OpenTable reads a witness table from the file at path.
func OpenTable(path string) (*core.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrIO, err)
	}
	defer f.Close()

	return ReadTable(f, path)
}

// ReadTable parses a witness table from r. source names the input in
// error messages and may be empty.
func ReadTable(r io.Reader, source string) (*core.Table, error) {
	tok := newTokenizer(r, source)

	nLeafs, err := tok.int("expected <nLeafs> <nSites> header")
	if err != nil {
		return nil, err
	}
	nSites, err := tok.int("expected <nLeafs> <nSites> header")
	if err != nil {
		return nil, err
	}
	if nLeafs <= 0 {
		return nil, tok.errorf(strconv.Itoa(nLeafs), "nLeafs must be positive")
	}
	if nSites < 0 {
		return nil, tok.errorf(strconv.Itoa(nSites), "nSites must not be negative")
	}

	// The header count is untrusted; grow as records arrive.
	var witnesses []*core.Witness
	for i := 0; i < nLeafs; i++ {
		name, ok, err := tok.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, tok.errorf("", fmt.Sprintf("expected record %d of %d <name> <readings>", i+1, nLeafs))
		}

		readings := []byte{}
		if nSites > 0 {
			rdgs, ok, err := tok.next()
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, tok.errorf("", fmt.Sprintf("expected readings for %s", name))
			}
			if len(rdgs) != nSites {
				return nil, tok.errorf(rdgs, fmt.Sprintf("expected %d readings for %s, found %d", nSites, name, len(rdgs)))
			}
			readings = []byte(rdgs)
			if err := core.ValidateReadings(readings); err != nil {
				fe := tok.errorf(rdgs, fmt.Sprintf("bad readings for %s: %v", name, err))
				fe.Err = core.ErrInvalidReading
				return nil, fe
			}
		}

		witnesses = append(witnesses, &core.Witness{Name: name, Readings: readings})
	}

	table, err := core.NewTable(witnesses)
	if err != nil {
		return nil, &core.FormatError{Source: source, Reason: err.Error(), Err: err}
	}
	return table, nil
}

// WriteTable writes t in canonical tx form.
func WriteTable(w io.Writer, t *core.Table) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", t.NumLeafs, t.NumSites)
	for _, wit := range t.Witnesses {
		if t.NumSites == 0 {
			fmt.Fprintf(bw, "%s\n", wit.Name)
			continue
		}
		fmt.Fprintf(bw, "%s %s\n", wit.Name, wit.Readings)
	}
	return bw.Flush()
}

// tokenizer yields whitespace-separated tokens with their line numbers.
type tokenizer struct {
	scanner *bufio.Scanner
	source  string
	line    int
	pending []string
}

func newTokenizer(r io.Reader, source string) *tokenizer {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &tokenizer{scanner: scanner, source: source}
}

// next returns the next token; ok is false at end of input.
func (t *tokenizer) next() (string, bool, error) {
	for len(t.pending) == 0 {
		if !t.scanner.Scan() {
			if err := t.scanner.Err(); err != nil {
				return "", false, fmt.Errorf("%w: %s: %w", core.ErrIO, t.source, err)
			}
			return "", false, nil
		}
		t.line++
		t.pending = strings.Fields(t.scanner.Text())
	}
	tok := t.pending[0]
	t.pending = t.pending[1:]
	return tok, true, nil
}

func (t *tokenizer) int(reason string) (int, error) {
	tok, ok, err := t.next()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, t.errorf("", reason)
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, t.errorf(tok, reason)
	}
	return n, nil
}

func (t *tokenizer) errorf(token, reason string) *core.FormatError {
	return &core.FormatError{Source: t.source, Line: t.line, Token: token, Reason: reason}
}
