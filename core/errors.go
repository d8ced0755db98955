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
	"errors"
	"fmt"
	"strings"
)

// Domain errors
var (
	// ErrFormat indicates a malformed witness table.
	ErrFormat = errors.New("malformed witness table")

	// ErrNotFound indicates a witness name that does not resolve.
	ErrNotFound = errors.New("witness not found")

	// ErrIO indicates the input could not be read.
	ErrIO = errors.New("cannot read input")

	// ErrNoWitnesses indicates a table with no witnesses.
	ErrNoWitnesses = errors.New("table must contain at least one witness")

	// ErrRaggedTable indicates witnesses with differing reading counts.
	ErrRaggedTable = errors.New("witness reading counts differ")

	// ErrInvalidReading indicates a reading outside the alphabet.
	ErrInvalidReading = errors.New("invalid reading")
)

// FormatError describes where a witness table failed to parse.
type FormatError struct {
	// Source names the input, usually a file path.
	Source string

	// Line is the 1-based line of the offending token, 0 if unknown.
	Line int

	// Token is the offending token, empty at end of input.
	Token string

	// Reason explains what was expected.
	Reason string

	// Err is the underlying cause. It defaults to ErrFormat.
	Err error
}

// Error implements the error interface for FormatError.
func (e *FormatError) Error() string {
	var b strings.Builder
	if e.Source != "" {
		b.WriteString(e.Source)
		b.WriteString(":")
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, "%d:", e.Line)
	}
	if b.Len() > 0 {
		b.WriteString(" ")
	}
	b.WriteString(e.Reason)
	if e.Token != "" {
		fmt.Fprintf(&b, " (got %q)", e.Token)
	} else {
		b.WriteString(" (got end of input)")
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *FormatError) Unwrap() error {
	if e.Err == nil {
		return ErrFormat
	}
	return e.Err
}

// Is lets errors.Is match ErrFormat for every FormatError.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// LookupError reports a witness name that did not resolve, with close
// matches from the table when there are any.
type LookupError struct {
	Name        string
	Suggestions []string
}

// Error implements the error interface for LookupError.
func (e *LookupError) Error() string {
	msg := fmt.Sprintf("%s: %q", ErrNotFound, e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// Unwrap returns ErrNotFound.
func (e *LookupError) Unwrap() error { return ErrNotFound }
