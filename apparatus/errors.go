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

package apparatus

import "errors"

var (
	// ErrTableRequired is returned when Annotate is called without a table.
	ErrTableRequired = errors.New("witness table required")

	// ErrWitnessRequired is returned when Annotate is called without both witnesses.
	ErrWitnessRequired = errors.New("two witnesses required")

	// ErrNoAgreementType is returned when Annotate is called with an empty mask.
	ErrNoAgreementType = errors.New("at least one agreement type required")
)
