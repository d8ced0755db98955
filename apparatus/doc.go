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

// Package apparatus filters critical apparatus text streams.
//
// # Stream format
//
// One record per line, dispatched on the first byte:
//
//	@...      verse marker, held until a segment is emitted
//	>LABEL... lemma; the first LemmaLabelWidth bytes are a label and dropped
//	^N ...    segment header; N is the segment number
//	=...      variant detail belonging to the current segment
//	(empty)   end of segment
//
// Any other line is ignored.
//
// # Filters
//
//   - Annotate keeps the segments where two witnesses agree under a chosen
//     agreement type, marking agreement in the baseline reading.
//   - SelectSegments keeps segments by number.
//   - ExtractUnits lists the variant units attested by named witnesses.
//   - Normalize strips carriage returns and trailing blanks.
//
// When a segment is kept, the pending verse marker and lemma are written once
// before it and then cleared.
package apparatus
