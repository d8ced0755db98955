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

// Package similarity measures pairwise agreement between witnesses.
//
// Compare counts agreements under four attestation types, each restricting
// the sites considered by how the first witness relates to the reference
// readings of the table:
//   - O: every site where neither witness is lacunose
//   - A: sites where the first witness departs from the archetype (reference A)
//   - B: sites where it departs from the majority text (reference B)
//   - AB: sites where it departs from both
//
// Alongside the tallies Compare returns a per-site Mask recording which types
// counted the site as an agreement. The mask belongs to the Result; nothing
// is cached on the table.
//
// RelationshipNumber computes Waltz's relationship number, an average per-site
// score that rewards agreement in readings shared by few witnesses.
package similarity
