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

// Package classify scores how well a variant reading predicts membership in
// a chosen group of witnesses.
//
// For a (site, variant) pair every non-lacunose witness falls into one cell
// of a confusion matrix:
//
//	               in subset   not in subset
//	reads variant     TP            FP
//	other reading     FN            TN
//
// From the counts Classify derives:
//   - TPR = TP/(TP+FN) and TNR = TN/(FP+TN), NaN when the denominator is 0
//   - DOR, the diagnostic odds ratio with 0.5 added to every cell
//   - MCC, the Matthews correlation coefficient (phi), 0 when any marginal is 0
//
// Scan walks every site and every digit variant up to the site maximum.
package classify
