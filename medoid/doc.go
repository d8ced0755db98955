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

// Package medoid ranks witnesses by their total distance to every other
// witness.
//
// The distance between two witnesses is 1 minus their type-O agreement rate.
// Build computes each unordered pair once and mirrors it into a dense
// row-major matrix; the medoid is the witness with the smallest row sum.
// Time is O(N²·S) for N witnesses and S sites, space O(N²).
package medoid
