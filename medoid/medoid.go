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

package medoid

import (
	"sort"

	"github.com/poiesic/stemma/core"
	"github.com/poiesic/stemma/similarity"
)

// Matrix is a symmetric witness distance matrix stored row-major.
type Matrix struct {
	n    int
	data []float64 // len == n*n, offset i*n + j
}

// Size returns the number of witnesses.
func (m *Matrix) Size() int {
	return m.n
}

// At returns the distance between witnesses i and j.
func (m *Matrix) At(i, j int) float64 {
	return m.data[i*m.n+j]
}

func (m *Matrix) set(i, j int, v float64) {
	m.data[i*m.n+j] = v
	m.data[j*m.n+i] = v
}

// Score returns the sum of distances from witness i to every witness.
func (m *Matrix) Score(i int) float64 {
	sum := 0.0
	for _, d := range m.data[i*m.n : (i+1)*m.n] {
		sum += d
	}
	return sum
}

// ProgressFunc is called after each row of the matrix is filled with the
// number of pairs compared so far and the total.
type ProgressFunc func(done, total int)

// Option configures Build.
type Option func(*options)

type options struct {
	progress ProgressFunc
}

// WithProgress reports pair progress while the matrix is built.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// Build computes the distance matrix for every witness in t.
func Build(t *core.Table, opts ...Option) *Matrix {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	n := t.NumLeafs
	m := &Matrix{n: n, data: make([]float64, n*n)}
	total := n * (n - 1) / 2
	done := 0

	for ms := 0; ms < n; ms++ {
		// Diagonal stays zero.
		for ll := 0; ll < ms; ll++ {
			res := similarity.Compare(t, t.Witnesses[ms], t.Witnesses[ll])
			m.set(ms, ll, 1.0-res.Rate())
		}
		done += ms
		if o.progress != nil && ms > 0 {
			o.progress(done, total)
		}
	}

	return m
}

// Ranked is a witness with its medoid score.
type Ranked struct {
	Witness *core.Witness
	Score   float64
}

// Rank orders the witnesses of t by ascending score. Ties keep table order.
func Rank(t *core.Table, m *Matrix) []Ranked {
	ranked := make([]Ranked, m.Size())
	for i := range ranked {
		ranked[i] = Ranked{Witness: t.Witnesses[i], Score: m.Score(i)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score < ranked[j].Score
	})
	return ranked
}
