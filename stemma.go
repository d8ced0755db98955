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

// Package stemma analyzes a collated table of manuscript witnesses.
//
// An Analysis wraps one loaded table with the reference witnesses, logger
// and metrics recorder of a run, and renders the similarity, medoid,
// classification and annotated apparatus reports.
package stemma

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/stemma/apparatus"
	"github.com/poiesic/stemma/core"
	"github.com/poiesic/stemma/medoid"
	"github.com/poiesic/stemma/metrics"
	"github.com/poiesic/stemma/report"
	"github.com/poiesic/stemma/similarity"
	"github.com/poiesic/stemma/storage"
)

// ErrTableRequired is returned when an Analysis is created without a table.
var ErrTableRequired = errors.New("witness table is required")

// Analysis runs reports over one witness table.
type Analysis struct {
	table    *core.Table
	source   string
	logger   *slog.Logger
	recorder metrics.Recorder
	progress medoid.ProgressFunc

	archetype string
	majority  string
	restLabel string
}

// Option configures an Analysis.
type Option func(*Analysis) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analysis) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// WithRecorder sets the metrics recorder.
// Default is metrics.Noop.
func WithRecorder(recorder metrics.Recorder) Option {
	return func(a *Analysis) error {
		if recorder == nil {
			recorder = metrics.Noop{}
		}
		a.recorder = recorder
		return nil
	}
}

// WithReferences names the archetype (A) and majority (B) reference
// witnesses. An empty or unknown name keeps the default reference.
func WithReferences(archetype, majority string) Option {
	return func(a *Analysis) error {
		a.archetype = archetype
		a.majority = majority
		return nil
	}
}

// WithProgress reports pair progress while the medoid matrix is built.
func WithProgress(fn medoid.ProgressFunc) Option {
	return func(a *Analysis) error {
		a.progress = fn
		return nil
	}
}

// WithRestLabel sets the label of the baseline agreement line written by
// Annotate.
func WithRestLabel(label string) Option {
	return func(a *Analysis) error {
		a.restLabel = label
		return nil
	}
}

// Open loads the table at path and creates an Analysis over it.
func Open(path string, opts ...Option) (*Analysis, error) {
	t, err := storage.OpenTable(path)
	if err != nil {
		return nil, err
	}
	return New(t, path, opts...)
}

// New creates an Analysis over t. source names where t came from and is
// only used in log messages.
func New(t *core.Table, source string, opts ...Option) (*Analysis, error) {
	if t == nil {
		return nil, ErrTableRequired
	}

	a := &Analysis{
		table:     t,
		source:    source,
		logger:    slog.Default(),
		recorder:  metrics.Noop{},
		restLabel: apparatus.DefaultRestLabel,
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	fingerprint := t.Fingerprint()
	a.logger.Info("loaded witness table",
		"source", source,
		"witnesses", t.NumLeafs,
		"sites", t.NumSites,
		"fingerprint", fingerprint)
	a.recorder.TableLoaded(t.NumLeafs, t.NumSites, fingerprint)

	for _, name := range t.SetReferences(a.archetype, a.majority) {
		a.logger.Warn("reference witness not found, using default",
			"name", name, "suggestions", t.Suggest(name))
	}

	return a, nil
}

// Table returns the analysed table.
func (a *Analysis) Table() *core.Table {
	return a.table
}

// Similarity writes the comparison of the named witness with every witness
// of the table.
func (a *Analysis) Similarity(w io.Writer, name string) error {
	start := time.Now()

	ms, err := a.table.Find(name)
	if err != nil {
		return err
	}

	n, err := report.WriteSimilarity(w, a.table, ms)
	a.recorder.Compared(n)
	a.recorder.ReportDone(metrics.KindSimilarity, time.Since(start))
	if err != nil {
		a.logger.Error("error writing similarity report", "err", err)
		return err
	}
	return nil
}

// Medoids writes the witnesses ranked by their summed distance to all
// others. A positive limit keeps only the closest entries.
func (a *Analysis) Medoids(w io.Writer, limit int) error {
	start := time.Now()

	m := medoid.Build(a.table, medoid.WithProgress(a.progress))
	n := m.Size()
	a.recorder.Compared(n * (n - 1) / 2)

	ranked := medoid.Rank(a.table, m)
	if len(ranked) > 0 {
		a.logger.Debug("medoid found",
			"witness", ranked[0].Witness.Name, "score", ranked[0].Score)
	}

	err := report.WriteMedoids(w, ranked, limit)
	a.recorder.ReportDone(metrics.KindMedoid, time.Since(start))
	if err != nil {
		a.logger.Error("error writing medoid report", "err", err)
		return err
	}
	return nil
}

// Classification replaces the selection set with the named witnesses and
// writes the phi coefficient of every (site, variant) pair against it.
// Unknown names are logged and skipped.
func (a *Analysis) Classification(w io.Writer, names []string, verbose bool) error {
	start := time.Now()

	a.table.ClearSelection()
	for _, name := range a.table.Select(names...) {
		a.logger.Warn("selection witness not found, skipping",
			"name", name, "suggestions", a.table.Suggest(name))
	}

	write := report.WriteClassification
	if verbose {
		write = report.WriteClassificationVerbose
	}
	n, err := write(w, a.table)
	a.recorder.Classified(n)
	a.recorder.ReportDone(metrics.KindClassification, time.Since(start))
	if err != nil {
		a.logger.Error("error writing classification report", "err", err)
		return err
	}
	return nil
}

// Annotate copies from r to w the apparatus segments at which ms1 and ms2
// agree under any of the agreement types named in types, e.g. "O" or "A|AB".
func (a *Analysis) Annotate(w io.Writer, r io.Reader, types, ms1, ms2 string) (apparatus.Stats, error) {
	start := time.Now()

	mask, err := similarity.ParseMask(types)
	if err != nil {
		return apparatus.Stats{}, err
	}

	stats, err := apparatus.AnnotateByName(w, r, a.table, mask, ms1, ms2,
		apparatus.WithRestLabel(a.restLabel))
	if err != nil {
		return stats, err
	}

	a.recorder.Compared(1)
	a.recorder.SegmentsSelected(metrics.KindAnnotate, stats.Selected)
	a.recorder.ReportDone(metrics.KindAnnotate, time.Since(start))
	a.logger.Debug("annotated apparatus",
		"types", mask.String(),
		"lines", stats.Lines,
		"segments", stats.Segments,
		"selected", stats.Selected)
	return stats, nil
}
