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

package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "stemma"

// Prometheus is a Recorder backed by Prometheus collectors.
type Prometheus struct {
	registry *prometheus.Registry

	info        *prometheus.GaugeVec
	witnesses   prometheus.Gauge
	sites       prometheus.Gauge
	comparisons prometheus.Counter
	matrices    prometheus.Counter
	segments    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

var _ Recorder = (*Prometheus)(nil)

// NewPrometheus creates the collectors and registers them on registry.
// A nil registry gets a fresh one.
func NewPrometheus(registry *prometheus.Registry) (*Prometheus, error) {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	p := &Prometheus{
		registry: registry,
		info: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "table_info",
			Help:      "Always 1, labelled with the fingerprint of the loaded table.",
		}, []string{"fingerprint"}),
		witnesses: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "table_witnesses",
			Help:      "Witnesses in the loaded table.",
		}),
		sites: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "table_sites",
			Help:      "Variation sites in the loaded table.",
		}),
		comparisons: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comparisons_total",
			Help:      "Pairwise witness comparisons.",
		}),
		matrices: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "confusion_matrices_total",
			Help:      "Confusion matrices computed.",
		}),
		segments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "segments_selected_total",
			Help:      "Apparatus segments written, by filter.",
		}, []string{"kind"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_duration_seconds",
			Help:      "Time spent producing a report.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 60},
		}, []string{"kind"}),
	}

	for _, c := range []prometheus.Collector{
		p.info, p.witnesses, p.sites, p.comparisons, p.matrices, p.segments, p.duration,
	} {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
		}
	}
	return p, nil
}

// Registry returns the registry holding the collectors.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

func (p *Prometheus) TableLoaded(witnesses, sites int, fingerprint string) {
	p.info.Reset()
	p.info.WithLabelValues(fingerprint).Set(1)
	p.witnesses.Set(float64(witnesses))
	p.sites.Set(float64(sites))
}

func (p *Prometheus) Compared(pairs int) {
	p.comparisons.Add(float64(pairs))
}

func (p *Prometheus) Classified(cells int) {
	p.matrices.Add(float64(cells))
}

func (p *Prometheus) SegmentsSelected(kind string, n int) {
	p.segments.WithLabelValues(kind).Add(float64(n))
}

func (p *Prometheus) ReportDone(kind string, d time.Duration) {
	p.duration.WithLabelValues(kind).Observe(d.Seconds())
}

// WriteTextfile writes every metric to path in textfile format. The file
// is replaced atomically.
func (p *Prometheus) WriteTextfile(path string) error {
	if path == "" {
		return ErrNoOutput
	}
	return prometheus.WriteToTextfile(path, p.registry)
}
