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

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of one stemma run.
type Config struct {
	// LogLevel is one of debug, info, warn or error.
	// Default: info
	LogLevel string `yaml:"log_level" validate:"required,oneof=debug info warn error"`

	// Archetype names the witness used as reference A. Empty or unknown
	// means the baseline reading '0' at every site.
	Archetype string `yaml:"archetype"`

	// Majority names the witness used as reference B. Empty or unknown
	// means the majority reading of every site.
	Majority string `yaml:"majority"`

	// MetricsFile, when set, receives the run metrics in Prometheus
	// textfile format.
	MetricsFile string `yaml:"metrics_file"`

	Medoid   MedoidConfig   `yaml:"medoid"`
	Classify ClassifyConfig `yaml:"classify"`
	Annotate AnnotateConfig `yaml:"annotate"`
}

// MedoidConfig configures the medoid report.
type MedoidConfig struct {
	// Limit caps the number of witnesses listed. 0 lists all.
	Limit int `yaml:"limit" validate:"min=0"`
}

// ClassifyConfig configures the classification report.
type ClassifyConfig struct {
	// Verbose adds sensitivity, specificity and odds ratio columns.
	Verbose bool `yaml:"verbose"`
}

// AnnotateConfig configures the annotated apparatus.
type AnnotateConfig struct {
	// RestLabel names agreement in the baseline reading.
	// Default: rest
	RestLabel string `yaml:"rest_label" validate:"required,printascii,max=32"`
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithLogLevel sets the log level.
func WithLogLevel(level string) ConfigOption {
	return func(c *Config) {
		c.LogLevel = level
	}
}

// WithArchetype sets the reference A witness.
func WithArchetype(name string) ConfigOption {
	return func(c *Config) {
		c.Archetype = name
	}
}

// WithMajority sets the reference B witness.
func WithMajority(name string) ConfigOption {
	return func(c *Config) {
		c.Majority = name
	}
}

// WithMetricsFile sets the metrics output path.
func WithMetricsFile(path string) ConfigOption {
	return func(c *Config) {
		c.MetricsFile = path
	}
}

// WithMedoidLimit caps the medoid listing.
func WithMedoidLimit(limit int) ConfigOption {
	return func(c *Config) {
		c.Medoid.Limit = limit
	}
}

// WithVerbose turns on the extra classification columns.
func WithVerbose(verbose bool) ConfigOption {
	return func(c *Config) {
		c.Classify.Verbose = verbose
	}
}

// WithRestLabel sets the label of the baseline agreement line.
func WithRestLabel(label string) ConfigOption {
	return func(c *Config) {
		c.Annotate.RestLabel = label
	}
}

// DefaultConfig returns a Config with the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Annotate: AnnotateConfig{RestLabel: "rest"},
	}
}

// NewConfig creates a Config with the default values and applies opts.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	cfg.Apply(opts...)
	return cfg
}

// Apply applies opts in order.
func (c *Config) Apply(opts ...ConfigOption) {
	for _, opt := range opts {
		opt(c)
	}
}

// Load reads the YAML file at path over the defaults. Unknown keys are an
// error. The result is not validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadConfig, err)
	}
	cfg, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads a YAML document from r over the defaults. An empty document
// yields the defaults.
func Decode(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrReadConfig, err)
	}
	return cfg, nil
}

// Validate checks the configuration against its field rules.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
