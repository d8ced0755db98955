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

package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/poiesic/stemma"
	"github.com/poiesic/stemma/apparatus"
	"github.com/poiesic/stemma/config"
	"github.com/poiesic/stemma/medoid"
	"github.com/poiesic/stemma/metrics"
	"github.com/poiesic/stemma/report"
	"github.com/urfave/cli/v2"
)

const configKey = "config"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "stemma",
		Usage: "Similarity, medoid and classification reports over collated manuscript witnesses",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML configuration file",
			},
			&cli.StringFlag{
				Name:    "archetype",
				Usage:   "Witness used as reference A (default: reading 0 at every site)",
				EnvVars: []string{"A"},
			},
			&cli.StringFlag{
				Name:    "majority",
				Usage:   "Witness used as reference B (default: majority reading of each site)",
				EnvVars: []string{"B"},
			},
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "Write run metrics to this file in Prometheus textfile format",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:      "similarity",
				Aliases:   []string{"sim"},
				Usage:     "Compare one witness with every witness of the table",
				ArgsUsage: "<table> <witness>",
				Action:    similarityCommand,
			},
			{
				Name:      "medoid",
				Aliases:   []string{"med"},
				Usage:     "Rank witnesses by their summed distance to all others",
				ArgsUsage: "<table>",
				Action:    medoidCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "List only the N closest witnesses (0 lists all)",
					},
				},
			},
			{
				Name:      "classify",
				Aliases:   []string{"mcc"},
				Usage:     "Score every variant as a predictor of a witness group",
				ArgsUsage: "<table> <witness>...",
				Action:    classifyCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"v"},
						Usage:   "Add sensitivity, specificity and odds ratio columns",
					},
				},
			},
			{
				Name:      "annotate",
				Usage:     "Keep the apparatus segments where two witnesses agree",
				ArgsUsage: "<table> <type> <ms1> <ms2>",
				Action:    annotateCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "apparatus",
						Aliases: []string{"a"},
						Usage:   "Read the apparatus from this file instead of stdin",
					},
					&cli.StringFlag{
						Name:  "rest-label",
						Usage: "Label of the baseline agreement line",
					},
				},
			},
			{
				Name:      "segments",
				Usage:     "Copy the apparatus segments with the given numbers",
				ArgsUsage: "<id>...",
				Action:    segmentsCommand,
			},
			{
				Name:      "units",
				Usage:     "Lay out the variant units citing the given witnesses",
				ArgsUsage: "<witness>...",
				Action:    unitsCommand,
			},
			{
				Name:   "normalize",
				Usage:  "Strip carriage returns and trailing blanks",
				Action: normalizeCommand,
			},
		},
		Metadata: map[string]interface{}{},
	}
}

// setup loads the configuration, overlays the global flags and installs
// the logger.
func setup(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	c.App.Metadata[configKey] = cfg
	return setupLogger(c.App.ErrWriter, cfg.LogLevel)
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	// Flags given explicitly win over the file.
	var opts []config.ConfigOption
	if c.IsSet("log-level") || c.String("config") == "" {
		opts = append(opts, config.WithLogLevel(strings.ToLower(c.String("log-level"))))
	}
	if c.IsSet("archetype") {
		opts = append(opts, config.WithArchetype(c.String("archetype")))
	}
	if c.IsSet("majority") {
		opts = append(opts, config.WithMajority(c.String("majority")))
	}
	if c.IsSet("metrics-file") {
		opts = append(opts, config.WithMetricsFile(c.String("metrics-file")))
	}
	cfg.Apply(opts...)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogger(w io.Writer, levelStr string) error {
	if w == nil {
		w = os.Stderr
	}

	// Map string to slog.Level
	var level slog.Level
	switch strings.ToLower(levelStr) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

func configFrom(c *cli.Context) *config.Config {
	if cfg, ok := c.App.Metadata[configKey].(*config.Config); ok {
		return cfg
	}
	return config.DefaultConfig()
}

// newRecorder returns the recorder for this run and a function that
// writes its metrics out once the command is done.
func newRecorder(cfg *config.Config) (metrics.Recorder, func() error, error) {
	if cfg.MetricsFile == "" {
		return metrics.Noop{}, func() error { return nil }, nil
	}
	p, err := metrics.NewPrometheus(nil)
	if err != nil {
		return nil, nil, err
	}
	return p, func() error {
		if err := p.WriteTextfile(cfg.MetricsFile); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		return nil
	}, nil
}

// progressFor returns a progress reporter on the error stream when it is
// a terminal, and nil otherwise.
func progressFor(c *cli.Context) medoid.ProgressFunc {
	f, ok := c.App.ErrWriter.(*os.File)
	if !ok {
		return nil
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return nil
	}
	return report.NewProgressTracker(f, "pairs", 1).Observe
}

func requireArgs(c *cli.Context, n int) error {
	if c.NArg() < n {
		return fmt.Errorf("%s: expected %s", c.Command.Name, c.Command.ArgsUsage)
	}
	return nil
}

// run opens the table named by the first argument, hands the analysis to
// fn and writes the metrics.
func run(c *cli.Context, fn func(a *stemma.Analysis) error, opts ...stemma.Option) error {
	cfg := configFrom(c)
	recorder, flush, err := newRecorder(cfg)
	if err != nil {
		return err
	}

	opts = append([]stemma.Option{
		stemma.WithLogger(slog.Default()),
		stemma.WithRecorder(recorder),
		stemma.WithReferences(cfg.Archetype, cfg.Majority),
		stemma.WithRestLabel(cfg.Annotate.RestLabel),
	}, opts...)

	a, err := stemma.Open(c.Args().First(), opts...)
	if err != nil {
		return err
	}
	if err := fn(a); err != nil {
		return err
	}
	return flush()
}

func similarityCommand(c *cli.Context) error {
	if err := requireArgs(c, 2); err != nil {
		return err
	}
	return run(c, func(a *stemma.Analysis) error {
		return a.Similarity(c.App.Writer, c.Args().Get(1))
	})
}

func medoidCommand(c *cli.Context) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}
	limit := configFrom(c).Medoid.Limit
	if c.IsSet("limit") {
		limit = c.Int("limit")
	}
	if limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}
	return run(c, func(a *stemma.Analysis) error {
		return a.Medoids(c.App.Writer, limit)
	}, stemma.WithProgress(progressFor(c)))
}

func classifyCommand(c *cli.Context) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}
	verbose := configFrom(c).Classify.Verbose || c.Bool("verbose")
	return run(c, func(a *stemma.Analysis) error {
		return a.Classification(c.App.Writer, c.Args().Tail(), verbose)
	})
}

func annotateCommand(c *cli.Context) error {
	if err := requireArgs(c, 4); err != nil {
		return err
	}

	in := c.App.Reader
	if path := c.String("apparatus"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open apparatus: %w", err)
		}
		defer f.Close()
		in = f
	}

	var opts []stemma.Option
	if c.IsSet("rest-label") {
		opts = append(opts, stemma.WithRestLabel(c.String("rest-label")))
	}

	args := c.Args()
	return run(c, func(a *stemma.Analysis) error {
		_, err := a.Annotate(c.App.Writer, in, args.Get(1), args.Get(2), args.Get(3))
		return err
	}, opts...)
}

// filter runs an apparatus filter from the input to the output stream.
func filter(c *cli.Context, kind string, fn func(w io.Writer, r io.Reader) (apparatus.Stats, error)) error {
	recorder, flush, err := newRecorder(configFrom(c))
	if err != nil {
		return err
	}

	start := time.Now()
	stats, err := fn(c.App.Writer, c.App.Reader)
	if err != nil {
		return err
	}
	recorder.SegmentsSelected(kind, stats.Selected)
	recorder.ReportDone(kind, time.Since(start))
	slog.Debug("filtered apparatus",
		"filter", kind,
		"lines", stats.Lines,
		"segments", stats.Segments,
		"selected", stats.Selected)
	return flush()
}

func segmentsCommand(c *cli.Context) error {
	ids := make([]int, 0, c.NArg())
	for _, arg := range c.Args().Slice() {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid segment number %q", arg)
		}
		ids = append(ids, id)
	}
	return filter(c, metrics.KindSegments, func(w io.Writer, r io.Reader) (apparatus.Stats, error) {
		return apparatus.SelectSegments(w, r, ids)
	})
}

func unitsCommand(c *cli.Context) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}
	names := c.Args().Slice()
	return filter(c, metrics.KindUnits, func(w io.Writer, r io.Reader) (apparatus.Stats, error) {
		return apparatus.ExtractUnits(w, r, names)
	})
}

func normalizeCommand(c *cli.Context) error {
	return filter(c, metrics.KindNormalize, apparatus.Normalize)
}
