// Package main provides the CLI entry point for wmstamp.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/wmstamp/pkg/adapters/filesink"
	"github.com/user/wmstamp/pkg/adapters/fontresolver"
	"github.com/user/wmstamp/pkg/adapters/glyphraster"
	"github.com/user/wmstamp/pkg/adapters/imagingcodec"
	"github.com/user/wmstamp/pkg/adapters/logger"
	"github.com/user/wmstamp/pkg/adapters/nullsink"
	"github.com/user/wmstamp/pkg/adapters/osfilesystem"
	"github.com/user/wmstamp/pkg/config"
	"github.com/user/wmstamp/pkg/orchestrator"
	"github.com/user/wmstamp/pkg/pipeline"
	"github.com/user/wmstamp/pkg/ports"
	"github.com/user/wmstamp/pkg/stages/composite"
	"github.com/user/wmstamp/pkg/stages/scan"
	"github.com/user/wmstamp/pkg/stages/textlayer"
	"github.com/user/wmstamp/pkg/summarizer"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	defaults := config.Defaults()

	ioCategory := l10n.T("Input and Output")
	wmCategory := l10n.T("Watermark")
	logCategory := l10n.T("Logging")
	debugCategory := l10n.T("Debug")

	return &cli.App{
		Name:    "wmstamp",
		Usage:   l10n.T("Stamp a text watermark onto every image in a directory tree"),
		Version: version,
		Description: l10n.T("wmstamp writes a copy of each image with a rotated, shadowed text watermark " +
			"near its bottom-right corner, mirroring the input tree under the output directory."),
		Flags: []cli.Flag{
			// Input and output
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Value:    defaults.Input,
				Usage:    l10n.T("Input directory to scan for images"),
				Category: ioCategory,
			},
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    l10n.T("Output directory (default: <input>/watermarked)"),
				Category: ioCategory,
			},
			&cli.BoolFlag{
				Name:     "no-recursive",
				Usage:    l10n.T("Only process images directly inside the input directory"),
				Category: ioCategory,
			},
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    l10n.T("YAML configuration file"),
				Category: ioCategory,
			},

			// Watermark
			&cli.StringFlag{
				Name:     "text",
				Aliases:  []string{"t"},
				Value:    defaults.Text,
				Usage:    l10n.T("Watermark text"),
				Category: wmCategory,
			},
			&cli.Float64Flag{
				Name:     "opacity",
				Value:    defaults.Opacity,
				Usage:    l10n.T("Watermark opacity (0.0-1.0)"),
				Category: wmCategory,
			},
			&cli.Float64Flag{
				Name:     "scale",
				Value:    defaults.Scale,
				Usage:    l10n.T("Font size as a fraction of the shorter image side"),
				Category: wmCategory,
			},
			&cli.Float64Flag{
				Name:     "margin",
				Value:    defaults.Margin,
				Usage:    l10n.T("Margin as a fraction of the shorter image side"),
				Category: wmCategory,
			},
			&cli.Float64Flag{
				Name:     "angle",
				Value:    defaults.Angle,
				Usage:    l10n.T("Counter-clockwise rotation in degrees"),
				Category: wmCategory,
			},
			&cli.StringFlag{
				Name:     "font",
				Aliases:  []string{"f"},
				Usage:    l10n.T("Path to a TrueType/OpenType font file"),
				Category: wmCategory,
			},

			// Logging
			&cli.StringFlag{
				Name:     "log-level",
				Aliases:  []string{"l"},
				Value:    defaults.LogLevel,
				Usage:    l10n.T("Log level (debug, info, warn, error)"),
				Category: logCategory,
			},
			&cli.BoolFlag{
				Name:     "quiet",
				Aliases:  []string{"q"},
				Usage:    l10n.T("Suppress all log output"),
				Category: logCategory,
			},
			&cli.StringFlag{
				Name:     "summary",
				Aliases:  []string{"s"},
				Usage:    l10n.T("Output execution summary to file (Markdown format)"),
				Category: logCategory,
			},

			// Debug
			&cli.StringFlag{
				Name:     "debug-dir",
				Aliases:  []string{"d"},
				Usage:    l10n.T("Directory for intermediate text layers and overlays"),
				Category: debugCategory,
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			var log ports.Logger
			if c.Bool("quiet") {
				log = logger.NewNoop()
			} else {
				log = logger.NewConsole(ports.ParseLogLevel(cfg.LogLevel))
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return execute(ctx, cfg, log)
		},
	}
}

// loadConfig merges defaults, the optional config file and explicitly set
// flags, in that order.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if c.IsSet("input") {
		cfg.Input = c.String("input")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("no-recursive") {
		cfg.Recursive = !c.Bool("no-recursive")
	}
	if c.IsSet("text") {
		cfg.Text = c.String("text")
	}
	if c.IsSet("opacity") {
		cfg.Opacity = c.Float64("opacity")
	}
	if c.IsSet("scale") {
		cfg.Scale = c.Float64("scale")
	}
	if c.IsSet("margin") {
		cfg.Margin = c.Float64("margin")
	}
	if c.IsSet("angle") {
		cfg.Angle = c.Float64("angle")
	}
	if c.IsSet("font") {
		cfg.Font = c.String("font")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("summary") {
		cfg.Summary = c.String("summary")
	}
	if c.IsSet("debug-dir") {
		cfg.DebugDir = c.String("debug-dir")
	}

	return cfg, nil
}

// execute wires the adapters and runs the pipeline. Only invalid input
// produces a non-zero exit; per-file failures are reported and tolerated.
func execute(ctx context.Context, cfg config.Config, log ports.Logger) error {
	if err := cfg.Validate(); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	// Create adapters
	fs := osfilesystem.New()
	codec := imagingcodec.New()
	fonts := fontresolver.New(fs, fontresolver.CandidatesFor(runtime.GOOS, cfg.FontCandidates), log)

	// Create debug sink
	var sink ports.DebugSink
	if cfg.DebugDir != "" {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.DebugDir, fs, codec)
	} else {
		sink = nullsink.New()
	}

	// Create stages
	layers := textlayer.NewBuilder(glyphraster.New(), fonts, log)
	compositeStage := composite.NewStage(layers, sink, log)
	scanStage := scan.NewStage(fs, log)

	orch := orchestrator.New(scanStage, compositeStage, codec, fonts, fs, sink, log)

	result, err := orch.Run(ctx, cfg.ToOrchestratorConfig())
	if err != nil {
		if errors.Is(err, pipeline.ErrInvalidInput) {
			return cli.Exit(err.Error(), 1)
		}
		return err
	}

	if cfg.Summary != "" {
		formatter := summarizer.NewMarkdownFormatter(
			summarizer.WithTranslator(func(s string) string { return l10n.T(s) }),
			summarizer.WithVersion(version),
		)
		writer := summarizer.NewWriter(formatter, fs)
		if err := writer.Write(cfg.Summary, buildSummary(result, cfg)); err != nil {
			log.Warn("Failed to write summary: %s", err.Error())
		} else {
			log.Info("Summary written to %s", cfg.Summary)
		}
	}

	return nil
}

// buildSummary converts a run result into a summary.
func buildSummary(result orchestrator.RunResult, cfg config.Config) *summarizer.Summary {
	b := summarizer.NewBuilder().
		WithDirectories(result.InputDir, result.OutputDir).
		WithCounts(result.Total, result.Succeeded).
		WithOutput(result.OutputBytes(), result.Duration).
		WithInterruption(result.Interrupted, result.Remaining).
		WithSettings(summarizer.Settings{
			Text:        cfg.Text,
			Opacity:     cfg.Opacity,
			Scale:       cfg.Scale,
			Margin:      cfg.Margin,
			Angle:       cfg.Angle,
			Font:        result.Font,
			Recursive:   cfg.Recursive,
			JPEGQuality: cfg.JPEGQuality,
			WebPQuality: cfg.WebPQuality,
		})

	for _, f := range result.Failures() {
		b.AddFailure(f.Source, string(f.Err.Kind), f.Err.Err.Error())
	}

	return b.Build()
}
