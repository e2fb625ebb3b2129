// Package orchestrator drives a watermarking run: it scans the input tree,
// stamps each image and writes the mirrored output tree.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/user/wmstamp/pkg/pipeline"
	"github.com/user/wmstamp/pkg/ports"
)

// DefaultOutputSubdir is created inside the input root when no output
// directory is given.
const DefaultOutputSubdir = "watermarked"

// Config contains all configuration for a run.
type Config struct {
	InputDir  string
	OutputDir string // empty selects <InputDir>/watermarked
	Recursive bool

	Params pipeline.Params
	Encode ports.EncodeOptions
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		InputDir:  "pictures",
		Recursive: true,
		Params:    pipeline.DefaultParams(),
		Encode: ports.EncodeOptions{
			JPEGQuality: 90,
			Optimize:    true,
			WebPQuality: 80,
		},
	}
}

// Orchestrator processes files one at a time. Per-file failures are
// recorded and never abort the run.
type Orchestrator struct {
	scanStage      pipeline.Stage[pipeline.ScanInput, pipeline.ScanResult]
	compositeStage pipeline.Stage[pipeline.CompositeInput, pipeline.Image]
	codec          ports.ImageCodec
	fonts          ports.FontResolver
	fs             ports.FileSystem
	sink           ports.DebugSink
	logger         ports.Logger
}

// New creates a new Orchestrator.
func New(
	scanStage pipeline.Stage[pipeline.ScanInput, pipeline.ScanResult],
	compositeStage pipeline.Stage[pipeline.CompositeInput, pipeline.Image],
	codec ports.ImageCodec,
	fonts ports.FontResolver,
	fs ports.FileSystem,
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		scanStage:      scanStage,
		compositeStage: compositeStage,
		codec:          codec,
		fonts:          fonts,
		fs:             fs,
		sink:           sink,
		logger:         logger,
	}
}

// Run watermarks every image under cfg.InputDir. It returns an error only
// when the run cannot start: a missing input directory or an output
// directory that cannot be created, both wrapping pipeline.ErrInvalidInput.
// Cancelling ctx stops the run before the next file; the file in progress
// still completes.
func (o *Orchestrator) Run(ctx context.Context, cfg Config) (RunResult, error) {
	started := time.Now()

	inputDir, err := o.fs.Resolve(cfg.InputDir)
	if err != nil {
		inputDir = cfg.InputDir
	}
	if isDir, err := o.fs.IsDir(inputDir); err != nil || !isDir {
		o.logger.Error("Input directory does not exist: %s", inputDir)
		return RunResult{}, fmt.Errorf("%w: input directory does not exist: %s", pipeline.ErrInvalidInput, inputDir)
	}

	outputDir := filepath.Join(inputDir, DefaultOutputSubdir)
	if cfg.OutputDir != "" {
		if outputDir, err = o.fs.Resolve(cfg.OutputDir); err != nil {
			outputDir = cfg.OutputDir
		}
	}
	if err := o.fs.MkdirAll(outputDir); err != nil {
		o.logger.Error("Failed to create output directory: %s", err.Error())
		return RunResult{}, fmt.Errorf("%w: create output directory: %v", pipeline.ErrInvalidInput, err)
	}

	scanned, err := o.scanStage.Execute(ctx, pipeline.ScanInput{
		InputDir:  inputDir,
		OutputDir: outputDir,
		Recursive: cfg.Recursive,
	})
	if err != nil {
		return RunResult{}, fmt.Errorf("scan stage: %w", err)
	}

	font := o.fonts.Resolve(cfg.Params.FontPath)
	o.logger.Debug("Using font %s", font.Name())

	result := RunResult{
		InputDir:  inputDir,
		OutputDir: outputDir,
		Font:      font.Name(),
		Params:    cfg.Params,
	}

	fileCtx := context.WithoutCancel(ctx)
	for i, job := range scanned.Jobs {
		if ctx.Err() != nil {
			o.logger.Warn("Interrupted, stopping after current file...")
			result.Interrupted = true
			result.Remaining = len(scanned.Jobs) - i
			break
		}

		label, err := filepath.Rel(inputDir, job.Source)
		if err != nil {
			label = filepath.Base(job.Source)
		}

		res := o.processFile(fileCtx, job, cfg.Params, font, cfg.Encode, label)
		result.record(res)
		if res.OK() {
			o.logger.Info("Processed: %s -> %s", res.Source, res.Destination)
		} else {
			o.logger.Error("Failed: %s | %s", res.Source, res.Err.Error())
		}
	}

	result.Duration = time.Since(started)
	o.logger.Info("Done. Succeeded %d/%d. Output directory: %s", result.Succeeded, result.Total, result.OutputDir)

	if o.sink != nil && o.sink.Enabled() {
		data, err := json.MarshalIndent(result.Report(), "", "  ")
		if err == nil {
			err = o.sink.SaveRunJSON(data)
		}
		if err != nil {
			o.logger.Warn("Failed to save run report: %s", err.Error())
		}
	}

	return result, nil
}

// ProcessFile watermarks a single file and writes it to job.Destination,
// creating parent directories. Nothing is written on failure.
func (o *Orchestrator) ProcessFile(ctx context.Context, job pipeline.FileJob, params pipeline.Params, opts ports.EncodeOptions) pipeline.FileResult {
	font := o.fonts.Resolve(params.FontPath)
	return o.processFile(ctx, job, params, font, opts, filepath.Base(job.Source))
}

func (o *Orchestrator) processFile(
	ctx context.Context,
	job pipeline.FileJob,
	params pipeline.Params,
	font ports.Font,
	opts ports.EncodeOptions,
	label string,
) pipeline.FileResult {
	fail := func(kind pipeline.FailureKind, err error) pipeline.FileResult {
		return pipeline.FileResult{
			Source:      job.Source,
			Destination: job.Destination,
			Err:         &pipeline.FileError{Kind: kind, Path: job.Source, Err: err},
		}
	}

	data, err := o.fs.ReadFile(job.Source)
	if err != nil {
		return fail(pipeline.FailureRead, err)
	}

	img, err := o.codec.Decode(data)
	if err != nil {
		return fail(pipeline.FailureDecode, err)
	}

	stamped, err := o.compositeStage.Execute(ctx, pipeline.CompositeInput{
		Source: img,
		Params: params,
		Font:   font,
		Label:  label,
	})
	if err != nil {
		return fail(pipeline.FailureRender, err)
	}

	encoded, err := o.codec.Encode(stamped, job.Destination, opts)
	if err != nil {
		return fail(pipeline.FailureEncode, err)
	}

	if err := o.fs.WriteFile(job.Destination, encoded); err != nil {
		return fail(pipeline.FailureWrite, err)
	}

	return pipeline.FileResult{Source: job.Source, Destination: job.Destination, Bytes: len(encoded)}
}
