// Package summarizer renders the outcome of a watermarking run as a
// human-readable report.
package summarizer

import "time"

// Summary contains all data collected during a run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Run results
	Run RunInfo

	// Watermark settings
	Settings Settings

	// Failed files in processing order
	Failures []Failure
}

// RunInfo contains directory and count information.
type RunInfo struct {
	InputDir    string
	OutputDir   string
	Total       int
	Succeeded   int
	OutputBytes int64
	DurationMs  int64

	// Interrupted runs leave Remaining files unprocessed.
	Interrupted bool
	Remaining   int
}

// Failed returns the number of failed files.
func (r RunInfo) Failed() int {
	return r.Total - r.Succeeded
}

// Settings contains the watermark configuration.
type Settings struct {
	Text      string
	Opacity   float64
	Scale     float64
	Margin    float64
	Angle     float64
	Font      string
	Recursive bool

	JPEGQuality int
	WebPQuality int
}

// Failure describes one file that could not be processed.
type Failure struct {
	Source string
	Stage  string
	Error  string
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithDirectories sets the input and output roots.
func (b *Builder) WithDirectories(input, output string) *Builder {
	b.summary.Run.InputDir = input
	b.summary.Run.OutputDir = output
	return b
}

// WithCounts sets the processed and succeeded file counts.
func (b *Builder) WithCounts(total, succeeded int) *Builder {
	b.summary.Run.Total = total
	b.summary.Run.Succeeded = succeeded
	return b
}

// WithOutput sets the total output size and the run duration.
func (b *Builder) WithOutput(bytes int64, duration time.Duration) *Builder {
	b.summary.Run.OutputBytes = bytes
	b.summary.Run.DurationMs = duration.Milliseconds()
	return b
}

// WithInterruption marks the run as stopped early.
func (b *Builder) WithInterruption(interrupted bool, remaining int) *Builder {
	b.summary.Run.Interrupted = interrupted
	b.summary.Run.Remaining = remaining
	return b
}

// WithSettings sets watermark settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// AddFailure appends a failed file.
func (b *Builder) AddFailure(source, stage, err string) *Builder {
	b.summary.Failures = append(b.summary.Failures, Failure{Source: source, Stage: stage, Error: err})
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
