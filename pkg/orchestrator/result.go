package orchestrator

import (
	"time"

	"github.com/user/wmstamp/pkg/pipeline"
)

// RunResult contains the outcome of a run for logging and summaries.
type RunResult struct {
	InputDir  string
	OutputDir string
	Font      string
	Params    pipeline.Params

	Total     int
	Succeeded int
	Results   []pipeline.FileResult

	// Interrupted is set when the run stopped early; Remaining files were
	// never attempted.
	Interrupted bool
	Remaining   int

	Duration time.Duration
}

// Failed returns the number of files that could not be processed.
func (r RunResult) Failed() int {
	return r.Total - r.Succeeded
}

// OutputBytes returns the total encoded size of all written files.
func (r RunResult) OutputBytes() int64 {
	var n int64
	for _, res := range r.Results {
		n += int64(res.Bytes)
	}
	return n
}

// Failures returns the failed file results in processing order.
func (r RunResult) Failures() []pipeline.FileResult {
	var out []pipeline.FileResult
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}

func (r *RunResult) record(res pipeline.FileResult) {
	r.Total++
	if res.OK() {
		r.Succeeded++
	}
	r.Results = append(r.Results, res)
}

// Report is the JSON form of a RunResult.
type Report struct {
	InputDir    string       `json:"input_dir"`
	OutputDir   string       `json:"output_dir"`
	Font        string       `json:"font"`
	Text        string       `json:"text"`
	Opacity     float64      `json:"opacity"`
	Scale       float64      `json:"scale"`
	Margin      float64      `json:"margin"`
	Angle       float64      `json:"angle"`
	Total       int          `json:"total"`
	Succeeded   int          `json:"succeeded"`
	Failed      int          `json:"failed"`
	Interrupted bool         `json:"interrupted"`
	Remaining   int          `json:"remaining,omitempty"`
	DurationMs  int64        `json:"duration_ms"`
	Files       []ReportFile `json:"files"`
}

// ReportFile is one processed file in a Report.
type ReportFile struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	OK          bool   `json:"ok"`
	Bytes       int    `json:"bytes,omitempty"`
	Kind        string `json:"kind,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Report converts r for JSON output.
func (r RunResult) Report() Report {
	rep := Report{
		InputDir:    r.InputDir,
		OutputDir:   r.OutputDir,
		Font:        r.Font,
		Text:        r.Params.Text,
		Opacity:     r.Params.Opacity,
		Scale:       r.Params.Scale,
		Margin:      r.Params.MarginRatio,
		Angle:       r.Params.Angle,
		Total:       r.Total,
		Succeeded:   r.Succeeded,
		Failed:      r.Failed(),
		Interrupted: r.Interrupted,
		Remaining:   r.Remaining,
		DurationMs:  r.Duration.Milliseconds(),
		Files:       make([]ReportFile, 0, len(r.Results)),
	}
	for _, res := range r.Results {
		f := ReportFile{Source: res.Source, Destination: res.Destination, OK: res.OK(), Bytes: res.Bytes}
		if res.Err != nil {
			f.Kind = string(res.Err.Kind)
			f.Error = res.Err.Err.Error()
		}
		rep.Files = append(rep.Files, f)
	}
	return rep
}
