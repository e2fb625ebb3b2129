// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/user/wmstamp/pkg/orchestrator"
	"github.com/user/wmstamp/pkg/pipeline"
	"github.com/user/wmstamp/pkg/ports"
)

// Config represents the full configuration for wmstamp.
type Config struct {
	// Input/Output
	Input     string `yaml:"input"`
	Output    string `yaml:"output"`
	Recursive bool   `yaml:"recursive"`

	// Watermark
	Text    string  `yaml:"text"`
	Opacity float64 `yaml:"opacity"`
	Scale   float64 `yaml:"scale"`
	Margin  float64 `yaml:"margin"`
	Font    string  `yaml:"font"`
	Angle   float64 `yaml:"angle"`

	// FontCandidates replaces the built-in system font list per GOOS.
	FontCandidates map[string][]string `yaml:"font_candidates"`

	// Encoding
	JPEGQuality int `yaml:"jpeg_quality"`
	WebPQuality int `yaml:"webp_quality"`

	// Output
	LogLevel string `yaml:"log_level"`
	DebugDir string `yaml:"debug_dir"`
	Summary  string `yaml:"summary"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	p := pipeline.DefaultParams()
	return Config{
		Input:     "pictures",
		Recursive: true,

		Text:    p.Text,
		Opacity: p.Opacity,
		Scale:   p.Scale,
		Margin:  p.MarginRatio,
		Angle:   p.Angle,

		JPEGQuality: 90,
		WebPQuality: 80,

		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file on top of Defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Validate reports settings that make a run impossible. Problems wrap
// pipeline.ErrInvalidInput.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Text) == "" {
		errs = append(errs, errors.New("watermark text must not be empty"))
	}
	if strings.TrimSpace(c.Input) == "" {
		errs = append(errs, errors.New("input directory must be set"))
	}
	if !finite(c.Opacity) || !finite(c.Angle) {
		errs = append(errs, errors.New("opacity and angle must be finite numbers"))
	}
	if !finite(c.Scale) || c.Scale < 0 {
		errs = append(errs, fmt.Errorf("scale must not be negative, got %v", c.Scale))
	}
	if !finite(c.Margin) || c.Margin < 0 {
		errs = append(errs, fmt.Errorf("margin must not be negative, got %v", c.Margin))
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		errs = append(errs, fmt.Errorf("jpeg_quality must be between 1 and 100, got %d", c.JPEGQuality))
	}
	if c.WebPQuality < 1 || c.WebPQuality > 100 {
		errs = append(errs, fmt.Errorf("webp_quality must be between 1 and 100, got %d", c.WebPQuality))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", pipeline.ErrInvalidInput, errors.Join(errs...))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Params returns the watermark parameters.
func (c Config) Params() pipeline.Params {
	return pipeline.Params{
		Text:        c.Text,
		Opacity:     c.Opacity,
		Scale:       c.Scale,
		MarginRatio: c.Margin,
		FontPath:    c.Font,
		Angle:       c.Angle,
	}
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	return orchestrator.Config{
		InputDir:  c.Input,
		OutputDir: c.Output,
		Recursive: c.Recursive,
		Params:    c.Params(),
		Encode: ports.EncodeOptions{
			JPEGQuality: c.JPEGQuality,
			Optimize:    true,
			WebPQuality: c.WebPQuality,
		},
	}
}
