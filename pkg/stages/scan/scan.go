// Package scan enumerates the images of an input tree and pairs each with
// its mirrored destination under the output root.
package scan

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/user/wmstamp/pkg/pipeline"
	"github.com/user/wmstamp/pkg/ports"
)

// AllowedExtensions are the lower-cased file extensions treated as images.
var AllowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// IsImageFile reports whether path has an image extension, ignoring case.
func IsImageFile(path string) bool {
	return AllowedExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsSubpath reports whether path equals parent or lies beneath it. Both
// must already be resolved.
func IsSubpath(path, parent string) bool {
	rel, err := filepath.Rel(parent, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Stage lists the files to watermark.
type Stage struct {
	fs     ports.FileSystem
	logger ports.Logger
}

// NewStage creates a new scan stage.
func NewStage(fs ports.FileSystem, logger ports.Logger) *Stage {
	return &Stage{
		fs:     fs,
		logger: logger.WithComponent("scan"),
	}
}

// Execute walks the input root and returns jobs in lexical source order.
// Files that resolve into the output root are skipped so earlier results
// are never stamped again.
func (s *Stage) Execute(ctx context.Context, in pipeline.ScanInput) (pipeline.ScanResult, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.ScanResult{}, err
	}

	isDir, err := s.fs.IsDir(in.InputDir)
	if err != nil || !isDir {
		return pipeline.ScanResult{}, fmt.Errorf("%w: input directory does not exist: %s", pipeline.ErrInvalidInput, in.InputDir)
	}

	outRoot, err := s.fs.Resolve(in.OutputDir)
	if err != nil {
		return pipeline.ScanResult{}, fmt.Errorf("resolve output directory: %w", err)
	}

	files, err := s.fs.ListFiles(in.InputDir, in.Recursive)
	if err != nil {
		return pipeline.ScanResult{}, fmt.Errorf("%w: list %s: %v", pipeline.ErrInvalidInput, in.InputDir, err)
	}

	var jobs []pipeline.FileJob
	for _, path := range files {
		if !IsImageFile(path) {
			continue
		}
		resolved, err := s.fs.Resolve(path)
		if err != nil {
			s.logger.Debug("Skipping unresolvable path %s: %s", path, err.Error())
			continue
		}
		if IsSubpath(resolved, outRoot) {
			continue
		}
		rel, err := filepath.Rel(in.InputDir, path)
		if err != nil {
			continue
		}
		jobs = append(jobs, pipeline.FileJob{
			Source:      path,
			Destination: filepath.Join(in.OutputDir, rel),
		})
	}

	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Source < jobs[j].Source })

	s.logger.Debug("Found %d image(s) in %s", len(jobs), in.InputDir)
	return pipeline.ScanResult{Jobs: jobs}, nil
}

// Ensure Stage implements pipeline.Stage
var _ pipeline.Stage[pipeline.ScanInput, pipeline.ScanResult] = (*Stage)(nil)
