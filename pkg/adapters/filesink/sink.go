// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/user/wmstamp/pkg/pipeline"
	"github.com/user/wmstamp/pkg/ports"
)

// Sink saves intermediate rasters as PNG files under a base directory.
type Sink struct {
	baseDir string
	fs      ports.FileSystem
	codec   ports.ImageCodec
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem, codec ports.ImageCodec) *Sink {
	return &Sink{
		baseDir: baseDir,
		fs:      fs,
		codec:   codec,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveTextLayer saves the rotated text raster built for source.
func (s *Sink) SaveTextLayer(source string, img image.Image) error {
	return s.savePNG("textlayers", source, img)
}

// SaveOverlay saves the full-size staged overlay built for source.
func (s *Sink) SaveOverlay(source string, img image.Image) error {
	return s.savePNG("overlays", source, img)
}

// SaveRunJSON saves the run summary as JSON.
func (s *Sink) SaveRunJSON(data []byte) error {
	path := filepath.Join(s.baseDir, "run.json")
	return s.fs.WriteFile(path, data)
}

func (s *Sink) savePNG(kind, source string, img image.Image) error {
	dir := filepath.Join(s.baseDir, kind)
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	name := FileName(source)
	data, err := s.codec.Encode(pipeline.Image{Pixels: img, Mode: pipeline.ModeRGBA}, name, ports.EncodeOptions{})
	if err != nil {
		return fmt.Errorf("encode %s: %w", kind, err)
	}
	return s.fs.WriteFile(filepath.Join(dir, name), data)
}

// FileName flattens a source path into a single PNG file name,
// e.g. "sub/a.jpg" becomes "sub_a.jpg.png".
func FileName(source string) string {
	name := strings.TrimLeft(filepath.ToSlash(source), "/")
	name = strings.NewReplacer("/", "_", ":", "_", "\\", "_").Replace(name)
	if name == "" {
		name = "image"
	}
	return name + ".png"
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
