package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
// It allows saving intermediate rasters for inspecting a watermark run.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveTextLayer saves the rotated text raster built for a source file.
	SaveTextLayer(source string, img image.Image) error

	// SaveOverlay saves the full-size staged overlay for a source file.
	SaveOverlay(source string, img image.Image) error

	// SaveRunJSON saves the run result as JSON.
	SaveRunJSON(data []byte) error
}
