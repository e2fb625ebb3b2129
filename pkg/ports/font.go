package ports

import (
	"image"
	"image/color"

	"golang.org/x/image/font"

	"github.com/user/wmstamp/pkg/pipeline"
)

// Font is a resolved typeface that can be instantiated at a pixel size.
type Font = pipeline.Font

// FontResolver picks a typeface. Resolution never fails: when neither the
// explicit path nor any candidate is usable a built-in face is returned.
type FontResolver interface {
	Resolve(explicitPath string) Font

	// Fallback returns the built-in face used when a resolved font cannot be
	// instantiated.
	Fallback() Font
}

// TextRasterizer measures and draws text.
type TextRasterizer interface {
	// Measure returns the tight ink bounds of text relative to a dot at the
	// origin on the baseline.
	Measure(face font.Face, text string) (image.Rectangle, error)

	// Draw renders text into dst so that the top-left corner of its ink box
	// lands at at. Glyph coverage blends every channel of dst towards fill,
	// alpha included.
	Draw(dst *image.NRGBA, face font.Face, text string, at image.Point, fill color.NRGBA) error
}
