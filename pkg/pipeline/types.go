package pipeline

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/font"
)

// =============================================================================
// Images
// =============================================================================

// Mode is the color mode of an image as seen by the save path.
type Mode int

const (
	// ModeRGB is 8-bit opaque RGB.
	ModeRGB Mode = iota
	// ModeRGBA is 8-bit RGB with an alpha channel.
	ModeRGBA
	// ModeGray is 8-bit grayscale.
	ModeGray
	// ModeOther covers palette, CMYK and other layouts convertible to RGB.
	ModeOther
)

// String returns the conventional short name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeRGB:
		return "RGB"
	case ModeRGBA:
		return "RGBA"
	case ModeGray:
		return "L"
	default:
		return "other"
	}
}

// Orientation is an EXIF orientation value (1-8). Zero means untagged.
// The names describe the correction to apply; rotations are counter-clockwise.
type Orientation int

const (
	OrientationNone       Orientation = 0
	OrientationNormal     Orientation = 1
	OrientationFlipH      Orientation = 2
	OrientationRotate180  Orientation = 3
	OrientationFlipV      Orientation = 4
	OrientationTranspose  Orientation = 5
	OrientationRotate270  Orientation = 6
	OrientationTransverse Orientation = 7
	OrientationRotate90   Orientation = 8
)

// Image is a decoded raster plus the metadata the compositor needs.
type Image struct {
	Pixels      image.Image
	Mode        Mode
	Orientation Orientation
}

// Width returns the pixel width.
func (i Image) Width() int { return i.Pixels.Bounds().Dx() }

// Height returns the pixel height.
func (i Image) Height() int { return i.Pixels.Bounds().Dy() }

// =============================================================================
// Watermark Parameters
// =============================================================================

// Params is the immutable watermark configuration supplied per call.
type Params struct {
	Text        string
	Opacity     float64 // 0.0-1.0, clamped before use
	Scale       float64 // font size as a fraction of min(W,H)
	MarginRatio float64 // margin as a fraction of min(W,H)
	FontPath    string  // optional explicit font file
	Angle       float64 // degrees, counter-clockwise
}

// DefaultParams returns the stock watermark settings.
func DefaultParams() Params {
	return Params{
		Text:        "congcong",
		Opacity:     0.3,
		Scale:       0.04,
		MarginRatio: 0.02,
		Angle:       45,
	}
}

// =============================================================================
// Text Layer Stage Types
// =============================================================================

// TextLayerInput contains parameters for building a rotated text raster.
type TextLayerInput struct {
	Text     string
	FontSize int // pixels, >= 12
	Opacity  float64
	Angle    float64
	Font     Font
}

// Font is a resolved typeface that can be instantiated at a pixel size.
type Font interface {
	// Name identifies the font source (a file path or a built-in name).
	Name() string

	// Face returns a face rendering at size pixels.
	Face(size float64) (font.Face, error)
}

// =============================================================================
// Composite Stage Types
// =============================================================================

// CompositeInput contains a source image and the watermark to burn into it.
type CompositeInput struct {
	Source Image
	Params Params
	Font   Font

	// Label names the source in debug output. Optional.
	Label string
}

// =============================================================================
// Scan Stage Types
// =============================================================================

// ScanInput describes the directory trees of a run.
type ScanInput struct {
	InputDir  string
	OutputDir string
	Recursive bool
}

// FileJob pairs a source file with its mirrored destination.
type FileJob struct {
	Source      string
	Destination string
}

// ScanResult lists the files to watermark in lexical order.
type ScanResult struct {
	Jobs []FileJob
}

// =============================================================================
// Per-file results
// =============================================================================

// ErrInvalidInput marks a fatal problem with the run's input that aborts
// processing before any file is touched.
var ErrInvalidInput = errors.New("invalid input")

// FailureKind classifies per-file failures.
type FailureKind string

const (
	FailureRead   FailureKind = "read"
	FailureDecode FailureKind = "decode"
	FailureRender FailureKind = "render"
	FailureEncode FailureKind = "encode"
	FailureWrite  FailureKind = "write"
)

// FileError is the typed failure of a single file.
type FileError struct {
	Kind FailureKind
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// FileResult is the outcome of processing one file. Err is nil on success.
type FileResult struct {
	Source      string
	Destination string
	Bytes       int // encoded size written
	Err         *FileError
}

// OK reports whether the file was written.
func (r FileResult) OK() bool {
	return r.Err == nil
}
