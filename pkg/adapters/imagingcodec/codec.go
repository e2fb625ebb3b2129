// Package imagingcodec decodes and encodes still images with
// disintegration/imaging, reading EXIF orientation with goexif and writing
// WebP with chai2010/webp.
package imagingcodec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp"

	"github.com/user/wmstamp/pkg/pipeline"
	"github.com/user/wmstamp/pkg/ports"
)

// ErrUnsupportedFormat is returned for output extensions the codec cannot write.
var ErrUnsupportedFormat = errors.New("unsupported image format")

const (
	// DefaultJPEGQuality is used when EncodeOptions.JPEGQuality is unset.
	DefaultJPEGQuality = 90
	// DefaultWebPQuality is used when EncodeOptions.WebPQuality is unset.
	DefaultWebPQuality = 80
)

// Codec implements ports.ImageCodec.
type Codec struct{}

// New creates a new Codec.
func New() *Codec {
	return &Codec{}
}

// Decode parses data without applying orientation; the EXIF orientation is
// returned alongside the pixels.
func (c *Codec) Decode(data []byte) (pipeline.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return pipeline.Image{}, fmt.Errorf("decode image: %w", err)
	}
	return pipeline.Image{
		Pixels:      img,
		Mode:        DetectMode(img),
		Orientation: ReadOrientation(data),
	}, nil
}

// DetectMode classifies the in-memory layout of img.
func DetectMode(img image.Image) pipeline.Mode {
	switch m := img.(type) {
	case *image.Gray, *image.Gray16:
		return pipeline.ModeGray
	case *image.NRGBA, *image.NRGBA64, *image.NYCbCrA:
		return pipeline.ModeRGBA
	case *image.RGBA:
		if m.Opaque() {
			return pipeline.ModeRGB
		}
		return pipeline.ModeRGBA
	case *image.RGBA64:
		if m.Opaque() {
			return pipeline.ModeRGB
		}
		return pipeline.ModeRGBA
	case *image.YCbCr:
		return pipeline.ModeRGB
	default:
		return pipeline.ModeOther
	}
}

// ReadOrientation returns the EXIF orientation tag of data, or
// OrientationNone when there is no valid tag.
func ReadOrientation(data []byte) (o pipeline.Orientation) {
	// goexif panics on some malformed blocks.
	defer func() {
		if recover() != nil {
			o = pipeline.OrientationNone
		}
	}()

	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return pipeline.OrientationNone
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return pipeline.OrientationNone
	}
	v, err := tag.Int(0)
	if err != nil || v < 1 || v > 8 {
		return pipeline.OrientationNone
	}
	return pipeline.Orientation(v)
}

// Encode writes img in the format implied by the extension of path. JPEG
// output is flattened to opaque RGB.
func (c *Codec) Encode(img pipeline.Image, path string, opts ports.EncodeOptions) ([]byte, error) {
	if img.Pixels == nil {
		return nil, errors.New("encode: nil image")
	}

	var buf bytes.Buffer
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".jpg", ".jpeg":
		quality := opts.JPEGQuality
		if quality <= 0 {
			quality = DefaultJPEGQuality
		}
		// The standard library encoder has no Huffman optimisation pass;
		// opts.Optimize is accepted and ignored.
		if err := imaging.Encode(&buf, pipeline.DropAlpha(img.Pixels), imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	case ".webp":
		quality := opts.WebPQuality
		if quality <= 0 {
			quality = DefaultWebPQuality
		}
		if err := webp.Encode(&buf, img.Pixels, &webp.Options{Quality: float32(quality)}); err != nil {
			return nil, fmt.Errorf("encode webp: %w", err)
		}
	default:
		if !c.Supports(path) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
		}
		format, err := imaging.FormatFromExtension(ext)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
		}
		if err := imaging.Encode(&buf, img.Pixels, format); err != nil {
			return nil, fmt.Errorf("encode %s: %w", format, err)
		}
	}
	return buf.Bytes(), nil
}

// Supports reports whether path has an extension the codec can write.
func (c *Codec) Supports(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".webp", ".bmp", ".tif", ".tiff":
		return true
	}
	return false
}

// Ensure Codec implements ports.ImageCodec
var _ ports.ImageCodec = (*Codec)(nil)
