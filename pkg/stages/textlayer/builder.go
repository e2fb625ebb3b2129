// Package textlayer builds the rotated, shadowed text raster of a watermark.
package textlayer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/font"

	"github.com/user/wmstamp/pkg/pipeline"
	"github.com/user/wmstamp/pkg/ports"
)

// Builder renders watermark text into a tightly cropped RGBA raster.
type Builder struct {
	rasterizer ports.TextRasterizer
	fonts      ports.FontResolver
	logger     ports.Logger
}

// NewBuilder creates a text layer builder. fonts supplies the fallback face
// when the requested font cannot be instantiated.
func NewBuilder(rasterizer ports.TextRasterizer, fonts ports.FontResolver, logger ports.Logger) *Builder {
	return &Builder{
		rasterizer: rasterizer,
		fonts:      fonts,
		logger:     logger.WithComponent("textlayer"),
	}
}

// Execute implements pipeline.Stage.
func (b *Builder) Execute(ctx context.Context, in pipeline.TextLayerInput) (*image.NRGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return b.Build(in)
}

// Build draws a black shadow offset by one pixel and the white primary
// text onto a padded transparent canvas, then rotates it by in.Angle with
// canvas expansion.
func (b *Builder) Build(in pipeline.TextLayerInput) (*image.NRGBA, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, fmt.Errorf("%w: empty watermark text", pipeline.ErrInvalidInput)
	}

	size := max(in.FontSize, MinFontSize)
	face := b.face(in.Font, size)

	ink, err := b.rasterizer.Measure(face, in.Text)
	if err != nil {
		return nil, fmt.Errorf("measure text: %w", err)
	}

	alpha := Alpha(in.Opacity)
	shadow := ShadowAlpha(alpha)
	pad := Padding(size)

	layer := image.NewNRGBA(image.Rect(0, 0, ink.Dx()+2*pad, ink.Dy()+2*pad))
	for i := 0; i < len(layer.Pix); i += 4 {
		layer.Pix[i], layer.Pix[i+1], layer.Pix[i+2] = 0xff, 0xff, 0xff
	}

	if err := b.rasterizer.Draw(layer, face, in.Text, image.Pt(pad+1, pad+1), color.NRGBA{A: shadow}); err != nil {
		return nil, fmt.Errorf("draw shadow: %w", err)
	}
	if err := b.rasterizer.Draw(layer, face, in.Text, image.Pt(pad, pad), color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: alpha}); err != nil {
		return nil, fmt.Errorf("draw text: %w", err)
	}

	return RotateExpand(layer, in.Angle), nil
}

// face instantiates f at size, degrading to the fallback font.
func (b *Builder) face(f pipeline.Font, size int) font.Face {
	fallback := b.fonts.Fallback()
	if f == nil {
		f = fallback
	}
	face, err := f.Face(float64(size))
	if err == nil && face != nil {
		return face
	}
	b.logger.Warn("Font %s unusable at size %d, using %s", f.Name(), size, fallback.Name())
	face, err = fallback.Face(float64(size))
	if err != nil {
		return nil
	}
	return face
}

// Ensure Builder implements pipeline.Stage
var _ pipeline.Stage[pipeline.TextLayerInput, *image.NRGBA] = (*Builder)(nil)
