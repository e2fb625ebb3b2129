// Package glyphraster measures and draws text with golang.org/x/image/font faces.
package glyphraster

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/user/wmstamp/pkg/ports"
)

// ErrNoGlyphs is returned when text renders no ink.
var ErrNoGlyphs = errors.New("text has no visible glyphs")

// Rasterizer implements ports.TextRasterizer.
type Rasterizer struct{}

// New creates a new Rasterizer.
func New() *Rasterizer {
	return &Rasterizer{}
}

// Measure returns the ink bounds of text with the dot at the origin.
func (r *Rasterizer) Measure(face font.Face, text string) (image.Rectangle, error) {
	if face == nil {
		return image.Rectangle{}, errors.New("nil font face")
	}
	b, _ := font.BoundString(face, text)
	ink := image.Rect(b.Min.X.Floor(), b.Min.Y.Floor(), b.Max.X.Ceil(), b.Max.Y.Ceil())
	if ink.Empty() {
		return image.Rectangle{}, fmt.Errorf("measure %q: %w", text, ErrNoGlyphs)
	}
	return ink, nil
}

// Draw renders text with its ink box starting at at.
func (r *Rasterizer) Draw(dst *image.NRGBA, face font.Face, text string, at image.Point, fill color.NRGBA) error {
	ink, err := r.Measure(face, text)
	if err != nil {
		return err
	}

	// Same glyph walk as font.Drawer.DrawString, but blending with paste
	// semantics instead of draw.Over.
	dot := fixed.P(at.X-ink.Min.X, at.Y-ink.Min.Y)
	prev := rune(-1)
	for _, c := range text {
		if prev >= 0 {
			dot.X += face.Kern(prev, c)
		}
		dr, mask, maskp, advance, ok := face.Glyph(dot, c)
		if !ok {
			// A missing glyph neither advances nor becomes prev, exactly as
			// in font.BoundString. Measure relies on that walk, so change
			// both or neither.
			continue
		}
		blendMask(dst, dr, mask, maskp, fill)
		dot.X += advance
		prev = c
	}
	return nil
}

// blendMask moves each channel of dst towards fill by the mask coverage.
func blendMask(dst *image.NRGBA, dr image.Rectangle, mask image.Image, maskp image.Point, fill color.NRGBA) {
	clip := dr.Intersect(dst.Bounds())
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		for x := clip.Min.X; x < clip.Max.X; x++ {
			_, _, _, ma := mask.At(maskp.X+x-dr.Min.X, maskp.Y+y-dr.Min.Y).RGBA()
			m := ma >> 8
			if m == 0 {
				continue
			}
			i := dst.PixOffset(x, y)
			p := dst.Pix[i : i+4 : i+4]
			p[0] = lerp(p[0], fill.R, m)
			p[1] = lerp(p[1], fill.G, m)
			p[2] = lerp(p[2], fill.B, m)
			p[3] = lerp(p[3], fill.A, m)
		}
	}
}

func lerp(dst, src uint8, m uint32) uint8 {
	return uint8((uint32(src)*m + uint32(dst)*(255-m) + 127) / 255)
}

// Ensure Rasterizer implements ports.TextRasterizer
var _ ports.TextRasterizer = (*Rasterizer)(nil)
