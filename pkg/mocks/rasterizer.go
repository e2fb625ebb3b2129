package mocks

import (
	"image"
	"image/color"

	"golang.org/x/image/font"

	"github.com/user/wmstamp/pkg/ports"
)

// Rasterizer is a mock implementation of ports.TextRasterizer.
// Without overrides it measures a fixed 40x10 box and fills it with the color.
type Rasterizer struct {
	MeasureFunc func(face font.Face, text string) (image.Rectangle, error)
	DrawFunc    func(dst *image.NRGBA, face font.Face, text string, at image.Point, fill color.NRGBA) error

	DrawCalls int
}

func (m *Rasterizer) Measure(face font.Face, text string) (image.Rectangle, error) {
	if m.MeasureFunc != nil {
		return m.MeasureFunc(face, text)
	}
	return image.Rect(0, -8, 40, 2), nil
}

func (m *Rasterizer) Draw(dst *image.NRGBA, face font.Face, text string, at image.Point, fill color.NRGBA) error {
	m.DrawCalls++
	if m.DrawFunc != nil {
		return m.DrawFunc(dst, face, text, at, fill)
	}
	r := image.Rect(at.X, at.Y, at.X+40, at.Y+10).Intersect(dst.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dst.SetNRGBA(x, y, fill)
		}
	}
	return nil
}

var _ ports.TextRasterizer = (*Rasterizer)(nil)
