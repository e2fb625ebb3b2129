package textlayer

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// MinFontSize is the smallest font size in pixels.
const MinFontSize = 12

// FontSize returns max(12, round(min(w,h) * scale)).
func FontSize(w, h int, scale float64) int {
	size := int(math.Round(float64(min(w, h)) * scale))
	if size < MinFontSize {
		return MinFontSize
	}
	return size
}

// Margin returns round(min(w,h) * ratio), never negative.
func Margin(w, h int, ratio float64) int {
	m := int(math.Round(float64(min(w, h)) * ratio))
	return max(0, m)
}

// Alpha converts an opacity to an 8-bit alpha. Opacity is clamped to [0,1];
// NaN counts as fully transparent.
func Alpha(opacity float64) uint8 {
	if math.IsNaN(opacity) || opacity <= 0 {
		return 0
	}
	if opacity >= 1 {
		return 255
	}
	return uint8(math.Round(255 * opacity))
}

// ShadowAlpha is half the primary alpha, rounded.
func ShadowAlpha(alpha uint8) uint8 {
	return uint8(math.Round(float64(alpha) * 0.5))
}

// Padding returns max(2, round(fontSize * 0.2)).
func Padding(fontSize int) int {
	return max(2, int(math.Round(float64(fontSize)*0.2)))
}

// normalizeAngle maps angle into [0,360). Non-finite angles become 0.
func normalizeAngle(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}
	a := math.Mod(angle, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// round15 rounds to 15 decimal places so that right angles produce exact
// zero and one terms.
func round15(v float64) float64 {
	return math.Round(v*1e15) / 1e15
}

func sincos(angle float64) (sin, cos float64) {
	s, c := math.Sincos(angle * math.Pi / 180)
	return round15(s), round15(c)
}

// RotatedSize returns the canvas size that exactly contains a w×h
// rectangle rotated by angle degrees about its center.
func RotatedSize(w, h int, angle float64) (int, int) {
	switch normalizeAngle(angle) {
	case 0, 180:
		return w, h
	case 90, 270:
		return h, w
	}

	sin, cos := sincos(normalizeAngle(angle))
	cx, cy := float64(w)/2, float64(h)/2
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [4][2]float64{{0, 0}, {float64(w), 0}, {float64(w), float64(h)}, {0, float64(h)}} {
		dx, dy := p[0]-cx, p[1]-cy
		x := cos*dx + sin*dy
		y := -sin*dx + cos*dy
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return int(math.Ceil(maxX) - math.Floor(minX)), int(math.Ceil(maxY) - math.Floor(minY))
}

// rotationMatrix maps source pixels of a w×h image into a nw×nh canvas,
// rotating counter-clockwise by angle degrees about the centers.
func rotationMatrix(w, h, nw, nh int, angle float64) f64.Aff3 {
	sin, cos := sincos(angle)
	csx, csy := float64(w)/2, float64(h)/2
	cdx, cdy := float64(nw)/2, float64(nh)/2
	return f64.Aff3{
		cos, sin, cdx - (cos*csx + sin*csy),
		-sin, cos, cdy - (-sin*csx + cos*csy),
	}
}

// RotateExpand rotates img counter-clockwise by angle degrees onto a canvas
// grown to contain the whole result. Exposed corners are transparent and
// arbitrary angles are resampled with Catmull-Rom. The input is not modified.
func RotateExpand(img image.Image, angle float64) *image.NRGBA {
	a := normalizeAngle(angle)
	switch a {
	case 0:
		return imaging.Clone(img)
	case 90:
		return imaging.Rotate90(img)
	case 180:
		return imaging.Rotate180(img)
	case 270:
		return imaging.Rotate270(img)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	nw, nh := RotatedSize(w, h, a)

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	if w == 0 || h == 0 {
		return imaging.Clone(dst)
	}
	s2d := rotationMatrix(w, h, nw, nh, a)
	// rotationMatrix assumes a zero-origin source.
	s2d[2] -= s2d[0]*float64(b.Min.X) + s2d[1]*float64(b.Min.Y)
	s2d[5] -= s2d[3]*float64(b.Min.X) + s2d[4]*float64(b.Min.Y)
	xdraw.CatmullRom.Transform(dst, s2d, img, b, xdraw.Src, nil)
	return imaging.Clone(dst)
}
