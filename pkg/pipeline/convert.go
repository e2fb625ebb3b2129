package pipeline

import (
	"image"

	"github.com/disintegration/imaging"
)

// DropAlpha returns an opaque copy of img. Color values are kept as stored
// (non-premultiplied); the alpha channel is discarded, not blended.
func DropAlpha(img image.Image) *image.NRGBA {
	out := imaging.Clone(img)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xff
	}
	return out
}

// ToGray converts img to 8-bit luma using the ITU-R 601-2 weights
// (L = R*299/1000 + G*587/1000 + B*114/1000). Alpha is ignored.
func ToGray(img image.Image) *image.Gray {
	src := imaging.Clone(img)
	b := src.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		si := src.PixOffset(b.Min.X, b.Min.Y+y)
		di := out.PixOffset(0, y)
		for x := 0; x < b.Dx(); x++ {
			r := uint32(src.Pix[si])
			g := uint32(src.Pix[si+1])
			bl := uint32(src.Pix[si+2])
			out.Pix[di] = uint8((r*19595 + g*38470 + bl*7471 + 0x8000) >> 16)
			si += 4
			di++
		}
	}
	return out
}
