package composite

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/user/wmstamp/pkg/pipeline"
)

// Orient returns a zero-origin NRGBA copy of img with the EXIF orientation
// correction applied.
func Orient(img image.Image, o pipeline.Orientation) *image.NRGBA {
	switch o {
	case pipeline.OrientationFlipH:
		return imaging.FlipH(img)
	case pipeline.OrientationRotate180:
		return imaging.Rotate180(img)
	case pipeline.OrientationFlipV:
		return imaging.FlipV(img)
	case pipeline.OrientationTranspose:
		return imaging.Transpose(img)
	case pipeline.OrientationRotate270:
		return imaging.Rotate270(img)
	case pipeline.OrientationTransverse:
		return imaging.Transverse(img)
	case pipeline.OrientationRotate90:
		return imaging.Rotate90(img)
	default:
		return imaging.Clone(img)
	}
}

// Anchor returns the top-left corner of a rw×rh raster placed margin
// pixels from the bottom-right of a w×h canvas, clamped to be non-negative.
// An oversized raster is clipped by the paste, not scaled.
func Anchor(w, h, rw, rh, margin int) image.Point {
	return image.Pt(max(0, w-rw-margin), max(0, h-rh-margin))
}

// NewOverlay allocates a fully transparent w×h canvas. Color channels start
// white.
func NewOverlay(w, h int) *image.NRGBA {
	overlay := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(overlay.Pix); i += 4 {
		overlay.Pix[i], overlay.Pix[i+1], overlay.Pix[i+2] = 0xff, 0xff, 0xff
	}
	return overlay
}

// PasteMasked pastes src onto dst at at, using the alpha of src as the mask
// for every channel including alpha. Pixels outside dst are dropped.
func PasteMasked(dst, src *image.NRGBA, at image.Point) {
	sb := src.Bounds()
	r := image.Rectangle{Min: at, Max: at.Add(sb.Size())}.Intersect(dst.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			si := src.PixOffset(sb.Min.X+x-at.X, sb.Min.Y+y-at.Y)
			s := src.Pix[si : si+4 : si+4]
			m := uint32(s[3])
			if m == 0 {
				continue
			}
			di := dst.PixOffset(x, y)
			d := dst.Pix[di : di+4 : di+4]
			for c := 0; c < 4; c++ {
				d[c] = uint8((uint32(s[c])*m + uint32(d[c])*(255-m) + 127) / 255)
			}
		}
	}
}

// AlphaComposite returns overlay composited over base with the Porter-Duff
// over operator on non-premultiplied pixels. Where the overlay is fully
// transparent the base pixel is copied as is. Both images must have the same
// size; neither is modified.
func AlphaComposite(base, overlay *image.NRGBA) *image.NRGBA {
	bb, ob := base.Bounds(), overlay.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bb.Dx(), bb.Dy()))
	for y := 0; y < bb.Dy(); y++ {
		bi := base.PixOffset(bb.Min.X, bb.Min.Y+y)
		oi := overlay.PixOffset(ob.Min.X, ob.Min.Y+y)
		di := out.PixOffset(0, y)
		for x := 0; x < bb.Dx(); x++ {
			d := base.Pix[bi : bi+4 : bi+4]
			s := overlay.Pix[oi : oi+4 : oi+4]
			o := out.Pix[di : di+4 : di+4]

			sa, da := uint32(s[3]), uint32(d[3])
			src := sa * 255
			dst := da * (255 - sa)
			outA := src + dst
			if sa == 0 {
				// Untouched pixels keep their color even when fully transparent.
				copy(o, d)
			} else {
				for c := 0; c < 3; c++ {
					o[c] = uint8((uint32(s[c])*src + uint32(d[c])*dst + outA/2) / outA)
				}
				o[3] = uint8((outA + 127) / 255)
			}

			bi += 4
			oi += 4
			di += 4
		}
	}
	return out
}

// RestoreMode converts the blended RGBA result back to the family of the
// source mode. Modes without a direct equivalent become RGB.
func RestoreMode(img *image.NRGBA, mode pipeline.Mode) (image.Image, pipeline.Mode) {
	switch mode {
	case pipeline.ModeRGBA:
		return img, pipeline.ModeRGBA
	case pipeline.ModeGray:
		return pipeline.ToGray(img), pipeline.ModeGray
	default:
		return pipeline.DropAlpha(img), pipeline.ModeRGB
	}
}
