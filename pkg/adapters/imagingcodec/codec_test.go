package imagingcodec

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/user/wmstamp/pkg/pipeline"
	"github.com/user/wmstamp/pkg/ports"
)

func gradient(w, h int, alpha uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 4), uint8(y * 4), 128, alpha})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}))
	return buf.Bytes()
}

// withOrientation inserts a minimal big-endian EXIF block carrying only the
// orientation tag right after the JPEG SOI marker.
func withOrientation(data []byte, o uint16) []byte {
	tiff := []byte{
		'M', 'M', 0x00, 0x2a, 0x00, 0x00, 0x00, 0x08, // header, IFD0 at 8
		0x00, 0x01, // one entry
		0x01, 0x12, 0x00, 0x03, 0x00, 0x00, 0x00, 0x01, byte(o >> 8), byte(o), 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, // no next IFD
	}
	payload := append([]byte("Exif\x00\x00"), tiff...)
	size := len(payload) + 2

	out := append([]byte{}, data[:2]...)
	out = append(out, 0xff, 0xe1, byte(size>>8), byte(size))
	out = append(out, payload...)
	return append(out, data[2:]...)
}

func TestCodec_DecodeModes(t *testing.T) {
	c := New()

	tests := []struct {
		name string
		data []byte
		want pipeline.Mode
	}{
		{"png with alpha", encodePNG(t, gradient(8, 8, 100)), pipeline.ModeRGBA},
		{"opaque png", encodePNG(t, gradient(8, 8, 255)), pipeline.ModeRGB},
		{"gray png", encodePNG(t, image.NewGray(image.Rect(0, 0, 8, 8))), pipeline.ModeGray},
		{"paletted png", encodePNG(t, image.NewPaletted(image.Rect(0, 0, 8, 8), color.Palette{color.Black, color.White})), pipeline.ModeOther},
		{"color jpeg", encodeJPEG(t, gradient(16, 16, 255)), pipeline.ModeRGB},
		{"gray jpeg", encodeJPEG(t, image.NewGray(image.Rect(0, 0, 16, 16))), pipeline.ModeGray},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := c.Decode(tt.data)
			require.NoError(t, err)
			require.Equal(t, tt.want, img.Mode)
			require.Equal(t, pipeline.OrientationNone, img.Orientation)
		})
	}
}

func TestCodec_DecodeCorrupt(t *testing.T) {
	c := New()

	_, err := c.Decode([]byte("definitely not an image"))
	require.Error(t, err)

	full := encodeJPEG(t, gradient(64, 64, 255))
	_, err = c.Decode(full[:20])
	require.Error(t, err)
}

func TestCodec_DecodeOrientation(t *testing.T) {
	c := New()
	data := withOrientation(encodeJPEG(t, gradient(20, 10, 255)), 6)

	img, err := c.Decode(data)
	require.NoError(t, err)
	require.Equal(t, pipeline.OrientationRotate270, img.Orientation)
	// Orientation is reported, not applied.
	require.Equal(t, 20, img.Width())
	require.Equal(t, 10, img.Height())
}

func TestReadOrientation_Garbage(t *testing.T) {
	require.Equal(t, pipeline.OrientationNone, ReadOrientation(nil))
	require.Equal(t, pipeline.OrientationNone, ReadOrientation([]byte{0xff, 0xd8, 0xff, 0xe1, 0x00}))
	require.Equal(t, pipeline.OrientationNone, ReadOrientation(withOrientation(encodeJPEG(t, gradient(4, 4, 255)), 42)))
}

func TestCodec_EncodeJPEGDropsAlpha(t *testing.T) {
	c := New()
	src := pipeline.Image{Pixels: gradient(32, 24, 50), Mode: pipeline.ModeRGBA}

	data, err := c.Encode(src, "out/photo.JPG", ports.EncodeOptions{JPEGQuality: 90, Optimize: true})
	require.NoError(t, err)

	decoded, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 32, 24), decoded.Bounds())
	_, isYCbCr := decoded.(*image.YCbCr)
	require.True(t, isYCbCr, "expected a color JPEG, got %T", decoded)
}

func TestCodec_EncodeJPEGGrayBecomesRGB(t *testing.T) {
	c := New()
	src := pipeline.Image{Pixels: image.NewGray(image.Rect(0, 0, 16, 16)), Mode: pipeline.ModeGray}

	data, err := c.Encode(src, "g.jpeg", ports.EncodeOptions{})
	require.NoError(t, err)

	decoded, err := c.Decode(data)
	require.NoError(t, err)
	require.Equal(t, pipeline.ModeRGB, decoded.Mode)
}

func TestCodec_EncodePNGRoundTrip(t *testing.T) {
	c := New()
	src := gradient(10, 7, 200)

	data, err := c.Encode(pipeline.Image{Pixels: src, Mode: pipeline.ModeRGBA}, "x.png", ports.EncodeOptions{})
	require.NoError(t, err)

	decoded, err := c.Decode(data)
	require.NoError(t, err)
	require.Equal(t, pipeline.ModeRGBA, decoded.Mode)

	got, ok := decoded.Pixels.(*image.NRGBA)
	require.True(t, ok, "expected *image.NRGBA, got %T", decoded.Pixels)
	require.Equal(t, src.Pix, got.Pix)
}

func TestCodec_EncodeOtherFormats(t *testing.T) {
	c := New()
	src := pipeline.Image{Pixels: gradient(12, 9, 255), Mode: pipeline.ModeRGB}

	for _, path := range []string{"a.bmp", "a.tif", "a.TIFF", "a.webp"} {
		t.Run(path, func(t *testing.T) {
			data, err := c.Encode(src, path, ports.EncodeOptions{WebPQuality: 80})
			require.NoError(t, err)

			decoded, err := c.Decode(data)
			require.NoError(t, err)
			require.Equal(t, 12, decoded.Width())
			require.Equal(t, 9, decoded.Height())
		})
	}
}

func TestCodec_EncodeUnsupported(t *testing.T) {
	c := New()
	src := pipeline.Image{Pixels: gradient(2, 2, 255), Mode: pipeline.ModeRGB}

	_, err := c.Encode(src, "a.xyz", ports.EncodeOptions{})
	require.True(t, errors.Is(err, ErrUnsupportedFormat), "got %v", err)

	_, err = c.Encode(pipeline.Image{}, "a.png", ports.EncodeOptions{})
	require.Error(t, err)
}

func TestCodec_Supports(t *testing.T) {
	c := New()
	require.True(t, c.Supports("a.JPG"))
	require.True(t, c.Supports("dir/b.webp"))
	require.False(t, c.Supports("c.gif"))
	require.False(t, c.Supports("noext"))
}

func TestDetectMode_RGBA(t *testing.T) {
	opaque := image.NewRGBA(image.Rect(0, 0, 1, 1))
	opaque.Pix[3] = 0xff
	require.Equal(t, pipeline.ModeRGB, DetectMode(opaque))

	translucent := image.NewRGBA(image.Rect(0, 0, 1, 1))
	require.Equal(t, pipeline.ModeRGBA, DetectMode(translucent))

	require.Equal(t, pipeline.ModeOther, DetectMode(image.NewCMYK(image.Rect(0, 0, 1, 1))))
}
