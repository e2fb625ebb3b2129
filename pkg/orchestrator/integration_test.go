package orchestrator

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/user/wmstamp/pkg/adapters/fontresolver"
	"github.com/user/wmstamp/pkg/adapters/glyphraster"
	"github.com/user/wmstamp/pkg/adapters/imagingcodec"
	"github.com/user/wmstamp/pkg/adapters/logger"
	"github.com/user/wmstamp/pkg/adapters/nullsink"
	"github.com/user/wmstamp/pkg/adapters/osfilesystem"
	"github.com/user/wmstamp/pkg/stages/composite"
	"github.com/user/wmstamp/pkg/stages/scan"
	"github.com/user/wmstamp/pkg/stages/textlayer"
)

func newRealOrchestrator() *Orchestrator {
	log := logger.NewNoop()
	fs := osfilesystem.New()
	fonts := fontresolver.New(fs, []string{}, log)
	builder := textlayer.NewBuilder(glyphraster.New(), fonts, log)
	sink := nullsink.New()
	return New(
		scan.NewStage(fs, log),
		composite.NewStage(builder, sink, log),
		imagingcodec.New(),
		fonts,
		fs,
		sink,
		log,
	)
}

func writeImage(t *testing.T, path string, img image.Image) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	var buf bytes.Buffer
	switch filepath.Ext(path) {
	case ".jpg":
		require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	default:
		require.NoError(t, png.Encode(&buf, img))
	}
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

func opaque(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x), uint8(y), 90, 255})
		}
	}
	return img
}

func TestIntegration_DirectoryRun(t *testing.T) {
	in := t.TempDir()
	writeImage(t, filepath.Join(in, "photo.jpg"), opaque(320, 240))
	writeImage(t, filepath.Join(in, "album", "icon.png"), image.NewNRGBA(image.Rect(0, 0, 64, 48)))
	writeImage(t, filepath.Join(in, "album", "gray.png"), image.NewGray(image.Rect(0, 0, 50, 90)))
	require.NoError(t, os.WriteFile(filepath.Join(in, "notes.txt"), []byte("not an image"), 0644))
	writeImage(t, filepath.Join(in, "watermarked", "stale.png"), opaque(10, 10))

	cfg := DefaultConfig()
	cfg.InputDir = in
	cfg.Params.Text = "SAMPLE"

	result, err := newRealOrchestrator().Run(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, 3, result.Total)
	require.Equal(t, 3, result.Succeeded)

	out := result.OutputDir
	codec := imagingcodec.New()

	data, err := os.ReadFile(filepath.Join(out, "photo.jpg"))
	require.NoError(t, err)
	photo, err := codec.Decode(data)
	require.NoError(t, err)
	require.Equal(t, 320, photo.Width())
	require.Equal(t, 240, photo.Height())
	_, isYCbCr := photo.Pixels.(*image.YCbCr)
	require.True(t, isYCbCr, "expected color JPEG without alpha, got %T", photo.Pixels)

	data, err = os.ReadFile(filepath.Join(out, "album", "icon.png"))
	require.NoError(t, err)
	icon, err := codec.Decode(data)
	require.NoError(t, err)
	require.Equal(t, 64, icon.Width())

	data, err = os.ReadFile(filepath.Join(out, "album", "gray.png"))
	require.NoError(t, err)
	gray, err := codec.Decode(data)
	require.NoError(t, err)
	require.Equal(t, 50, gray.Width())
	require.Equal(t, 90, gray.Height())

	_, err = os.Stat(filepath.Join(out, "watermarked", "stale.png"))
	require.True(t, os.IsNotExist(err), "existing outputs must not be stamped again")
	_, err = os.Stat(filepath.Join(out, "notes.txt"))
	require.True(t, os.IsNotExist(err))
}

func TestIntegration_CorruptFile(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	for _, name := range []string{"a.png", "b.png", "c.png", "d.png"} {
		writeImage(t, filepath.Join(in, name), opaque(40, 40))
	}
	require.NoError(t, os.WriteFile(filepath.Join(in, "e.jpg"), []byte{0xff, 0xd8, 0xff, 0xe0, 0x00}, 0644))

	cfg := DefaultConfig()
	cfg.InputDir = in
	cfg.OutputDir = out

	result, err := newRealOrchestrator().Run(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, 5, result.Total)
	require.Equal(t, 4, result.Succeeded)

	_, err = os.Stat(filepath.Join(out, "e.jpg"))
	require.True(t, os.IsNotExist(err))
}

func TestIntegration_Deterministic(t *testing.T) {
	in := t.TempDir()
	writeImage(t, filepath.Join(in, "a.png"), opaque(200, 150))

	run := func(out string) []byte {
		cfg := DefaultConfig()
		cfg.InputDir = in
		cfg.OutputDir = out
		_, err := newRealOrchestrator().Run(context.Background(), cfg)
		require.NoError(t, err)
		data, err := os.ReadFile(filepath.Join(out, "a.png"))
		require.NoError(t, err)
		return data
	}

	first := run(filepath.Join(t.TempDir(), "one"))
	second := run(filepath.Join(t.TempDir(), "two"))
	require.Equal(t, first, second)
}
