package mocks

import (
	"image"
	"path/filepath"
	"strings"

	"github.com/user/wmstamp/pkg/pipeline"
	"github.com/user/wmstamp/pkg/ports"
)

// ImageCodec is a mock implementation of ports.ImageCodec.
type ImageCodec struct {
	DecodeFunc   func(data []byte) (pipeline.Image, error)
	EncodeFunc   func(img pipeline.Image, path string, opts ports.EncodeOptions) ([]byte, error)
	SupportsFunc func(path string) bool
}

func (m *ImageCodec) Decode(data []byte) (pipeline.Image, error) {
	if m.DecodeFunc != nil {
		return m.DecodeFunc(data)
	}
	return pipeline.Image{
		Pixels: image.NewNRGBA(image.Rect(0, 0, 100, 100)),
		Mode:   pipeline.ModeRGBA,
	}, nil
}

func (m *ImageCodec) Encode(img pipeline.Image, path string, opts ports.EncodeOptions) ([]byte, error) {
	if m.EncodeFunc != nil {
		return m.EncodeFunc(img, path, opts)
	}
	return []byte("encoded"), nil
}

func (m *ImageCodec) Supports(path string) bool {
	if m.SupportsFunc != nil {
		return m.SupportsFunc(path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".webp", ".bmp", ".tif", ".tiff":
		return true
	}
	return false
}

var _ ports.ImageCodec = (*ImageCodec)(nil)
