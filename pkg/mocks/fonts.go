package mocks

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/user/wmstamp/pkg/ports"
)

// Font is a mock implementation of ports.Font.
// Without FaceFunc it serves the 7x13 bitmap face at every size.
type Font struct {
	NameValue string
	FaceFunc  func(size float64) (font.Face, error)
}

func (m *Font) Name() string {
	if m.NameValue == "" {
		return "mock"
	}
	return m.NameValue
}

func (m *Font) Face(size float64) (font.Face, error) {
	if m.FaceFunc != nil {
		return m.FaceFunc(size)
	}
	return basicfont.Face7x13, nil
}

var _ ports.Font = (*Font)(nil)

// FontResolver is a mock implementation of ports.FontResolver.
type FontResolver struct {
	ResolveFunc  func(explicitPath string) ports.Font
	FallbackFont ports.Font

	Requested []string
}

func (m *FontResolver) Resolve(explicitPath string) ports.Font {
	m.Requested = append(m.Requested, explicitPath)
	if m.ResolveFunc != nil {
		return m.ResolveFunc(explicitPath)
	}
	return &Font{}
}

func (m *FontResolver) Fallback() ports.Font {
	if m.FallbackFont != nil {
		return m.FallbackFont
	}
	return &Font{NameValue: "fallback"}
}

var _ ports.FontResolver = (*FontResolver)(nil)
