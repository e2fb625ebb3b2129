package fontresolver

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/user/wmstamp/pkg/ports"
)

// dpi makes a point size equal a pixel size.
const dpi = 72

// FileFont is a font loaded from disk. Faces are cached per size.
type FileFont struct {
	path string
	fs   ports.FileSystem

	mu     sync.Mutex
	parsed *opentype.Font
	faces  map[float64]font.Face
}

// NewFileFont creates a lazily loaded font for path.
func NewFileFont(path string, fs ports.FileSystem) *FileFont {
	return &FileFont{
		path:  path,
		fs:    fs,
		faces: make(map[float64]font.Face),
	}
}

// Name returns the font file path.
func (f *FileFont) Name() string {
	return f.path
}

// Face returns a face at size pixels. TrueType files go through gg; OpenType
// files, collections and anything gg rejects are parsed with opentype.
func (f *FileFont) Face(size float64) (font.Face, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if face, ok := f.faces[size]; ok {
		return face, nil
	}

	var face font.Face
	var err error
	if strings.EqualFold(filepath.Ext(f.path), ".ttf") {
		face, err = gg.LoadFontFace(f.path, size)
	}
	if face == nil {
		face, err = f.openTypeFace(size)
	}
	if err != nil {
		return nil, fmt.Errorf("load font %s: %w", f.path, err)
	}

	f.faces[size] = face
	return face, nil
}

func (f *FileFont) openTypeFace(size float64) (font.Face, error) {
	if f.parsed == nil {
		data, err := f.fs.ReadFile(f.path)
		if err != nil {
			return nil, err
		}
		coll, err := opentype.ParseCollection(data)
		if err != nil {
			return nil, err
		}
		if coll.NumFonts() == 0 {
			return nil, fmt.Errorf("empty font collection")
		}
		parsed, err := coll.Font(0)
		if err != nil {
			return nil, err
		}
		f.parsed = parsed
	}
	return opentype.NewFace(f.parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingNone,
	})
}

var _ ports.Font = (*FileFont)(nil)

// builtinFont is the embedded Go Regular typeface with a bitmap last resort.
type builtinFont struct {
	once   sync.Once
	parsed *opentype.Font
}

var builtin = &builtinFont{}

// Builtin returns the embedded fallback font. Its Face never fails.
func Builtin() ports.Font {
	return builtin
}

func (b *builtinFont) Name() string {
	return "goregular"
}

func (b *builtinFont) Face(size float64) (font.Face, error) {
	b.once.Do(func() {
		if parsed, err := opentype.Parse(goregular.TTF); err == nil {
			b.parsed = parsed
		}
	})
	if b.parsed == nil {
		return Basic().Face(size)
	}
	face, err := opentype.NewFace(b.parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return Basic().Face(size)
	}
	return face, nil
}

// basicFont is the fixed 7x13 bitmap face. It ignores the requested size.
type basicFont struct{}

// Basic returns the fixed-size bitmap font.
func Basic() ports.Font {
	return basicFont{}
}

func (basicFont) Name() string {
	return "basicfont-7x13"
}

func (basicFont) Face(float64) (font.Face, error) {
	return basicfont.Face7x13, nil
}
