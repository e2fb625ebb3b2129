// Package fontresolver locates a typeface for the watermark text.
//
// Resolution order: an explicit file path, then an ordered list of
// platform candidates, then the embedded Go Regular face. A font that is
// found but cannot be parsed degrades to the same built-in face when the
// caller asks for Fallback.
package fontresolver

import (
	"runtime"
	"sync"

	"github.com/user/wmstamp/pkg/ports"
)

// DefaultCandidates lists system fonts tried in order, keyed by GOOS.
var DefaultCandidates = map[string][]string{
	"darwin": {
		"/System/Library/Fonts/PingFang.ttc",
		"/System/Library/Fonts/Supplemental/Arial.ttf",
		"/Library/Fonts/Arial.ttf",
		"/System/Library/Fonts/Supplemental/Arial Unicode.ttf",
		"/Library/Fonts/Arial Unicode.ttf",
	},
	"linux": {
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
		"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
		"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
	},
	"windows": {
		`C:\Windows\Fonts\msyh.ttc`,
		`C:\Windows\Fonts\arial.ttf`,
	},
}

// CandidatesFor returns the candidate list for goos. An entry in overrides
// replaces the built-in list for that platform, which also lets platforms
// without a built-in list supply one.
func CandidatesFor(goos string, overrides map[string][]string) []string {
	if list, ok := overrides[goos]; ok {
		return append([]string(nil), list...)
	}
	return append([]string(nil), DefaultCandidates[goos]...)
}

// Resolver implements ports.FontResolver.
type Resolver struct {
	fs         ports.FileSystem
	candidates []string
	logger     ports.Logger
	fallback   ports.Font

	mu    sync.Mutex
	files map[string]*FileFont
}

// New creates a Resolver. A nil candidates slice selects the list for the
// running platform.
func New(fs ports.FileSystem, candidates []string, logger ports.Logger) *Resolver {
	if candidates == nil {
		candidates = CandidatesFor(runtime.GOOS, nil)
	}
	return &Resolver{
		fs:         fs,
		candidates: candidates,
		logger:     logger.WithComponent("font"),
		fallback:   Builtin(),
		files:      make(map[string]*FileFont),
	}
}

// Resolve returns the first usable font source. It never fails.
func (r *Resolver) Resolve(explicitPath string) ports.Font {
	if explicitPath != "" {
		if r.isFile(explicitPath) {
			return r.fileFont(explicitPath)
		}
		r.logger.Warn("Font file not found: %s", explicitPath)
	}

	for _, c := range r.candidates {
		if r.isFile(c) {
			return r.fileFont(c)
		}
	}

	r.logger.Debug("No system font found, using %s", r.fallback.Name())
	return r.fallback
}

// Fallback returns the built-in face.
func (r *Resolver) Fallback() ports.Font {
	return r.fallback
}

func (r *Resolver) isFile(path string) bool {
	exists, err := r.fs.Exists(path)
	if err != nil || !exists {
		return false
	}
	dir, err := r.fs.IsDir(path)
	return err == nil && !dir
}

// fileFont returns one FileFont per path so sized faces are reused.
func (r *Resolver) fileFont(path string) *FileFont {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.files[path]; ok {
		return f
	}
	f := NewFileFont(path, r.fs)
	r.files[path] = f
	return f
}

// Ensure Resolver implements ports.FontResolver
var _ ports.FontResolver = (*Resolver)(nil)
