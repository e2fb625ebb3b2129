package mocks

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/user/wmstamp/pkg/ports"
)

// FileSystem is an in-memory mock implementation of ports.FileSystem.
// Paths are used verbatim; directories are implied by the files beneath them.
type FileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool

	ReadFileFunc  func(path string) ([]byte, error)
	WriteFileFunc func(path string, data []byte) error
	MkdirAllFunc  func(path string) error
	ExistsFunc    func(path string) (bool, error)
	IsDirFunc     func(path string) (bool, error)
	ListFilesFunc func(root string, recursive bool) ([]string, error)
	ResolveFunc   func(path string) (string, error)
}

// NewFileSystem creates a new mock FileSystem.
func NewFileSystem() *FileSystem {
	return &FileSystem{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

// AddFile stores a file and registers its parent directories.
func (m *FileSystem) AddFile(path string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	m.files[path] = data
	m.addParents(path)
}

// AddDir registers an empty directory.
func (m *FileSystem) AddDir(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	m.dirs[path] = true
	m.addParents(path)
}

func (m *FileSystem) addParents(path string) {
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		m.dirs[dir] = true
		if dir == filepath.Dir(dir) {
			return
		}
	}
}

func (m *FileSystem) ReadFile(path string) ([]byte, error) {
	if m.ReadFileFunc != nil {
		return m.ReadFileFunc(path)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if data, ok := m.files[filepath.Clean(path)]; ok {
		return data, nil
	}
	return nil, fmt.Errorf("file not found: %s", path)
}

func (m *FileSystem) WriteFile(path string, data []byte) error {
	if m.WriteFileFunc != nil {
		return m.WriteFileFunc(path, data)
	}
	m.AddFile(path, data)
	return nil
}

func (m *FileSystem) MkdirAll(path string) error {
	if m.MkdirAllFunc != nil {
		return m.MkdirAllFunc(path)
	}
	m.AddDir(path)
	return nil
}

func (m *FileSystem) Exists(path string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(path)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	path = filepath.Clean(path)
	if _, ok := m.files[path]; ok {
		return true, nil
	}
	return m.dirs[path], nil
}

func (m *FileSystem) IsDir(path string) (bool, error) {
	if m.IsDirFunc != nil {
		return m.IsDirFunc(path)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dirs[filepath.Clean(path)], nil
}

func (m *FileSystem) ListFiles(root string, recursive bool) ([]string, error) {
	if m.ListFilesFunc != nil {
		return m.ListFilesFunc(root, recursive)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	root = filepath.Clean(root)
	if !m.dirs[root] {
		return nil, fmt.Errorf("directory not found: %s", root)
	}
	var out []string
	for path := range m.files {
		rel, err := filepath.Rel(root, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		if !recursive && strings.ContainsRune(rel, filepath.Separator) {
			continue
		}
		out = append(out, path)
	}
	sort.Strings(out)
	return out, nil
}

func (m *FileSystem) Resolve(path string) (string, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(path)
	}
	return filepath.Clean(path), nil
}

// GetFile returns the contents of a file (for test verification).
func (m *FileSystem) GetFile(path string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[filepath.Clean(path)]
	return data, ok
}

// GetAllFiles returns all files (for test verification).
func (m *FileSystem) GetAllFiles() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make(map[string][]byte)
	for k, v := range m.files {
		result[k] = v
	}
	return result
}

var _ ports.FileSystem = (*FileSystem)(nil)
