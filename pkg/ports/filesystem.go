// Package ports defines interfaces for external dependencies.
package ports

// FileSystem abstracts file system operations.
type FileSystem interface {
	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating parent directories as needed.
	// Implementations must not leave a partially written file at path.
	WriteFile(path string, data []byte) error

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string) error

	// Exists checks if a file or directory exists.
	Exists(path string) (bool, error)

	// IsDir reports whether path exists and is a directory.
	IsDir(path string) (bool, error)

	// ListFiles returns the regular files under root in lexical order.
	// Subdirectories are descended only when recursive is true.
	ListFiles(root string, recursive bool) ([]string, error)

	// Resolve returns the absolute, symlink-free form of path.
	// Paths that do not exist yet are made absolute and cleaned only.
	Resolve(path string) (string, error)
}
