package osfilesystem

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSystem_WriteAndReadFile(t *testing.T) {
	fs := New()

	// Create temp directory
	tmpDir, err := os.MkdirTemp("", "osfilesystem_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	// Write file
	testPath := filepath.Join(tmpDir, "test.txt")
	testData := []byte("hello world")

	err = fs.WriteFile(testPath, testData)
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	// Read file
	data, err := fs.ReadFile(testPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if string(data) != string(testData) {
		t.Errorf("expected %q, got %q", testData, data)
	}
}

func TestFileSystem_WriteFileCreatesParentDirs(t *testing.T) {
	fs := New()

	tmpDir, err := os.MkdirTemp("", "osfilesystem_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	// Write to nested path
	testPath := filepath.Join(tmpDir, "a", "b", "c", "test.txt")
	err = fs.WriteFile(testPath, []byte("test"))
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	// Verify file exists
	exists, err := fs.Exists(testPath)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected file to exist")
	}
}

func TestFileSystem_MkdirAll(t *testing.T) {
	fs := New()

	tmpDir, err := os.MkdirTemp("", "osfilesystem_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	testPath := filepath.Join(tmpDir, "a", "b", "c")
	err = fs.MkdirAll(testPath)
	if err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	exists, err := fs.Exists(testPath)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected directory to exist")
	}
}

func TestFileSystem_Exists(t *testing.T) {
	fs := New()

	tmpDir, err := os.MkdirTemp("", "osfilesystem_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	// Test existing file
	testPath := filepath.Join(tmpDir, "test.txt")
	os.WriteFile(testPath, []byte("test"), 0644)

	exists, err := fs.Exists(testPath)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected file to exist")
	}

	// Test non-existing file
	exists, err = fs.Exists(filepath.Join(tmpDir, "nonexistent.txt"))
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("expected file to not exist")
	}
}

func TestFileSystem_WriteFileReplacesAtomically(t *testing.T) {
	fs := New()
	tmpDir := t.TempDir()

	testPath := filepath.Join(tmpDir, "out.jpg")
	if err := fs.WriteFile(testPath, []byte("first")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := fs.WriteFile(testPath, []byte("second")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(testPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("expected replaced contents, got %q", data)
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected no temporary files left behind, got %d entries", len(entries))
	}
}

func TestFileSystem_WriteFileIntoMissingParentFails(t *testing.T) {
	fs := New()
	tmpDir := t.TempDir()

	blocker := filepath.Join(tmpDir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := fs.WriteFile(filepath.Join(blocker, "child.png"), []byte("x")); err == nil {
		t.Error("expected error when a parent is a regular file")
	}
}

func TestFileSystem_IsDir(t *testing.T) {
	fs := New()
	tmpDir := t.TempDir()

	file := filepath.Join(tmpDir, "a.txt")
	os.WriteFile(file, []byte("a"), 0644)

	tests := []struct {
		path string
		want bool
	}{
		{tmpDir, true},
		{file, false},
		{filepath.Join(tmpDir, "missing"), false},
	}
	for _, tt := range tests {
		got, err := fs.IsDir(tt.path)
		if err != nil {
			t.Fatalf("IsDir(%s) failed: %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("IsDir(%s) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestFileSystem_ListFiles(t *testing.T) {
	fs := New()
	tmpDir := t.TempDir()

	for _, rel := range []string{"b.jpg", "a.png", "sub/c.webp", "sub/deep/d.txt"} {
		path := filepath.Join(tmpDir, filepath.FromSlash(rel))
		os.MkdirAll(filepath.Dir(path), 0755)
		os.WriteFile(path, []byte(rel), 0644)
	}
	os.MkdirAll(filepath.Join(tmpDir, "empty"), 0755)

	all, err := fs.ListFiles(tmpDir, true)
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	want := []string{
		filepath.Join(tmpDir, "a.png"),
		filepath.Join(tmpDir, "b.jpg"),
		filepath.Join(tmpDir, "sub", "c.webp"),
		filepath.Join(tmpDir, "sub", "deep", "d.txt"),
	}
	if len(all) != len(want) {
		t.Fatalf("expected %d files, got %v", len(want), all)
	}
	for i := range want {
		if all[i] != want[i] {
			t.Errorf("file %d: expected %s, got %s", i, want[i], all[i])
		}
	}

	top, err := fs.ListFiles(tmpDir, false)
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	if len(top) != 2 {
		t.Errorf("expected 2 top-level files, got %v", top)
	}
}

func TestFileSystem_ListFilesMissingRoot(t *testing.T) {
	fs := New()

	if _, err := fs.ListFiles(filepath.Join(t.TempDir(), "missing"), true); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestFileSystem_Resolve(t *testing.T) {
	fs := New()
	tmpDir := t.TempDir()

	target := filepath.Join(tmpDir, "real")
	os.MkdirAll(target, 0755)
	link := filepath.Join(tmpDir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	resolvedReal, err := fs.Resolve(target)
	if err != nil {
		t.Fatal(err)
	}
	resolvedLink, err := fs.Resolve(link)
	if err != nil {
		t.Fatal(err)
	}
	if resolvedReal != resolvedLink {
		t.Errorf("expected link to resolve to %s, got %s", resolvedReal, resolvedLink)
	}

	missing, err := fs.Resolve(filepath.Join(link, "not-yet"))
	if err != nil {
		t.Fatal(err)
	}
	if !filepath.IsAbs(missing) {
		t.Errorf("expected absolute path, got %s", missing)
	}
}
