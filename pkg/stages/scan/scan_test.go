package scan

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/user/wmstamp/pkg/adapters/logger"
	"github.com/user/wmstamp/pkg/mocks"
	"github.com/user/wmstamp/pkg/pipeline"
)

func TestIsImageFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.jpg", true},
		{"a.JPEG", true},
		{"dir/b.Png", true},
		{"c.webp", true},
		{"d.bmp", true},
		{"e.tif", true},
		{"f.TIFF", true},
		{"g.gif", false},
		{"notes.txt", false},
		{"jpg", false},
	}
	for _, tt := range tests {
		if got := IsImageFile(tt.path); got != tt.want {
			t.Errorf("IsImageFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestIsSubpath(t *testing.T) {
	root := filepath.FromSlash("/in/out")
	tests := []struct {
		path string
		want bool
	}{
		{"/in/out", true},
		{"/in/out/a.jpg", true},
		{"/in/out/x/y.jpg", true},
		{"/in/outside.jpg", false},
		{"/in/a.jpg", false},
		{"/in/..out/a.jpg", false},
	}
	for _, tt := range tests {
		if got := IsSubpath(filepath.FromSlash(tt.path), root); got != tt.want {
			t.Errorf("IsSubpath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func newTree() *mocks.FileSystem {
	fs := mocks.NewFileSystem()
	fs.AddFile(filepath.FromSlash("/in/a.jpg"), []byte("a"))
	fs.AddFile(filepath.FromSlash("/in/sub/b.PNG"), []byte("b"))
	fs.AddFile(filepath.FromSlash("/in/sub/deep/c.webp"), []byte("c"))
	fs.AddFile(filepath.FromSlash("/in/notes.txt"), []byte("n"))
	fs.AddFile(filepath.FromSlash("/in/watermarked/a.jpg"), []byte("old"))
	return fs
}

func TestStage_Execute_MirrorsTree(t *testing.T) {
	stage := NewStage(newTree(), logger.NewNoop())

	result, err := stage.Execute(context.Background(), pipeline.ScanInput{
		InputDir:  filepath.FromSlash("/in"),
		OutputDir: filepath.FromSlash("/in/watermarked"),
		Recursive: true,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	want := []pipeline.FileJob{
		{Source: filepath.FromSlash("/in/a.jpg"), Destination: filepath.FromSlash("/in/watermarked/a.jpg")},
		{Source: filepath.FromSlash("/in/sub/b.PNG"), Destination: filepath.FromSlash("/in/watermarked/sub/b.PNG")},
		{Source: filepath.FromSlash("/in/sub/deep/c.webp"), Destination: filepath.FromSlash("/in/watermarked/sub/deep/c.webp")},
	}
	if len(result.Jobs) != len(want) {
		t.Fatalf("expected %d jobs, got %d: %v", len(want), len(result.Jobs), result.Jobs)
	}
	for i := range want {
		if result.Jobs[i] != want[i] {
			t.Errorf("job %d: expected %v, got %v", i, want[i], result.Jobs[i])
		}
	}
}

func TestStage_Execute_NonRecursive(t *testing.T) {
	stage := NewStage(newTree(), logger.NewNoop())

	result, err := stage.Execute(context.Background(), pipeline.ScanInput{
		InputDir:  filepath.FromSlash("/in"),
		OutputDir: filepath.FromSlash("/out"),
		Recursive: false,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(result.Jobs) != 1 || result.Jobs[0].Destination != filepath.FromSlash("/out/a.jpg") {
		t.Errorf("expected only the top-level image, got %v", result.Jobs)
	}
}

func TestStage_Execute_OutputOutsideInput(t *testing.T) {
	stage := NewStage(newTree(), logger.NewNoop())

	result, err := stage.Execute(context.Background(), pipeline.ScanInput{
		InputDir:  filepath.FromSlash("/in"),
		OutputDir: filepath.FromSlash("/elsewhere"),
		Recursive: true,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	// The old result under /in/watermarked is an ordinary input now.
	if len(result.Jobs) != 4 {
		t.Errorf("expected 4 jobs, got %d", len(result.Jobs))
	}
}

func TestStage_Execute_ResolvedPathInsideOutput(t *testing.T) {
	fs := newTree()
	// /in/link.jpg is a symlink into the output tree.
	fs.AddFile(filepath.FromSlash("/in/link.jpg"), []byte("l"))
	fs.ResolveFunc = func(path string) (string, error) {
		if path == filepath.FromSlash("/in/link.jpg") {
			return filepath.FromSlash("/in/watermarked/a.jpg"), nil
		}
		return filepath.Clean(path), nil
	}
	stage := NewStage(fs, logger.NewNoop())

	result, err := stage.Execute(context.Background(), pipeline.ScanInput{
		InputDir:  filepath.FromSlash("/in"),
		OutputDir: filepath.FromSlash("/in/watermarked"),
		Recursive: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, job := range result.Jobs {
		if job.Source == filepath.FromSlash("/in/link.jpg") {
			t.Error("expected link into the output tree to be excluded")
		}
	}
}

func TestStage_Execute_MissingInput(t *testing.T) {
	stage := NewStage(mocks.NewFileSystem(), logger.NewNoop())

	_, err := stage.Execute(context.Background(), pipeline.ScanInput{InputDir: "/missing", OutputDir: "/out"})
	if !errors.Is(err, pipeline.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
