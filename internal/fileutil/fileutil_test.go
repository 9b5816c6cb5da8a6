package fileutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/alnah/go-texmath/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestValidateExtension - Extension validation
// ---------------------------------------------------------------------------

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		extension string
		wantErr   error
	}{
		{"valid extension html", "html", nil},
		{"empty extension", "", fileutil.ErrExtensionEmpty},
		{"forward slash path traversal", "../etc/passwd", fileutil.ErrExtensionPathTraversal},
		{"backslash path traversal", "..\\windows", fileutil.ErrExtensionPathTraversal},
		{"null byte injection", "html\x00exe", fileutil.ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fileutil.ValidateExtension(tt.extension)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExtension(%q) = %v, want %v", tt.extension, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestReplaceExtension - Output path derivation
// ---------------------------------------------------------------------------

func TestReplaceExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		ext  string
		want string
	}{
		{"notes.md", "html", "notes.html"},
		{"dir/notes.markdown", "html", "dir/notes.html"},
		{"noext", "html", "noext.html"},
		{"a.b.md", "html", "a.b.html"},
	}

	for _, tt := range tests {
		got, err := fileutil.ReplaceExtension(tt.path, tt.ext)
		if err != nil {
			t.Fatalf("ReplaceExtension(%q) error = %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("ReplaceExtension(%q, %q) = %q, want %q", tt.path, tt.ext, got, tt.want)
		}
	}

	if _, err := fileutil.ReplaceExtension("a.md", ""); !errors.Is(err, fileutil.ErrExtensionEmpty) {
		t.Errorf("ReplaceExtension with empty extension error = %v, want ErrExtensionEmpty", err)
	}
}

// ---------------------------------------------------------------------------
// TestWriteFileAtomic - Temp file then rename
// ---------------------------------------------------------------------------

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.html")

	if err := fileutil.WriteFileAtomic(path, "<p>first</p>", 0o644); err != nil {
		t.Fatalf("WriteFileAtomic() error = %v", err)
	}
	if err := fileutil.WriteFileAtomic(path, "<p>second</p>", 0o644); err != nil {
		t.Fatalf("WriteFileAtomic() overwrite error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading result: %v", err)
	}
	if string(got) != "<p>second</p>" {
		t.Errorf("content = %q, want %q", got, "<p>second</p>")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file %s left behind", e.Name())
		}
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if info.Mode().Perm() != 0o644 {
			t.Errorf("mode = %v, want 0644", info.Mode().Perm())
		}
	}
}

func TestWriteFileAtomic_MissingDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "out.html")
	if err := fileutil.WriteFileAtomic(path, "x", 0o644); err == nil {
		t.Fatal("expected error for missing directory, got nil")
	}
}

// ---------------------------------------------------------------------------
// TestFileExists - Regular file detection
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "defs.tex")
	if err := os.WriteFile(file, []byte(`\newcommand{\a}{b}`), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"existing file", file, true},
		{"directory", dir, false},
		{"missing", filepath.Join(dir, "nope.tex"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := fileutil.FileExists(tt.path); got != tt.want {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsFilePath / TestIsMarkdown / TestIsHTML - Path classification
// ---------------------------------------------------------------------------

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"team", false},
		{"my-config", false},
		{"./texmath.yaml", true},
		{"/etc/texmath.toml", true},
		{`C:\config\texmath.yaml`, true},
		{"sub/dir", true},
	}

	for _, tt := range tests {
		if got := fileutil.IsFilePath(tt.input); got != tt.want {
			t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestIsMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"a.md", true},
		{"a.MD", true},
		{"a.markdown", true},
		{"a.html", false},
		{"md", false},
		{"a.md.txt", false},
	}

	for _, tt := range tests {
		if got := fileutil.IsMarkdown(tt.path); got != tt.want {
			t.Errorf("IsMarkdown(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestIsHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"a.html", true},
		{"a.HTM", true},
		{"a.md", false},
		{"html", false},
	}

	for _, tt := range tests {
		if got := fileutil.IsHTML(tt.path); got != tt.want {
			t.Errorf("IsHTML(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
