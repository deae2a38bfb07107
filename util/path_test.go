package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNormalizePathAbsolute(t *testing.T) {
	got, err := NormalizePath("/work/a.py")
	if err != nil {
		t.Fatalf("NormalizePath: %v", err)
	}
	if got != "/work/a.py" {
		t.Errorf("NormalizePath(/work/a.py) = %q", got)
	}
}

func TestNormalizePathRelative(t *testing.T) {
	got, err := NormalizePath("sub/../a.py")
	if err != nil {
		t.Fatalf("NormalizePath: %v", err)
	}
	if !filepath.IsAbs(filepath.FromSlash(got)) {
		t.Errorf("result %q is not absolute", got)
	}
	if !strings.HasSuffix(got, "/a.py") {
		t.Errorf("result %q did not clean the dot segments", got)
	}
}

func TestWorkspaceRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "pkg", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	if got := WorkspaceRoot(nested); got != root {
		t.Errorf("WorkspaceRoot(%q) = %q, want %q", nested, got, root)
	}
}

func TestWorkspaceRootNoMarker(t *testing.T) {
	dir := t.TempDir()
	if got := WorkspaceRoot(dir); got != dir {
		t.Errorf("WorkspaceRoot without .git = %q, want the directory itself", got)
	}
}
