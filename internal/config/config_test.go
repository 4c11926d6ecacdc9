package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSourceDir(t *testing.T) {
	got := SourceDir("/proj")
	if got != filepath.Join("/proj", SourceDirName) {
		t.Errorf("SourceDir() = %q", got)
	}
}

// chdir stands in for t.Chdir, which requires Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

func mustEval(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatal(err)
	}
	return resolved
}

func TestProjectRootFindsSourceTree(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, SourceDirName), 0755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "pkg", "deep")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	chdir(t, nested)
	got, err := ProjectRoot()
	if err != nil {
		t.Fatalf("ProjectRoot() error = %v", err)
	}
	if mustEval(t, got) != mustEval(t, root) {
		t.Errorf("ProjectRoot() = %q, want %q", got, root)
	}
}

func TestProjectRootFindsGitDir(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".git"), 0755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "sub")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	chdir(t, nested)
	got, err := ProjectRoot()
	if err != nil {
		t.Fatalf("ProjectRoot() error = %v", err)
	}
	if mustEval(t, got) != mustEval(t, root) {
		t.Errorf("ProjectRoot() = %q, want %q", got, root)
	}
}

func TestProjectRootFallsBackToCwd(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	got, err := ProjectRoot()
	if err != nil {
		t.Fatalf("ProjectRoot() error = %v", err)
	}
	if mustEval(t, got) != mustEval(t, dir) {
		t.Errorf("ProjectRoot() = %q, want cwd %q", got, dir)
	}
}
