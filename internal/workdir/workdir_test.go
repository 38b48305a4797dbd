package workdir

import (
	"os"
	"path/filepath"
	"testing"
)

func mkdirAll(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}

func TestResolveBaseDir_FindsDataDirFromSubdir(t *testing.T) {
	root := t.TempDir()
	mkdirAll(t, filepath.Join(root, dataDir))
	subdir := filepath.Join(root, "nested", "dir")
	mkdirAll(t, subdir)

	if got := ResolveBaseDir(subdir); got != root {
		t.Errorf("ResolveBaseDir = %q, want %q", got, root)
	}
}

func TestResolveBaseDir_NoWorkspaceReturnsStart(t *testing.T) {
	start := filepath.Join(t.TempDir(), "plain")
	mkdirAll(t, start)

	if got := ResolveBaseDir(start); got != start {
		t.Errorf("ResolveBaseDir = %q, want %q", got, start)
	}
}

func TestResolveBaseDir_RootFileRedirects(t *testing.T) {
	checkout := t.TempDir()
	shared := filepath.Join(t.TempDir(), "shared")
	mkdirAll(t, shared)

	if err := os.WriteFile(filepath.Join(checkout, rootFile), []byte(shared+"\n"), 0644); err != nil {
		t.Fatalf("write %s: %v", rootFile, err)
	}
	subdir := filepath.Join(checkout, "src")
	mkdirAll(t, subdir)

	if got := ResolveBaseDir(subdir); got != shared {
		t.Errorf("ResolveBaseDir = %q, want %q", got, shared)
	}
}

func TestResolveBaseDir_RelativeRootFile(t *testing.T) {
	parent := t.TempDir()
	checkout := filepath.Join(parent, "wt")
	mkdirAll(t, checkout)
	os.WriteFile(filepath.Join(checkout, rootFile), []byte("../main"), 0644)

	want := filepath.Join(parent, "main")
	if got := ResolveBaseDir(checkout); got != want {
		t.Errorf("ResolveBaseDir = %q, want %q", got, want)
	}
}

func TestResolveBaseDir_EmptyRootFileIgnored(t *testing.T) {
	root := t.TempDir()
	mkdirAll(t, filepath.Join(root, dataDir))
	os.WriteFile(filepath.Join(root, rootFile), []byte("  \n"), 0644)

	if got := ResolveBaseDir(root); got != root {
		t.Errorf("ResolveBaseDir = %q, want %q", got, root)
	}
}
