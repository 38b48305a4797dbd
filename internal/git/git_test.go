package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"testing"
)

// initTestRepo creates a test git repository with an initial commit
func initTestRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("EvalSymlinks: %v", err)
	}

	if err := runCmd(dir, "git", "init"); err != nil {
		t.Fatalf("Failed to init git repo: %v", err)
	}
	runCmd(dir, "git", "config", "user.email", "test@test.com")
	runCmd(dir, "git", "config", "user.name", "Test User")

	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Test"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	runCmd(dir, "git", "add", ".")
	runCmd(dir, "git", "commit", "-m", "Initial commit")

	return dir
}

func runCmd(dir string, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	return cmd.Run()
}

func TestParseStatus(t *testing.T) {
	out := " M src/main.go\n?? notes.txt\nR  old.go -> new.go\nA  \"with space.go\"\n\n"
	got := parseStatus(out)
	want := []string{"src/main.go", "notes.txt", "new.go", "with space.go"}
	if !slices.Equal(got, want) {
		t.Errorf("parseStatus = %q, want %q", got, want)
	}
}

func TestParseStatusEmpty(t *testing.T) {
	if got := parseStatus(""); len(got) != 0 {
		t.Errorf("parseStatus(\"\") = %q", got)
	}
}

func TestIsRepo(t *testing.T) {
	dir := initTestRepo(t)
	if !IsRepo(dir) {
		t.Error("expected repo")
	}
	if IsRepo(t.TempDir()) {
		t.Error("plain temp dir should not be a repo")
	}
}

func TestRootDirFromSubdir(t *testing.T) {
	dir := initTestRepo(t)
	sub := filepath.Join(dir, "a", "b")
	os.MkdirAll(sub, 0755)

	root, err := RootDir(sub)
	if err != nil {
		t.Fatalf("RootDir: %v", err)
	}
	if root != dir {
		t.Errorf("RootDir = %q, want %q", root, dir)
	}
}

func TestModifiedFiles(t *testing.T) {
	dir := initTestRepo(t)

	files, err := ModifiedFiles(dir)
	if err != nil {
		t.Fatalf("ModifiedFiles: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("clean repo: got %q", files)
	}

	os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Changed"), 0644)
	os.WriteFile(filepath.Join(dir, "new.txt"), []byte("x"), 0644)

	files, err = ModifiedFiles(dir)
	if err != nil {
		t.Fatalf("ModifiedFiles: %v", err)
	}
	for _, want := range []string{filepath.Join(dir, "README.md"), filepath.Join(dir, "new.txt")} {
		if !slices.Contains(files, want) {
			t.Errorf("missing %s in %q", want, files)
		}
	}
}
