package fileid

import (
	"os"
	"path/filepath"
	"testing"
)

func TestForRelativeToWorkspace(t *testing.T) {
	base := t.TempDir()

	got, err := For(base, filepath.Join(base, "src", "main.go"))
	if err != nil {
		t.Fatalf("For failed: %v", err)
	}
	if got != "src/main.go" {
		t.Errorf("For = %q, want src/main.go", got)
	}
}

func TestForResolvesAgainstWorkingDirectory(t *testing.T) {
	// the working directory comes back symlink-free
	base, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("EvalSymlinks: %v", err)
	}
	sub := filepath.Join(base, "pkg")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	t.Chdir(sub)

	got, err := For(base, "./util/../x.go")
	if err != nil {
		t.Fatalf("For failed: %v", err)
	}
	if got != "pkg/x.go" {
		t.Errorf("For = %q, want pkg/x.go", got)
	}
}

func TestForOutsideWorkspaceKeepsAbsolute(t *testing.T) {
	base := t.TempDir()
	outside := filepath.Join(filepath.Dir(base), "elsewhere", "a.txt")

	got, err := For(base, outside)
	if err != nil {
		t.Fatalf("For failed: %v", err)
	}
	if got != filepath.ToSlash(outside) {
		t.Errorf("For = %q, want %q", got, filepath.ToSlash(outside))
	}
	if Path(base, got) != outside {
		t.Errorf("Path round trip = %q", Path(base, got))
	}
}

func TestForRejectsEmpty(t *testing.T) {
	if _, err := For(t.TempDir(), ""); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestToWorkspaceRelativeDotDotPrefixedName(t *testing.T) {
	base := t.TempDir()
	got, err := ToWorkspaceRelative(filepath.Join(base, "..hidden"), base)
	if err != nil {
		t.Fatalf("..hidden is inside the workspace: %v", err)
	}
	if got != "..hidden" {
		t.Errorf("got %q", got)
	}
}

func TestPathJoinsRelativeIDs(t *testing.T) {
	base := t.TempDir()
	if got := Path(base, "a/b.go"); got != filepath.Join(base, "a", "b.go") {
		t.Errorf("Path = %q", got)
	}
}
