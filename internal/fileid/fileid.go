// Package fileid turns user-supplied paths into the stable file identifiers
// hotpoints are keyed by.
package fileid

import (
	"fmt"
	"path/filepath"
	"strings"
)

// For returns the identifier of path within the workspace rooted at baseDir:
// workspace-relative with forward slashes. Paths outside the workspace keep
// their cleaned absolute form, also with forward slashes.
func For(baseDir, path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty path")
	}
	abs := path
	if !filepath.IsAbs(abs) {
		var err error
		abs, err = filepath.Abs(abs)
		if err != nil {
			return "", fmt.Errorf("resolve %s: %w", path, err)
		}
	}
	if rel, err := ToWorkspaceRelative(abs, baseDir); err == nil {
		return rel, nil
	}
	return filepath.ToSlash(filepath.Clean(abs)), nil
}

// ToWorkspaceRelative converts an absolute path to a workspace-relative one
// using forward slashes. It fails for paths outside the workspace root.
func ToWorkspaceRelative(absPath, root string) (string, error) {
	absPath = filepath.Clean(absPath)
	root = filepath.Clean(root)

	rel, err := filepath.Rel(root, absPath)
	if err != nil {
		return "", fmt.Errorf("cannot compute relative path: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("file %s is outside workspace %s", absPath, root)
	}
	return filepath.ToSlash(rel), nil
}

// Path maps an identifier back to a filesystem path
func Path(baseDir, id string) string {
	p := filepath.FromSlash(id)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}
