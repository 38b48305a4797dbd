// Package git reads the little repository state wsmark needs: whether a
// directory is a repo, its root, and which files have uncommitted changes.
package git

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// IsRepo checks if dir is inside a git repository
func IsRepo(dir string) bool {
	_, err := runGit(dir, "rev-parse", "--git-dir")
	return err == nil
}

// RootDir returns the repository root containing dir
func RootDir(dir string) (string, error) {
	out, err := runGit(dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// ModifiedFiles returns the absolute paths of files with uncommitted
// changes, untracked files included. Hotpoints in these files may have
// drifted from the text they were placed on.
func ModifiedFiles(dir string) ([]string, error) {
	root, err := RootDir(dir)
	if err != nil {
		return nil, err
	}
	out, err := runGit(root, "status", "--porcelain")
	if err != nil {
		return nil, err
	}
	rel := parseStatus(out)
	abs := make([]string, len(rel))
	for i, p := range rel {
		abs[i] = filepath.Join(root, filepath.FromSlash(p))
	}
	return abs, nil
}

// parseStatus extracts paths from `git status --porcelain` output.
// Renames report the new path.
func parseStatus(output string) []string {
	var paths []string
	for _, line := range strings.Split(output, "\n") {
		if len(line) < 4 {
			continue
		}
		p := line[3:]
		if _, to, ok := strings.Cut(p, " -> "); ok {
			p = to
		}
		paths = append(paths, strings.Trim(p, `"`))
	}
	return paths
}

func runGit(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %s: %s", args[0], err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
