// Package workdir finds the workspace root that holds the .wsmark directory,
// supporting redirection via .wsmark-root files.
package workdir

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	dataDir  = ".wsmark"
	rootFile = ".wsmark-root"
)

// ResolveBaseDir walks up from start to the nearest directory containing
// .wsmark/ or a .wsmark-root file. A .wsmark-root file holds the path of the
// workspace to use instead, so several checkouts can share one set of
// hotpoints. When neither is found, start is returned unchanged.
func ResolveBaseDir(start string) string {
	dir := filepath.Clean(start)
	for {
		if target, ok := readRootFile(dir); ok {
			return target
		}
		if info, err := os.Stat(filepath.Join(dir, dataDir)); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}

func readRootFile(dir string) (string, bool) {
	content, err := os.ReadFile(filepath.Join(dir, rootFile))
	if err != nil {
		return "", false
	}
	target := strings.TrimSpace(string(content))
	if target == "" {
		return "", false
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(dir, target)
	}
	return filepath.Clean(target), true
}
