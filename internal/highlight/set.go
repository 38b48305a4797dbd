package highlight

import (
	"slices"
	"sync"

	"github.com/marcus/wsmark/internal/models"
)

// Set holds the ranges most recently applied to each file. It satisfies
// the session's Surface interface and may be read from a render loop while
// a session applies to it.
type Set struct {
	mu     sync.RWMutex
	ranges map[string][]models.Range
}

// NewSet returns an empty set
func NewSet() *Set {
	return &Set{ranges: make(map[string][]models.Range)}
}

// Apply replaces the ranges of fileID. An empty slice clears it.
func (s *Set) Apply(fileID string, ranges []models.Range) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(ranges) == 0 {
		delete(s.ranges, fileID)
		return
	}
	s.ranges[fileID] = slices.Clone(ranges)
}

// Get returns a copy of the ranges applied to fileID
func (s *Set) Get(fileID string) []models.Range {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.ranges[fileID])
}

// Files lists files with at least one applied range
func (s *Set) Files() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	files := make([]string, 0, len(s.ranges))
	for f := range s.ranges {
		files = append(files, f)
	}
	slices.Sort(files)
	return files
}
