// Package hotpoint keeps the ordered, persisted list of named text ranges
// for a workspace.
package hotpoint

import (
	"encoding/json"
	"log/slog"
	"slices"
	"strings"

	"github.com/marcus/wsmark/internal/models"
)

// DefaultKey is the store key holding the serialized list
const DefaultKey = "wsmark.hotpoints"

// Store is the workspace key/value store the registry persists into
type Store interface {
	Get(key, def string) (string, error)
	Update(key, value string) error
}

// Option configures a Registry
type Option func(*Registry)

// WithKey overrides the store key
func WithKey(key string) Option {
	return func(r *Registry) { r.key = key }
}

// WithChangeHook is called with the file id touched by every successful
// add or remove, so visible views of that file can be re-rendered.
func WithChangeHook(fn func(fileID string)) Option {
	return func(r *Registry) { r.onChange = fn }
}

// WithWarn receives store failures on load and save. Neither fails the
// operation that triggered it.
func WithWarn(fn func(error)) Option {
	return func(r *Registry) { r.warn = fn }
}

// Registry is the in-memory list of hotpoints, written through to a Store
// after every mutation. It is not safe for concurrent use; callers handle one
// event at a time.
type Registry struct {
	store    Store
	key      string
	items    []models.Hotpoint
	loaded   bool
	onChange func(fileID string)
	warn     func(error)
}

// New creates a registry. Nothing is read until the first operation.
func New(store Store, opts ...Option) *Registry {
	r := &Registry{store: store, key: DefaultKey}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load reads the persisted list. It runs at most once; later calls are
// no-ops. An absent or corrupt value loads as an empty list. A store failure
// also leaves the list empty and is returned as a *PersistenceError.
func (r *Registry) Load() error {
	if r.loaded {
		return nil
	}
	r.loaded = true
	r.items = nil

	raw, err := r.store.Get(r.key, "")
	if err != nil {
		perr := &PersistenceError{Op: "load", Key: r.key, Err: err}
		r.report(perr)
		return perr
	}
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var items []models.Hotpoint
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		slog.Warn("hotpoint: stored list is corrupt, starting empty", "key", r.key, "err", err)
		return nil
	}
	r.items = items
	slog.Debug("hotpoint: loaded", "count", len(items))
	return nil
}

// Reload discards the in-memory list and reads the store again, picking up
// changes written by other processes.
func (r *Registry) Reload() error {
	r.loaded = false
	return r.Load()
}

func (r *Registry) ensureLoaded() {
	// Load reports through the warn hook; implicit loads don't fail the caller
	_ = r.Load()
}

// Add validates and appends a hotpoint, then persists the list. When only
// the save fails, the hotpoint is still returned (and kept in memory)
// together with a *PersistenceError.
func (r *Registry) Add(fileID string, rng models.Range, label string) (models.Hotpoint, error) {
	r.ensureLoaded()

	if fileID == "" {
		return models.Hotpoint{}, &ValidationError{Reason: "empty file id"}
	}
	if strings.TrimSpace(label) == "" {
		return models.Hotpoint{}, &ValidationError{Reason: "empty label"}
	}
	if !rng.Valid() {
		return models.Hotpoint{}, &ValidationError{Reason: "invalid range"}
	}
	if rng.Empty() {
		return models.Hotpoint{}, &ValidationError{Reason: "empty range"}
	}

	h := models.Hotpoint{FileID: fileID, Range: rng, Label: label}
	r.items = append(r.items, h)

	err := r.save()
	r.changed(fileID)
	return h, err
}

// List returns a snapshot of all hotpoints in insertion order
func (r *Registry) List() []models.Hotpoint {
	r.ensureLoaded()
	return slices.Clone(r.items)
}

// Len returns the number of hotpoints
func (r *Registry) Len() int {
	r.ensureLoaded()
	return len(r.items)
}

// For returns the hotpoints of one file in insertion order
func (r *Registry) For(fileID string) []models.Hotpoint {
	r.ensureLoaded()
	out := []models.Hotpoint{}
	for _, h := range r.items {
		if h.FileID == fileID {
			out = append(out, h)
		}
	}
	return out
}

// IndexOf returns the position of the first entry equal to h, or -1.
// Use it to re-check an index taken from an older List snapshot.
func (r *Registry) IndexOf(h models.Hotpoint) int {
	r.ensureLoaded()
	return slices.Index(r.items, h)
}

// RemoveAt deletes the entry at index and persists the list. As with Add, a
// failed save keeps the removal and returns a *PersistenceError.
func (r *Registry) RemoveAt(index int) (models.Hotpoint, error) {
	r.ensureLoaded()

	if index < 0 || index >= len(r.items) {
		return models.Hotpoint{}, &IndexError{Index: index, Len: len(r.items)}
	}

	removed := r.items[index]
	r.items = slices.Delete(r.items, index, index+1)

	err := r.save()
	r.changed(removed.FileID)
	return removed, err
}

// Refresh maps every visible file to the ranges to highlight in it. Files
// without hotpoints map to an empty slice so stale highlights get cleared.
func (r *Registry) Refresh(visible []string) map[string][]models.Range {
	r.ensureLoaded()
	out := make(map[string][]models.Range, len(visible))
	for _, fileID := range visible {
		ranges := []models.Range{}
		for _, h := range r.items {
			if h.FileID == fileID {
				ranges = append(ranges, h.Range)
			}
		}
		out[fileID] = ranges
	}
	return out
}

// save writes the current list. Failures are reported through the warn hook
// and returned; the in-memory list is left as is.
func (r *Registry) save() error {
	items := r.items
	if items == nil {
		items = []models.Hotpoint{}
	}
	data, err := json.Marshal(items)
	if err == nil {
		err = r.store.Update(r.key, string(data))
	}
	if err != nil {
		perr := &PersistenceError{Op: "save", Key: r.key, Err: err}
		r.report(perr)
		return perr
	}
	return nil
}

func (r *Registry) changed(fileID string) {
	if r.onChange != nil {
		r.onChange(fileID)
	}
}

func (r *Registry) report(err error) {
	slog.Debug("hotpoint: persistence", "err", err)
	if r.warn != nil {
		r.warn(err)
	}
}
