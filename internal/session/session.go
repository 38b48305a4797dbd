// Package session owns the per-process workspace state (database, config,
// hotpoint registry, status tracker) and routes named commands and editor
// events to it.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/marcus/wsmark/internal/config"
	"github.com/marcus/wsmark/internal/db"
	"github.com/marcus/wsmark/internal/hotpoint"
	"github.com/marcus/wsmark/internal/models"
	"github.com/marcus/wsmark/internal/status"
)

// Surface is where highlights end up: a rendered view of visible files
type Surface interface {
	Apply(fileID string, ranges []models.Range)
}

type nopSurface struct{}

func (nopSurface) Apply(string, []models.Range) {}

// Option configures Open
type Option func(*Session)

// WithSurface sets the highlight target. Without one, highlights are dropped.
func WithSurface(s Surface) Option {
	return func(sess *Session) { sess.surface = s }
}

// WithID fixes the session id instead of generating one
func WithID(id string) Option {
	return func(sess *Session) { sess.ID = id }
}

// Session is one process's view of a workspace
type Session struct {
	ID      string
	BaseDir string

	DB        *db.DB
	Config    *models.Config
	Hotpoints *hotpoint.Registry
	Status    *status.Tracker
	Table     *Table

	surface Surface
	visible []string
}

// Open loads the workspace at baseDir and registers every command and
// event handler. The workspace must already be initialized.
func Open(baseDir string, opts ...Option) (*Session, error) {
	database, err := db.Open(baseDir)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(baseDir)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("load config: %w", err)
	}

	s := &Session{
		ID:      uuid.NewString(),
		BaseDir: baseDir,
		DB:      database,
		Config:  cfg,
		Table:   NewTable(),
		surface: nopSurface{},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.Hotpoints = hotpoint.New(database,
		hotpoint.WithChangeHook(s.hotpointChanged),
		hotpoint.WithWarn(s.logStoreError),
	)
	s.Status = status.New(database, config.Palette(cfg), config.Foreground(cfg))
	s.register()

	slog.Debug("session: open", "id", s.ID, "base", baseDir)
	return s, nil
}

// Close releases the database
func (s *Session) Close() error {
	return s.DB.Close()
}

// Visible returns the files currently shown on the surface
func (s *Session) Visible() []string {
	return slices.Clone(s.visible)
}

// SetVisible replaces the visible set and re-applies highlights
func (s *Session) SetVisible(ctx context.Context, files []string) error {
	_, err := Invoke[VisibleChanged, Empty](ctx, s.Table, EventVisible, VisibleChanged{Files: files})
	return err
}

// hotpointChanged re-renders fileID if it is on screen
func (s *Session) hotpointChanged(fileID string) {
	if !slices.Contains(s.visible, fileID) {
		return
	}
	_, err := Invoke[DocumentChanged, Empty](context.Background(), s.Table, EventDocument, DocumentChanged{FileID: fileID})
	if err != nil {
		slog.Debug("session: document event", "file", fileID, "err", err)
	}
}

// applyHighlights pushes the current ranges for every visible file
func (s *Session) applyHighlights() {
	ranges := s.Hotpoints.Refresh(s.visible)
	for _, fileID := range s.visible {
		s.surface.Apply(fileID, ranges[fileID])
	}
}

// logStoreError appends a store failure to the workspace error log. Logging
// failures are only traced.
func (s *Session) logStoreError(err error) {
	entry := db.PersistError{Op: "store", Error: err.Error(), SessionID: s.ID}
	var perr *hotpoint.PersistenceError
	if errors.As(err, &perr) {
		entry.Op = perr.Op
		entry.Key = perr.Key
		if perr.Err != nil {
			entry.Error = perr.Err.Error()
		}
	}
	if lerr := db.LogPersistError(s.BaseDir, entry); lerr != nil {
		slog.Debug("session: log persist error", "err", lerr)
	}
}
