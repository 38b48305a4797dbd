package session

import (
	"context"
	"errors"

	"github.com/marcus/wsmark/internal/hotpoint"
	"github.com/marcus/wsmark/internal/models"
	"github.com/marcus/wsmark/internal/status"
)

// Command names
const (
	CmdSelectState  = "state.select"
	CmdNextState    = "state.next"
	CmdSetFlow      = "flow.set"
	CmdSetReminder  = "reminder.set"
	CmdTakeReminder = "reminder.take"
	CmdStatus       = "status.snapshot"
	CmdAddHotpoint  = "hotpoint.add"
	CmdRemHotpoint  = "hotpoint.remove"
	CmdListHotpoint = "hotpoint.list"
)

// Event names
const (
	EventVisible  = "editor.visible"
	EventDocument = "editor.document"
)

type SelectStateInput struct {
	Name string
}

type SetFlowInput struct {
	Text string
}

type SetReminderInput struct {
	Text string
}

type AddHotpointInput struct {
	FileID string
	Range  models.Range
	Label  string
}

// RemoveHotpointInput deletes by index. When Expect is set and the entry at
// Index no longer matches it (the list changed since it was shown), the
// entry is looked up again by value.
type RemoveHotpointInput struct {
	Index  int
	Expect *models.Hotpoint
}

// VisibleChanged replaces the set of files shown on the surface
type VisibleChanged struct {
	Files []string
}

// DocumentChanged signals that one file's content or hotpoints changed
type DocumentChanged struct {
	FileID string
}

func (s *Session) register() {
	t := s.Table

	Handle(t, CmdSelectState, func(_ context.Context, in SelectStateInput) (models.State, error) {
		st, err := s.Status.Select(in.Name)
		s.statusFailed("select", status.KeyState, err)
		return st, err
	})
	Handle(t, CmdNextState, func(_ context.Context, _ Empty) (models.State, error) {
		st, err := s.Status.Next()
		s.statusFailed("select", status.KeyState, err)
		return st, err
	})
	Handle(t, CmdSetFlow, func(_ context.Context, in SetFlowInput) (Empty, error) {
		err := s.Status.SetFlow(in.Text)
		s.statusFailed("save", status.KeyFlow, err)
		return Empty{}, err
	})
	Handle(t, CmdSetReminder, func(_ context.Context, in SetReminderInput) (Empty, error) {
		err := s.Status.SetReminder(in.Text)
		s.statusFailed("save", status.KeyReminder, err)
		return Empty{}, err
	})
	Handle(t, CmdTakeReminder, func(_ context.Context, _ Empty) (string, error) {
		note, err := s.Status.TakeReminder()
		s.statusFailed("take", status.KeyReminder, err)
		return note, err
	})
	Handle(t, CmdStatus, func(_ context.Context, _ Empty) (status.Snapshot, error) {
		return s.Status.Snapshot()
	})

	Handle(t, CmdAddHotpoint, func(_ context.Context, in AddHotpointInput) (models.Hotpoint, error) {
		return s.Hotpoints.Add(in.FileID, in.Range, in.Label)
	})
	Handle(t, CmdRemHotpoint, func(_ context.Context, in RemoveHotpointInput) (models.Hotpoint, error) {
		idx, err := s.resolveIndex(in)
		if err != nil {
			return models.Hotpoint{}, err
		}
		return s.Hotpoints.RemoveAt(idx)
	})
	Handle(t, CmdListHotpoint, func(_ context.Context, _ Empty) ([]models.Hotpoint, error) {
		return s.Hotpoints.List(), nil
	})

	Handle(t, EventVisible, func(_ context.Context, in VisibleChanged) (Empty, error) {
		s.visible = dedupe(in.Files)
		s.applyHighlights()
		return Empty{}, nil
	})
	Handle(t, EventDocument, func(_ context.Context, _ DocumentChanged) (Empty, error) {
		s.applyHighlights()
		return Empty{}, nil
	})
}

func (s *Session) resolveIndex(in RemoveHotpointInput) (int, error) {
	if in.Expect == nil {
		return in.Index, nil
	}
	list := s.Hotpoints.List()
	if in.Index >= 0 && in.Index < len(list) && list[in.Index] == *in.Expect {
		return in.Index, nil
	}
	if idx := s.Hotpoints.IndexOf(*in.Expect); idx >= 0 {
		return idx, nil
	}
	return -1, &hotpoint.IndexError{Index: in.Index, Len: len(list)}
}

// statusFailed logs store failures from the status tracker. Unknown state
// names are user errors, not store failures.
func (s *Session) statusFailed(op, key string, err error) {
	if err == nil || errors.Is(err, status.ErrUnknownState) {
		return
	}
	s.logStoreError(&hotpoint.PersistenceError{Op: op, Key: key, Err: err})
}

func dedupe(files []string) []string {
	out := make([]string, 0, len(files))
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}
