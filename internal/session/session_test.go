package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus/wsmark/internal/db"
	"github.com/marcus/wsmark/internal/hotpoint"
	"github.com/marcus/wsmark/internal/models"
	"github.com/marcus/wsmark/internal/status"
)

type applyCall struct {
	FileID string
	Ranges []models.Range
}

type recordingSurface struct {
	calls []applyCall
}

func (r *recordingSurface) Apply(fileID string, ranges []models.Range) {
	r.calls = append(r.calls, applyCall{FileID: fileID, Ranges: ranges})
}

func (r *recordingSurface) reset() { r.calls = nil }

func openTestSession(t *testing.T) (*Session, *recordingSurface) {
	t.Helper()
	dir := t.TempDir()
	database, err := db.Initialize(dir)
	require.NoError(t, err)
	require.NoError(t, database.Close())

	surface := &recordingSurface{}
	s, err := Open(dir, WithSurface(surface), WithID("ses-test"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, surface
}

func TestOpenRequiresInit(t *testing.T) {
	_, err := Open(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wsmark init")
}

func TestOpenRegistersEveryName(t *testing.T) {
	s, _ := openTestSession(t)
	assert.Equal(t, "ses-test", s.ID)
	for _, name := range []string{
		CmdSelectState, CmdNextState, CmdSetFlow, CmdSetReminder, CmdTakeReminder,
		CmdStatus, CmdAddHotpoint, CmdRemHotpoint, CmdListHotpoint,
		EventVisible, EventDocument,
	} {
		assert.True(t, s.Table.Has(name), name)
	}
}

func TestOpenGeneratesID(t *testing.T) {
	dir := t.TempDir()
	database, err := db.Initialize(dir)
	require.NoError(t, err)
	database.Close()

	s, err := Open(dir)
	require.NoError(t, err)
	defer s.Close()
	assert.Len(t, s.ID, 36)
}

func TestAddListRemoveThroughTable(t *testing.T) {
	s, _ := openTestSession(t)
	ctx := context.Background()

	h, err := Invoke[AddHotpointInput, models.Hotpoint](ctx, s.Table, CmdAddHotpoint, AddHotpointInput{
		FileID: "fileA",
		Range:  models.NewRange(1, 0, 1, 5),
		Label:  "bug",
	})
	require.NoError(t, err)
	assert.Equal(t, "bug", h.Label)

	list, err := Invoke[Empty, []models.Hotpoint](ctx, s.Table, CmdListHotpoint, Empty{})
	require.NoError(t, err)
	require.Len(t, list, 1)

	removed, err := Invoke[RemoveHotpointInput, models.Hotpoint](ctx, s.Table, CmdRemHotpoint, RemoveHotpointInput{Index: 0})
	require.NoError(t, err)
	assert.Equal(t, h, removed)
	assert.Equal(t, 0, s.Hotpoints.Len())
}

func TestAddValidationErrorPassesThrough(t *testing.T) {
	s, _ := openTestSession(t)
	_, err := Invoke[AddHotpointInput, models.Hotpoint](context.Background(), s.Table, CmdAddHotpoint, AddHotpointInput{
		FileID: "fileA",
		Range:  models.NewRange(1, 0, 1, 0),
		Label:  "empty",
	})
	require.ErrorIs(t, err, hotpoint.ErrValidation)
}

func TestRemoveRelocatesStaleIndex(t *testing.T) {
	s, _ := openTestSession(t)
	s.Hotpoints.Add("f", models.NewRange(0, 0, 0, 1), "a")
	b, _ := s.Hotpoints.Add("f", models.NewRange(1, 0, 1, 1), "b")
	c, _ := s.Hotpoints.Add("f", models.NewRange(2, 0, 2, 1), "c")

	// list shown as [a b c]; "a" is removed elsewhere before the user picks "c" at 2
	_, err := s.Hotpoints.RemoveAt(0)
	require.NoError(t, err)

	removed, err := Invoke[RemoveHotpointInput, models.Hotpoint](context.Background(), s.Table, CmdRemHotpoint,
		RemoveHotpointInput{Index: 2, Expect: &c})
	require.NoError(t, err)
	assert.Equal(t, c, removed)
	assert.Equal(t, []models.Hotpoint{b}, s.Hotpoints.List())
}

func TestRemoveExpectedGone(t *testing.T) {
	s, _ := openTestSession(t)
	a, _ := s.Hotpoints.Add("f", models.NewRange(0, 0, 0, 1), "a")
	s.Hotpoints.Add("f", models.NewRange(1, 0, 1, 1), "b")
	_, err := s.Hotpoints.RemoveAt(0)
	require.NoError(t, err)

	_, err = Invoke[RemoveHotpointInput, models.Hotpoint](context.Background(), s.Table, CmdRemHotpoint,
		RemoveHotpointInput{Index: 0, Expect: &a})
	require.ErrorIs(t, err, hotpoint.ErrIndex)
	assert.Equal(t, 1, s.Hotpoints.Len())
}

func TestRemoveOutOfRange(t *testing.T) {
	s, _ := openTestSession(t)
	_, err := Invoke[RemoveHotpointInput, models.Hotpoint](context.Background(), s.Table, CmdRemHotpoint,
		RemoveHotpointInput{Index: 5})
	var ierr *hotpoint.IndexError
	require.True(t, errors.As(err, &ierr))
	assert.Equal(t, 5, ierr.Index)
	assert.Equal(t, 0, ierr.Len)
}

func TestVisibleAppliesHighlights(t *testing.T) {
	s, surface := openTestSession(t)
	s.Hotpoints.Add("a.go", models.NewRange(0, 0, 0, 4), "one")
	s.Hotpoints.Add("c.go", models.NewRange(2, 0, 3, 0), "other")

	require.NoError(t, s.SetVisible(context.Background(), []string{"a.go", "b.go", "a.go"}))
	assert.Equal(t, []string{"a.go", "b.go"}, s.Visible())
	assert.Equal(t, []applyCall{
		{FileID: "a.go", Ranges: []models.Range{models.NewRange(0, 0, 0, 4)}},
		{FileID: "b.go", Ranges: []models.Range{}},
	}, surface.calls)
}

func TestChangeOnVisibleFileReapplies(t *testing.T) {
	s, surface := openTestSession(t)
	ctx := context.Background()
	require.NoError(t, s.SetVisible(ctx, []string{"a.go"}))
	surface.reset()

	_, err := Invoke[AddHotpointInput, models.Hotpoint](ctx, s.Table, CmdAddHotpoint, AddHotpointInput{
		FileID: "a.go", Range: models.NewRange(3, 1, 3, 6), Label: "hot",
	})
	require.NoError(t, err)
	require.Len(t, surface.calls, 1)
	assert.Equal(t, "a.go", surface.calls[0].FileID)
	assert.Len(t, surface.calls[0].Ranges, 1)

	surface.reset()
	_, err = Invoke[RemoveHotpointInput, models.Hotpoint](ctx, s.Table, CmdRemHotpoint, RemoveHotpointInput{Index: 0})
	require.NoError(t, err)
	require.Len(t, surface.calls, 1)
	assert.Empty(t, surface.calls[0].Ranges)
}

func TestChangeOnHiddenFileDoesNotApply(t *testing.T) {
	s, surface := openTestSession(t)
	require.NoError(t, s.SetVisible(context.Background(), []string{"a.go"}))
	surface.reset()

	s.Hotpoints.Add("hidden.go", models.NewRange(0, 0, 0, 2), "x")
	assert.Empty(t, surface.calls)
}

func TestDocumentEventReapplies(t *testing.T) {
	s, surface := openTestSession(t)
	ctx := context.Background()
	s.Hotpoints.Add("a.go", models.NewRange(0, 0, 0, 2), "x")
	require.NoError(t, s.SetVisible(ctx, []string{"a.go"}))
	surface.reset()

	_, err := Invoke[DocumentChanged, Empty](ctx, s.Table, EventDocument, DocumentChanged{FileID: "a.go"})
	require.NoError(t, err)
	assert.Len(t, surface.calls, 1)
}

func TestStateCommands(t *testing.T) {
	s, _ := openTestSession(t)
	ctx := context.Background()

	st, err := Invoke[SelectStateInput, models.State](ctx, s.Table, CmdSelectState, SelectStateInput{Name: "USER"})
	require.NoError(t, err)
	assert.Equal(t, "USER", st.Name)

	st, err = Invoke[Empty, models.State](ctx, s.Table, CmdNextState, Empty{})
	require.NoError(t, err)
	assert.Equal(t, "CORRECT-EXECUTION", st.Name)

	_, err = Invoke[SelectStateInput, models.State](ctx, s.Table, CmdSelectState, SelectStateInput{Name: "NOPE"})
	require.ErrorIs(t, err, status.ErrUnknownState)

	// user errors are not persistence failures
	logged, err := db.ReadPersistErrors(s.BaseDir, 0)
	require.NoError(t, err)
	assert.Empty(t, logged)
}

func TestFlowAndReminderCommands(t *testing.T) {
	s, _ := openTestSession(t)
	ctx := context.Background()

	_, err := Invoke[SetFlowInput, Empty](ctx, s.Table, CmdSetFlow, SetFlowInput{Text: "  tracing auth  "})
	require.NoError(t, err)
	_, err = Invoke[SetReminderInput, Empty](ctx, s.Table, CmdSetReminder, SetReminderInput{Text: "check logs"})
	require.NoError(t, err)

	snap, err := Invoke[Empty, status.Snapshot](ctx, s.Table, CmdStatus, Empty{})
	require.NoError(t, err)
	assert.Equal(t, "tracing auth", snap.Flow)
	assert.Equal(t, "check logs", snap.Reminder)

	note, err := Invoke[Empty, string](ctx, s.Table, CmdTakeReminder, Empty{})
	require.NoError(t, err)
	assert.Equal(t, "check logs", note)

	note, err = Invoke[Empty, string](ctx, s.Table, CmdTakeReminder, Empty{})
	require.NoError(t, err)
	assert.Empty(t, note)
}

func TestLogStoreErrorWritesEntry(t *testing.T) {
	s, _ := openTestSession(t)
	s.logStoreError(&hotpoint.PersistenceError{Op: "save", Key: hotpoint.DefaultKey, Err: errors.New("disk full")})

	logged, err := db.ReadPersistErrors(s.BaseDir, 0)
	require.NoError(t, err)
	require.Len(t, logged, 1)
	assert.Equal(t, "save", logged[0].Op)
	assert.Equal(t, hotpoint.DefaultKey, logged[0].Key)
	assert.Equal(t, "disk full", logged[0].Error)
	assert.Equal(t, "ses-test", logged[0].SessionID)
}

func TestHotpointsPersistAcrossSessions(t *testing.T) {
	s, _ := openTestSession(t)
	s.Hotpoints.Add("a.go", models.NewRange(0, 0, 0, 2), "x")
	dir := s.BaseDir
	require.NoError(t, s.Close())

	again, err := Open(dir)
	require.NoError(t, err)
	defer again.Close()
	assert.Equal(t, 1, again.Hotpoints.Len())
}
