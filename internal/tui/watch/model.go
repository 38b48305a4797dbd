// Package watch is the live terminal view: one file at a time with its
// hotpoints highlighted, a tinted status bar, and reloads as files change.
package watch

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/wsmark/internal/config"
	"github.com/marcus/wsmark/internal/highlight"
	"github.com/marcus/wsmark/internal/models"
	"github.com/marcus/wsmark/internal/session"
	"github.com/marcus/wsmark/internal/status"
)

// MinWidth is the minimum terminal width for the full view
const MinWidth = 40

// MinHeight is the minimum terminal height for the full view
const MinHeight = 8

// listRows caps the hotpoint pane height
const listRows = 6

// TickMsg triggers a re-stat of the watched files
type TickMsg time.Time

// Model is the Bubble Tea model for the live view
type Model struct {
	Sess       *session.Session
	Highlights *highlight.Set
	Files      []File
	Active     int

	Docs     map[string]*Document
	DocErrs  map[string]error
	Snapshot status.Snapshot

	// Window dimensions
	Width  int
	Height int

	// UI state
	ShowList    bool
	ShowHelp    bool
	LastRefresh time.Time
	Err         error // last error, if any

	RefreshInterval time.Duration

	cache     *DocCache
	viewport  viewport.Model
	keys      keyMap
	markColor string
}

// NewModel creates the live view. hs must be the surface the session was
// opened with. The first file becomes the visible one.
func NewModel(sess *session.Session, hs *highlight.Set, files []File, interval time.Duration) (Model, error) {
	cache, err := NewDocCache(DefaultCacheSize)
	if err != nil {
		return Model{}, err
	}
	m := Model{
		Sess:            sess,
		Highlights:      hs,
		Files:           files,
		Docs:            make(map[string]*Document),
		RefreshInterval: interval,
		ShowList:        true,
		cache:           cache,
		viewport:        viewport.New(0, 0),
		keys:            defaultKeys(),
		markColor:       config.HighlightColor(sess.Config),
	}
	m.showActive()
	m.refreshStatus()
	return m, nil
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadDocs(),
		m.scheduleTick(),
	)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.renderContent()
		return m, nil

	case TickMsg:
		return m, tea.Batch(m.loadDocs(), m.scheduleTick())

	case DocsMsg:
		m.Docs = msg.Docs
		m.DocErrs = msg.Errs
		for _, id := range msg.Changed {
			_, err := session.Invoke[session.DocumentChanged, session.Empty](context.Background(),
				m.Sess.Table, session.EventDocument, session.DocumentChanged{FileID: id})
			if err != nil {
				m.Err = err
			}
		}
		m.LastRefresh = time.Now()
		m.refreshStatus()
		m.renderContent()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleKey processes key input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.ShowHelp = !m.ShowHelp
		return m, nil

	case key.Matches(msg, m.keys.NextFile):
		m.switchFile(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevFile):
		m.switchFile(-1)
		return m, nil

	case key.Matches(msg, m.keys.NextState):
		_, err := session.Invoke[session.Empty, models.State](context.Background(),
			m.Sess.Table, session.CmdNextState, session.Empty{})
		m.Err = err
		m.refreshStatus()
		return m, nil

	case key.Matches(msg, m.keys.List):
		m.ShowList = !m.ShowList
		m.renderContent()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.Err = m.Sess.Hotpoints.Reload()
		m.cache.Purge()
		m.showActive()
		return m, m.loadDocs()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m Model) View() string {
	return m.renderView()
}

func (m *Model) switchFile(delta int) {
	n := len(m.Files)
	if n < 2 {
		return
	}
	m.Active = (m.Active + delta + n) % n
	m.showActive()
	m.viewport.GotoTop()
	m.renderContent()
}

// showActive makes the active file the visible set
func (m *Model) showActive() {
	f, ok := m.activeFile()
	if !ok {
		return
	}
	if err := m.Sess.SetVisible(context.Background(), []string{f.ID}); err != nil {
		m.Err = err
	}
}

func (m *Model) refreshStatus() {
	snap, err := m.Sess.Status.Snapshot()
	m.Snapshot = snap
	if err != nil {
		m.Err = err
	}
}

func (m Model) activeFile() (File, bool) {
	if m.Active < 0 || m.Active >= len(m.Files) {
		return File{}, false
	}
	return m.Files[m.Active], true
}

// scheduleTick returns a command that sends a TickMsg after the refresh interval
func (m Model) scheduleTick() tea.Cmd {
	return tea.Tick(m.RefreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// loadDocs re-reads changed files off the update loop
func (m Model) loadDocs() tea.Cmd {
	cache, files := m.cache, m.Files
	return func() tea.Msg {
		return LoadDocs(cache, files)
	}
}
