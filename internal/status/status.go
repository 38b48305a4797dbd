// Package status tracks the workspace's current named state, its flow
// annotation and a one-shot reminder, and renders them as a tinted status line.
package status

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/wsmark/internal/models"
)

// Store keys
const (
	KeyState    = "wsmark.state"
	KeyFlow     = "wsmark.flowInfo"
	KeyReminder = "wsmark.reminder"
)

// ErrUnknownState is returned when selecting a name missing from the palette
var ErrUnknownState = errors.New("unknown state")

// Store is the workspace key/value store
type Store interface {
	Get(key, def string) (string, error)
	Update(key, value string) error
}

// Tracker reads and writes status fields. Every field is a single key with
// last-write-wins semantics.
type Tracker struct {
	store      Store
	palette    []models.State
	foreground string
}

// New creates a tracker over a non-empty palette
func New(store Store, palette []models.State, foreground string) *Tracker {
	if len(palette) == 0 {
		palette = models.DefaultStates
	}
	return &Tracker{store: store, palette: palette, foreground: foreground}
}

// Palette returns the selectable states in order
func (t *Tracker) Palette() []models.State {
	return append([]models.State(nil), t.palette...)
}

func (t *Tracker) lookup(name string) (models.State, bool) {
	for _, s := range t.palette {
		if s.Name == name {
			return s, true
		}
	}
	return models.State{}, false
}

// Current returns the persisted state. An unset name, or one no longer in
// the palette, falls back to the first palette entry.
func (t *Tracker) Current() (models.State, error) {
	name, err := t.store.Get(KeyState, "")
	if s, ok := t.lookup(name); ok {
		return s, err
	}
	return t.palette[0], err
}

// Select makes name the current state
func (t *Tracker) Select(name string) (models.State, error) {
	s, ok := t.lookup(name)
	if !ok {
		return models.State{}, fmt.Errorf("%w: %s", ErrUnknownState, name)
	}
	if err := t.store.Update(KeyState, s.Name); err != nil {
		return s, err
	}
	return s, nil
}

// Next cycles to the state after the current one, wrapping around
func (t *Tracker) Next() (models.State, error) {
	cur, _ := t.Current()
	idx := 0
	for i, s := range t.palette {
		if s.Name == cur.Name {
			idx = i
			break
		}
	}
	return t.Select(t.palette[(idx+1)%len(t.palette)].Name)
}

// Flow returns the flow annotation, or "" when none is set
func (t *Tracker) Flow() (string, error) {
	return t.store.Get(KeyFlow, "")
}

// SetFlow stores trimmed text; empty text clears the flow
func (t *Tracker) SetFlow(text string) error {
	return t.store.Update(KeyFlow, strings.TrimSpace(text))
}

// SetReminder stores a note to be shown once
func (t *Tracker) SetReminder(text string) error {
	return t.store.Update(KeyReminder, strings.TrimSpace(text))
}

// PeekReminder returns the pending reminder without consuming it
func (t *Tracker) PeekReminder() (string, error) {
	return t.store.Get(KeyReminder, "")
}

// TakeReminder returns the pending reminder and clears it
func (t *Tracker) TakeReminder() (string, error) {
	note, err := t.store.Get(KeyReminder, "")
	if err != nil || note == "" {
		return "", err
	}
	if err := t.store.Update(KeyReminder, ""); err != nil {
		return note, err
	}
	return note, nil
}

// Snapshot is the rendered-independent view of the status fields
type Snapshot struct {
	State    models.State `json:"state"`
	Flow     string       `json:"flow,omitempty"`
	Reminder string       `json:"reminder,omitempty"`
}

// Line formats "STATE" or "STATE | flow"
func (s Snapshot) Line() string {
	if s.Flow == "" {
		return s.State.Name
	}
	return s.State.Name + " | " + s.Flow
}

// Tooltip is the longer two-line description
func (s Snapshot) Tooltip() string {
	tip := "Current state: " + s.State.Name
	if s.Flow != "" {
		tip += "\nFlow: " + s.Flow
	}
	return tip
}

// Snapshot reads state and flow. The reminder is peeked, not consumed.
func (t *Tracker) Snapshot() (Snapshot, error) {
	state, err := t.Current()
	if err != nil {
		return Snapshot{State: state}, err
	}
	flow, err := t.Flow()
	if err != nil {
		return Snapshot{State: state}, err
	}
	reminder, err := t.PeekReminder()
	return Snapshot{State: state, Flow: flow, Reminder: reminder}, err
}

// Render draws the status bar tinted with the state colour. width <= 0
// renders without padding.
func (t *Tracker) Render(s Snapshot, width int) string {
	style := lipgloss.NewStyle().
		Background(lipgloss.Color(s.State.Color)).
		Foreground(lipgloss.Color(t.foreground)).
		Bold(true).
		Padding(0, 1)
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(s.Line())
}
