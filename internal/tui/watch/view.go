package watch

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/wsmark/internal/highlight"
)

// chrome is the fixed line count around the viewport: status bar, tabs, footer
const chrome = 3

// renderView renders the complete TUI view
func (m Model) renderView() string {
	if m.Width == 0 || m.Height == 0 {
		return "Loading..."
	}
	if m.Width < MinWidth || m.Height < MinHeight {
		return m.renderCompact()
	}
	if m.ShowHelp {
		return m.renderHelp()
	}

	parts := []string{
		m.Sess.Status.Render(m.Snapshot, m.Width),
		m.renderTabs(),
		m.viewport.View(),
	}
	if m.ShowList {
		parts = append(parts, m.renderList())
	}
	parts = append(parts, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderCompact renders a minimal view for small terminals
func (m Model) renderCompact() string {
	var s strings.Builder
	s.WriteString(m.Snapshot.Line())
	s.WriteString("\n")
	if f, ok := m.activeFile(); ok {
		s.WriteString(fmt.Sprintf("%s: %d hotpoints\n", f.ID, len(m.Highlights.Get(f.ID))))
	}
	s.WriteString("(resize for full view) q:quit")
	return s.String()
}

func (m Model) renderTabs() string {
	tabs := make([]string, len(m.Files))
	for i, f := range m.Files {
		if i == m.Active {
			tabs[i] = activeTabStyle.Render(f.ID)
		} else {
			tabs[i] = tabStyle.Render(f.ID)
		}
	}
	return ansi.Truncate(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), m.Width, "…")
}

// renderList shows the active file's hotpoints in insertion order
func (m Model) renderList() string {
	f, _ := m.activeFile()
	points := m.Sess.Hotpoints.For(f.ID)

	var s strings.Builder
	s.WriteString(paneTitleStyle.Render(fmt.Sprintf("HOTPOINTS (%d)", len(points))))
	if len(points) == 0 {
		s.WriteString("\n")
		s.WriteString(subtleStyle.Render("none in this file"))
	}
	for i, h := range points {
		if i == listRows {
			s.WriteString("\n")
			s.WriteString(subtleStyle.Render(fmt.Sprintf("… %d more", len(points)-listRows)))
			break
		}
		line := fmt.Sprintf("%-13s %s", h.Range.String(), labelStyle.Render(h.Label))
		s.WriteString("\n")
		s.WriteString(ansi.Truncate(line, m.Width-4, "…"))
	}
	return paneStyle.Width(m.Width - 2).Render(s.String())
}

func (m Model) renderFooter() string {
	f, _ := m.activeFile()
	left := fmt.Sprintf("%d/%d  %d hotpoints", m.Active+1, len(m.Files), m.Sess.Hotpoints.Len())
	if !m.LastRefresh.IsZero() {
		left += "  updated " + m.LastRefresh.Format("15:04:05")
	}
	if err := m.DocErrs[f.ID]; err != nil {
		left += "  " + errorStyle.Render(err.Error())
	} else if m.Err != nil {
		left += "  " + errorStyle.Render(m.Err.Error())
	}
	return ansi.Truncate(helpStyle.Render(left+"  ?:help q:quit"), m.Width, "…")
}

func (m Model) renderHelp() string {
	var s strings.Builder
	s.WriteString(paneTitleStyle.Render("KEYS"))
	s.WriteString("\n\n")
	for _, b := range m.keys.bindings() {
		h := b.Help()
		s.WriteString(fmt.Sprintf("  %-10s %s\n", h.Key, h.Desc))
	}
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("press ? to close"))
	return s.String()
}

// resize fits the viewport between the fixed chrome and the list pane
func (m *Model) resize() {
	h := m.Height - chrome
	if m.ShowList {
		h -= m.listHeight()
	}
	m.viewport.Width = m.Width
	m.viewport.Height = max(h, 1)
}

// listHeight is the rendered height of the hotpoint pane
func (m Model) listHeight() int {
	f, _ := m.activeFile()
	rows := min(max(len(m.Sess.Hotpoints.For(f.ID)), 1), listRows+1)
	return rows + 3 // title and border
}

// renderContent draws the active document into the viewport
func (m *Model) renderContent() {
	m.resize()
	f, ok := m.activeFile()
	if !ok {
		m.viewport.SetContent(subtleStyle.Render("no files"))
		return
	}
	doc := m.Docs[f.ID]
	if doc == nil {
		if err := m.DocErrs[f.ID]; err != nil {
			m.viewport.SetContent(errorStyle.Render(err.Error()))
		} else {
			m.viewport.SetContent(subtleStyle.Render("loading " + f.ID))
		}
		return
	}

	ranges := m.Highlights.Get(f.ID)
	lines := highlight.Render(doc.Lines, ranges, markStyle(m.markColor))
	lines = highlight.Number(lines, 0, ranges, gutterStyle)
	for i, line := range lines {
		line = strings.ReplaceAll(line, "\t", "    ")
		if m.Width > 0 {
			line = ansi.Truncate(line, m.Width, "…")
		}
		lines[i] = line
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}
