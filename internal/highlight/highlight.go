// Package highlight applies hotpoint ranges to document lines for terminal display.
package highlight

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/wsmark/internal/models"
)

// Span is a half-open rune interval within one line
type Span struct{ From, To int }

// Spans returns the merged rune spans of line that the ranges cover.
// Coordinates past the end of the line are clamped.
func Spans(line int, lineLen int, ranges []models.Range) []Span {
	var spans []Span
	for _, r := range ranges {
		if !r.ContainsLine(line) {
			continue
		}
		from, to := 0, lineLen
		if line == r.Start.Line {
			from = r.Start.Col
		}
		if line == r.End.Line {
			to = r.End.Col
		}
		from = clamp(from, 0, lineLen)
		to = clamp(to, 0, lineLen)
		if to > from {
			spans = append(spans, Span{from, to})
		}
	}
	return merge(spans)
}

func merge(spans []Span) []Span {
	if len(spans) < 2 {
		return spans
	}
	slices.SortFunc(spans, func(a, b Span) int { return a.From - b.From })
	out := spans[:1]
	for _, s := range spans[1:] {
		last := &out[len(out)-1]
		if s.From <= last.To {
			last.To = max(last.To, s.To)
			continue
		}
		out = append(out, s)
	}
	return out
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// Render returns lines with every covered span wrapped in style. Ranges are
// point-in-time snapshots, so ranges that now start past the end of the
// document draw nothing.
func Render(lines []string, ranges []models.Range, style lipgloss.Style) []string {
	// keep tabs byte-identical inside and outside highlights
	style = style.TabWidth(lipgloss.NoTabConversion)
	out := make([]string, len(lines))
	for i, line := range lines {
		runes := []rune(line)
		spans := Spans(i, len(runes), ranges)
		if len(spans) == 0 {
			out[i] = line
			continue
		}
		var sb strings.Builder
		pos := 0
		for _, s := range spans {
			sb.WriteString(string(runes[pos:s.From]))
			sb.WriteString(style.Render(string(runes[s.From:s.To])))
			pos = s.To
		}
		sb.WriteString(string(runes[pos:]))
		out[i] = sb.String()
	}
	return out
}

// Window returns the [start, end) line window showing r with context lines
// on either side, clamped to a document of total lines.
func Window(total int, r models.Range, context int) (start, end int) {
	start = clamp(r.Start.Line-context, 0, total)
	end = clamp(r.End.Line+context+1, start, total)
	return start, end
}

// Number prefixes each line with its 1-based line number, starting at first.
// Lines touched by marked ranges get a marker in the gutter.
func Number(lines []string, first int, marked []models.Range, gutter lipgloss.Style) []string {
	width := len(fmt.Sprint(first + len(lines)))
	out := make([]string, len(lines))
	for i, line := range lines {
		mark := " "
		for _, r := range marked {
			if r.ContainsLine(first + i) {
				mark = "▌"
				break
			}
		}
		prefix := fmt.Sprintf("%*d %s", width, first+i+1, mark)
		out[i] = gutter.Render(prefix) + " " + line
	}
	return out
}

// SplitLines splits document text into lines, accepting \n and \r\n
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return []string{}
	}
	return strings.Split(text, "\n")
}
