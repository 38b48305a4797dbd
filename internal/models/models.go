package models

import (
	"encoding/json"
	"fmt"
)

// Position is a zero-based line/column location in a document.
// Columns count runes, not bytes.
type Position struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

// Before reports whether p comes strictly before o in document order
func (p Position) Before(o Position) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Col < o.Col
}

// String formats the position 1-based, the way editors display it
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Col+1)
}

// Range is a start/end position pair. End is exclusive.
type Range struct {
	Start Position
	End   Position
}

// NewRange builds a range, swapping the ends if they are given in reverse
// document order (a selection made bottom-up).
func NewRange(startLine, startCol, endLine, endCol int) Range {
	r := Range{
		Start: Position{Line: startLine, Col: startCol},
		End:   Position{Line: endLine, Col: endCol},
	}
	if r.End.Before(r.Start) {
		r.Start, r.End = r.End, r.Start
	}
	return r
}

// Empty reports whether the range covers no text
func (r Range) Empty() bool {
	return r.Start == r.End
}

// Valid reports whether the range has non-negative coordinates in document order
func (r Range) Valid() bool {
	if r.Start.Line < 0 || r.Start.Col < 0 || r.End.Line < 0 || r.End.Col < 0 {
		return false
	}
	return !r.End.Before(r.Start)
}

// ContainsLine reports whether line is touched by the range
func (r Range) ContainsLine(line int) bool {
	return line >= r.Start.Line && line <= r.End.Line
}

func (r Range) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// rangeRecord is the persisted shape of a Range
type rangeRecord struct {
	StartLine int `json:"startLine"`
	StartCol  int `json:"startCol"`
	EndLine   int `json:"endLine"`
	EndCol    int `json:"endCol"`
}

// MarshalJSON writes the flat startLine/startCol/endLine/endCol record
func (r Range) MarshalJSON() ([]byte, error) {
	return json.Marshal(rangeRecord{
		StartLine: r.Start.Line,
		StartCol:  r.Start.Col,
		EndLine:   r.End.Line,
		EndCol:    r.End.Col,
	})
}

// UnmarshalJSON reads the flat record. Ends are taken verbatim; validation
// belongs to the caller.
func (r *Range) UnmarshalJSON(data []byte) error {
	var rec rangeRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	r.Start = Position{Line: rec.StartLine, Col: rec.StartCol}
	r.End = Position{Line: rec.EndLine, Col: rec.EndCol}
	return nil
}

// Hotpoint is a user-named marker bound to a text range in one file
type Hotpoint struct {
	FileID string `json:"fileId"`
	Range  Range  `json:"range"`
	Label  string `json:"label"`
}

// State is a named status with its tint colour
type State struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// DefaultStates is the palette used when config.json defines none
var DefaultStates = []State{
	{Name: "DEFAULT", Color: "#444444"},
	{Name: "ATTACKER", Color: "#800000"},
	{Name: "USER", Color: "#6A0DAD"},
	{Name: "CORRECT-EXECUTION", Color: "#006400"},
}

// Config holds workspace settings stored in .wsmark/config.json
type Config struct {
	States         []State `json:"states,omitempty"`
	Foreground     string  `json:"foreground,omitempty"`
	HighlightColor string  `json:"highlight_color,omitempty"`
	ContextLines   int     `json:"context_lines,omitempty"`
}
