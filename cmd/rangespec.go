package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/marcus/wsmark/internal/models"
)

// parseRange reads a 1-based range as editors display it:
//
//	12:5-14:9   line 12 column 5 up to line 14 column 9 (exclusive)
//	12          all of line 12
//	12-14       all of lines 12 through 14
//
// The whole-line forms need the document lines to find where a line ends.
func parseRange(raw string, lines []string) (models.Range, error) {
	raw = strings.TrimSpace(raw)
	from, to, isSpan := strings.Cut(raw, "-")

	if strings.Contains(from, ":") {
		if !isSpan {
			return models.Range{}, fmt.Errorf("range %q needs an end (L:C-L:C)", raw)
		}
		sl, sc, err := parsePos(from)
		if err != nil {
			return models.Range{}, err
		}
		el, ec, err := parsePos(to)
		if err != nil {
			return models.Range{}, err
		}
		return models.NewRange(sl-1, sc-1, el-1, ec-1), nil
	}

	start, err := parseLine(from)
	if err != nil {
		return models.Range{}, err
	}
	end := start
	if isSpan {
		if end, err = parseLine(to); err != nil {
			return models.Range{}, err
		}
	}
	if end < start {
		start, end = end, start
	}
	if end > len(lines) {
		return models.Range{}, fmt.Errorf("line %d is past the end of the file (%d lines)", end, len(lines))
	}
	return models.NewRange(start-1, 0, end-1, len([]rune(lines[end-1]))), nil
}

func parsePos(s string) (line, col int, err error) {
	l, c, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid position %q (want L:C)", s)
	}
	if line, err = parseLine(l); err != nil {
		return 0, 0, err
	}
	col, err = strconv.Atoi(strings.TrimSpace(c))
	if err != nil || col < 1 {
		return 0, 0, fmt.Errorf("invalid column %q (columns start at 1)", c)
	}
	return line, col, nil
}

func parseLine(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid line %q (lines start at 1)", s)
	}
	return n, nil
}

// parseIndex reads a 1-based list index and returns it 0-based
func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid index %q (indexes start at 1)", s)
	}
	return n - 1, nil
}
