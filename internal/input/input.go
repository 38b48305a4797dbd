// Package input reads free-text arguments that may come from stdin (-) or a
// file (@path).
package input

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Text joins args into one string. A single "-" argument reads stdin and a
// single "@path" argument reads the file. Surrounding whitespace is trimmed.
func Text(args []string, stdin io.Reader) (string, error) {
	if len(args) != 1 {
		return strings.TrimSpace(strings.Join(args, " ")), nil
	}
	arg := args[0]
	switch {
	case arg == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	case strings.HasPrefix(arg, "@") && len(arg) > 1:
		data, err := os.ReadFile(arg[1:])
		if err != nil {
			return "", fmt.Errorf("read %s: %w", arg[1:], err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return strings.TrimSpace(arg), nil
}

// FirstLine returns text up to the first newline
func FirstLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return strings.TrimSpace(line)
}
