// Package prompt wraps huh forms for the interactive parts of the CLI:
// picking a state, labelling a hotpoint, choosing a hotpoint to jump to.
package prompt

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// IsInteractive reports whether both stdin and stdout are terminals
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Input asks for one line of text. ok is false when the user dismisses the
// prompt; a dismissed prompt is not an error.
func Input(title, placeholder string, validate func(string) error) (value string, ok bool, err error) {
	field := huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(&value)
	if validate != nil {
		field = field.Validate(validate)
	}
	if err := run(huh.NewForm(huh.NewGroup(field))); err != nil {
		ok, err := dismissed(err)
		return "", ok, err
	}
	return strings.TrimSpace(value), true, nil
}

// Select asks the user to choose one of options and returns its index
func Select(title string, options []string) (index int, ok bool, err error) {
	if len(options) == 0 {
		return -1, false, errors.New("nothing to choose from")
	}
	field := huh.NewSelect[int]().
		Title(title).
		Options(Options(options)...).
		Value(&index)
	if err := run(huh.NewForm(huh.NewGroup(field))); err != nil {
		ok, err := dismissed(err)
		return -1, ok, err
	}
	return index, true, nil
}

// Options builds index-valued select options from display strings
func Options(labels []string) []huh.Option[int] {
	opts := make([]huh.Option[int], len(labels))
	for i, l := range labels {
		opts[i] = huh.NewOption(l, i)
	}
	return opts
}

// NotBlank is an Input validator rejecting whitespace-only answers
func NotBlank(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", what)
		}
		return nil
	}
}

func run(f *huh.Form) error {
	return f.WithTheme(huh.ThemeDracula()).Run()
}

// dismissed maps a user abort to (false, nil) and passes other errors through
func dismissed(err error) (bool, error) {
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return false, err
}
