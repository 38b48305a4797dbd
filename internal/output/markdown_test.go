package output

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestRenderMarkdownEmpty(t *testing.T) {
	out, err := RenderMarkdown("   \n", 40)
	if err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	if out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}

func TestRenderMarkdownKeepsText(t *testing.T) {
	out, err := RenderMarkdown("# State\n\n**USER** flow text", 10)
	if err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	plain := ansi.Strip(out)
	for _, want := range []string{"State", "USER", "flow"} {
		if !strings.Contains(plain, want) {
			t.Errorf("output missing %q:\n%s", want, plain)
		}
	}
	if strings.HasSuffix(out, "\n") {
		t.Error("output should not end with a newline")
	}
}

func TestTerminalWidthFallsBackToColumns(t *testing.T) {
	t.Setenv("COLUMNS", "123")
	// stdout is not a terminal under go test
	if IsTerminal() {
		t.Skip("stdout is a terminal")
	}
	if got := TerminalWidth(0); got != 123 {
		t.Errorf("TerminalWidth = %d, want 123", got)
	}
}

func TestTerminalWidthDefault(t *testing.T) {
	t.Setenv("COLUMNS", "")
	if IsTerminal() {
		t.Skip("stdout is a terminal")
	}
	if got := TerminalWidth(0); got != defaultWidth {
		t.Errorf("TerminalWidth = %d, want %d", got, defaultWidth)
	}
	if got := TerminalWidth(55); got != 55 {
		t.Errorf("TerminalWidth = %d, want 55", got)
	}
}
