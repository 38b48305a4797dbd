package output

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/wsmark/internal/models"
)

func TestFormatTimeAgo(t *testing.T) {
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{0, "just now"},
		{59 * time.Second, "just now"},
		{1 * time.Minute, "1m ago"},
		{59 * time.Minute, "59m ago"},
		{1 * time.Hour, "1h ago"},
		{23 * time.Hour, "23h ago"},
		{24 * time.Hour, "1d ago"},
		{6 * 24 * time.Hour, "6d ago"},
	}
	for _, tc := range tests {
		if got := FormatTimeAgo(time.Now().Add(-tc.ago)); got != tc.want {
			t.Errorf("FormatTimeAgo(-%v) = %q, want %q", tc.ago, got, tc.want)
		}
	}
}

func TestFormatTimeAgoOld(t *testing.T) {
	tm := time.Now().Add(-30 * 24 * time.Hour)
	if got := FormatTimeAgo(tm); got != tm.Format("2006-01-02") {
		t.Errorf("FormatTimeAgo = %q, want date", got)
	}
}

func TestFormatHotpoint(t *testing.T) {
	h := models.Hotpoint{
		FileID: "src/main.go",
		Range:  models.NewRange(11, 0, 13, 4),
		Label:  "entry",
	}
	got := ansi.Strip(FormatHotpoint(2, h))
	want := "  3  entry  src/main.go  12:1-14:5"
	if got != want {
		t.Errorf("FormatHotpoint = %q, want %q", got, want)
	}
}

func TestHotpointOneLiner(t *testing.T) {
	h := models.Hotpoint{FileID: "a.go", Range: models.NewRange(0, 0, 0, 3), Label: "x y"}
	if got := HotpointOneLiner(h); got != `"x y" a.go 1:1-1:4` {
		t.Errorf("HotpointOneLiner = %q", got)
	}
}

func TestFormatStateChip(t *testing.T) {
	got := ansi.Strip(FormatStateChip(models.State{Name: "USER", Color: "#6A0DAD"}))
	if strings.TrimSpace(got) != "USER" {
		t.Errorf("FormatStateChip = %q", got)
	}
}

func TestIndentString(t *testing.T) {
	if got := IndentString("a\nb", 2); got != "  a\n  b" {
		t.Errorf("IndentString = %q", got)
	}
	if got := IndentString("", 2); got != "" {
		t.Errorf("IndentString empty = %q", got)
	}
}

func TestSectionHeader(t *testing.T) {
	if got := SectionHeader("hotpoints"); got != "\nHOTPOINTS:\n" {
		t.Errorf("SectionHeader = %q", got)
	}
}
