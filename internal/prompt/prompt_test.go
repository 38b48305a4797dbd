package prompt

import (
	"errors"
	"fmt"
	"testing"

	"github.com/charmbracelet/huh"
)

func TestOptions(t *testing.T) {
	opts := Options([]string{"DEFAULT", "USER"})
	if len(opts) != 2 {
		t.Fatalf("got %d options, want 2", len(opts))
	}
	if opts[1].Key != "USER" || opts[1].Value != 1 {
		t.Errorf("option 1 = %q/%d", opts[1].Key, opts[1].Value)
	}
}

func TestNotBlank(t *testing.T) {
	v := NotBlank("label")
	if err := v("  "); err == nil || err.Error() != "label cannot be empty" {
		t.Errorf("blank: got %v", err)
	}
	if err := v("ok"); err != nil {
		t.Errorf("non-blank: got %v", err)
	}
}

func TestDismissed(t *testing.T) {
	ok, err := dismissed(fmt.Errorf("run: %w", huh.ErrUserAborted))
	if ok || err != nil {
		t.Errorf("abort: ok=%v err=%v", ok, err)
	}

	boom := errors.New("tty gone")
	ok, err = dismissed(boom)
	if ok || !errors.Is(err, boom) {
		t.Errorf("failure: ok=%v err=%v", ok, err)
	}
}

func TestSelectEmpty(t *testing.T) {
	idx, ok, err := Select("pick", nil)
	if err == nil || ok || idx != -1 {
		t.Errorf("Select(nil) = %d, %v, %v", idx, ok, err)
	}
}
