package suggest

import (
	"slices"
	"testing"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "ab", 2},
		{"kitten", "sitting", 3},
		{"USER", "USER", 0},
		{"héllo", "hello", 1},
	}
	for _, tc := range tests {
		if got := levenshtein(tc.a, tc.b); got != tc.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestNamesBestFirst(t *testing.T) {
	states := []string{"DEFAULT", "ATTACKER", "USER", "CORRECT-EXECUTION"}

	got := Names("attaker", states)
	if len(got) == 0 || got[0] != "ATTACKER" {
		t.Errorf("Names(attaker) = %v, want ATTACKER first", got)
	}

	got = Names("correct", states)
	if !slices.Contains(got, "CORRECT-EXECUTION") {
		t.Errorf("Names(correct) = %v, want CORRECT-EXECUTION via substring", got)
	}
}

func TestNamesNoMatch(t *testing.T) {
	if got := Names("zzzzzzzzzzzz", []string{"DEFAULT", "USER"}); len(got) != 0 {
		t.Errorf("Names = %v, want none", got)
	}
	if got := Names("  ", []string{"USER"}); got != nil {
		t.Errorf("blank input = %v, want nil", got)
	}
}

func TestNamesCapsAtThree(t *testing.T) {
	got := Names("ab", []string{"aa", "ab", "ac", "ad", "ae"})
	if len(got) != 3 || got[0] != "ab" {
		t.Errorf("Names = %v", got)
	}
}

func TestHint(t *testing.T) {
	if got := Hint(nil); got != "" {
		t.Errorf("Hint(nil) = %q", got)
	}
	if got := Hint([]string{"USER", "DEFAULT"}); got != " (did you mean USER or DEFAULT?)" {
		t.Errorf("Hint = %q", got)
	}
}
