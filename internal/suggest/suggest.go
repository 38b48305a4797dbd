// Package suggest finds close matches for mistyped names (states, config
// keys, file ids) using Levenshtein distance.
package suggest

import (
	"cmp"
	"slices"
	"strings"
)

// levenshtein calculates the edit distance between two strings, by rune
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

// Names returns up to three candidates close to unknown, best first.
// Matching ignores case. A candidate is close when it is within three edits
// or half the length of unknown, or when one contains the other.
func Names(unknown string, candidates []string) []string {
	needle := strings.ToLower(strings.TrimSpace(unknown))
	if needle == "" {
		return nil
	}

	type scored struct {
		name  string
		score int
	}
	var near []scored
	for _, c := range candidates {
		hay := strings.ToLower(c)
		dist := levenshtein(needle, hay)
		if strings.Contains(hay, needle) || strings.Contains(needle, hay) {
			dist = min(dist, 1)
		}
		if dist <= max(3, len(needle)/2) {
			near = append(near, scored{c, dist})
		}
	}
	slices.SortStableFunc(near, func(a, b scored) int { return cmp.Compare(a.score, b.score) })

	var out []string
	for i := 0; i < len(near) && i < 3; i++ {
		out = append(out, near[i].name)
	}
	return out
}

// Hint formats suggestions as " (did you mean A or B?)", or "" for none
func Hint(suggestions []string) string {
	if len(suggestions) == 0 {
		return ""
	}
	return " (did you mean " + strings.Join(suggestions, " or ") + "?)"
}
