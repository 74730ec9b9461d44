// Package util holds small helpers shared by the CLI and the logger.
package util

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// foldSource matches candidates case-insensitively.
type foldSource []string

func (s foldSource) String(i int) string { return strings.ToLower(s[i]) }
func (s foldSource) Len() int            { return len(s) }

// Suggest returns up to n candidates fuzzily matching input, best first,
// in their original spelling. n <= 0 returns every match.
func Suggest(input string, candidates []string, n int) []string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return nil
	}
	matches := fuzzy.FindFrom(input, foldSource(candidates))
	if len(matches) == 0 {
		return nil
	}
	if n > 0 && n < len(matches) {
		matches = matches[:n]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = candidates[m.Index]
	}
	return out
}

// DidYouMean formats the best match as an error message suffix, or "".
func DidYouMean(input string, candidates []string) string {
	best := Suggest(input, candidates, 1)
	if len(best) == 0 {
		return ""
	}
	return "; did you mean " + best[0] + "?"
}
