package stringsx

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Closest returns the candidate with the smallest case-insensitive edit distance to s.
// Candidates further than a third of the length of s (but at least 2 edits) are not
// considered similar and the function reports false. Ties are resolved in candidate order.
func Closest(s string, candidates ...string) (string, bool) {
	if s == "" {
		return "", false
	}

	threshold := max(2, len(s)/3)
	lower := strings.ToLower(s)

	var (
		best     string
		bestDist = threshold + 1
	)
	for _, c := range candidates {
		if c == s {
			continue
		}

		if dist := levenshtein.ComputeDistance(lower, strings.ToLower(c)); dist < bestDist {
			best, bestDist = c, dist
		}
	}

	return best, bestDist <= threshold
}

// Suggestion formats a "did you mean" hint for s, or returns an empty string when no
// candidate is close enough.
func Suggestion(s string, candidates ...string) string {
	if c, ok := Closest(s, candidates...); ok {
		return ", did you mean '" + c + "'?"
	}

	return ""
}
