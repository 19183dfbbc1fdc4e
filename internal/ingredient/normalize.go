// Package ingredient turns the noisy per-item candidate lists returned by
// the suggester into a canonical vocabulary and a binary presence matrix.
package ingredient

import "strings"

// Normalize rewrites one raw ingredient phrase into its canonical form:
// lowercase, then the rule table in declared order. Stripping a quantity
// prefix can leave edge whitespace behind, so the result is trimmed last.
// Pure function, no locale awareness.
func Normalize(raw string) string {
	s := strings.ToLower(raw)
	for _, r := range rules {
		s = strings.ReplaceAll(s, r.pattern, r.replacement)
	}
	return strings.TrimSpace(s)
}
