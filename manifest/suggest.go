package manifest

import (
	"sort"

	"caster/utils"
)

const maxSuggestions = 3

// suggest returns the known names closest to name by edit distance, nearest
// first, capped and filtered to plausible typos: a candidate may differ in at
// most half the name's length.
func suggest(name string, known []string) []string {
	type scored struct {
		name string
		dist int
	}

	var close []scored
	for _, k := range known {
		d := levenshtein(name, k)
		if utils.IsInRange(1, d, len(name)/2+1) {
			close = append(close, scored{name: k, dist: d})
		}
	}

	sort.SliceStable(close, func(i, j int) bool {
		if close[i].dist != close[j].dist {
			return close[i].dist < close[j].dist
		}

		return close[i].name < close[j].name
	})

	if len(close) > maxSuggestions {
		close = close[:maxSuggestions]
	}

	names := make([]string, len(close))
	for i, c := range close {
		names[i] = c.name
	}

	return names
}

// levenshtein computes the edit distance between two strings with two rows
// instead of the full matrix.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	if len(a) == 0 {
		return len(b)
	}

	if len(b) == 0 {
		return len(a)
	}

	// Keep a the shorter string.
	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			curr[i] = min(
				prev[i]+1,      // deletion
				curr[i-1]+1,    // insertion
				prev[i-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}
