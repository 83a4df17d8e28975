package utils

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// SuggestionOptions tunes DidYouMean and AvailableOptions
type SuggestionOptions struct {
	MinDistance int     // distance always accepted regardless of name length
	Ratio       float64 // fraction of the name length accepted as distance
	MaxListed   int     // names listed before "(n more)"
}

// DefaultSuggestionOptions accepts max(3, 30% of the name length) and lists five names
var DefaultSuggestionOptions = SuggestionOptions{MinDistance: 3, Ratio: 0.3, MaxListed: 5}

// DidYouMean returns the closest candidate to name by case-insensitive edit
// distance, or "" when nothing is close enough. Ties go to the earliest
// candidate.
func DidYouMean(name string, candidates []string, opts SuggestionOptions) string {
	if name == "" || len(candidates) == 0 {
		return ""
	}
	threshold := int(float64(len(name)) * opts.Ratio)
	if threshold < opts.MinDistance {
		threshold = opts.MinDistance
	}

	lowered := strings.ToLower(name)
	best, bestDistance := "", threshold+1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(lowered, strings.ToLower(c))
		if d < bestDistance {
			best, bestDistance = c, d
		}
	}
	return best
}

// AvailableOptions renders "available: a, b, c" listing at most MaxListed
// names followed by "(n more)" when truncated. It returns "" for no names.
func AvailableOptions(names []string, opts SuggestionOptions) string {
	if len(names) == 0 {
		return ""
	}
	limit := opts.MaxListed
	if limit <= 0 || limit > len(names) {
		limit = len(names)
	}
	out := "available: " + strings.Join(names[:limit], ", ")
	if rest := len(names) - limit; rest > 0 {
		out += fmt.Sprintf(", ... (%d more)", rest)
	}
	return out
}
