package vocab

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MatchCutoff is the minimum normalized similarity for a folder segment to
// count as a vocabulary term.
const MatchCutoff = 0.75

var titleCaser = cases.Title(language.English)

// TitleCase normalizes a term for display: every word capitalized.
func TitleCase(s string) string {
	return titleCaser.String(s)
}

// NormalizeSegment turns a folder path segment into a candidate vocabulary
// term: underscores become spaces, words are title-cased.
func NormalizeSegment(segment string) string {
	return TitleCase(strings.ReplaceAll(segment, "_", " "))
}

// MatchTerms maps folder path segments (root to leaf) to vocabulary terms.
// Each segment contributes its single closest fuzzy match above MatchCutoff,
// or nothing. Matches are not de-duplicated here; the tag reconciler does
// that downstream. This is a heuristic: missed and coincidental matches are
// acceptable, never errors.
func MatchTerms(segments []string, terms Set) []string {
	var matched []string
	for _, segment := range segments {
		if m, ok := ClosestTerm(NormalizeSegment(segment), terms); ok {
			matched = append(matched, m)
		}
	}
	return matched
}

// ClosestTerm returns the vocabulary term most similar to candidate, if its
// similarity clears MatchCutoff.
func ClosestTerm(candidate string, terms Set) (string, bool) {
	best := ""
	bestScore := 0.0
	for _, term := range terms.Terms() {
		score := Similarity(candidate, term)
		if score > bestScore {
			best = term
			bestScore = score
		}
	}
	if bestScore >= MatchCutoff {
		return best, true
	}
	return "", false
}

// Similarity is a normalized edit-distance ratio in [0, 1]: identical
// strings score 1, completely different strings score 0.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len([]rune(a))
	if n := len([]rune(b)); n > longest {
		longest = n
	}
	if longest == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}
