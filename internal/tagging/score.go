// Package tagging implements the tagging decision engine: scoring a
// document's text against the vocabulary keyword list, reconciling tag
// sources into one final tag set, and driving the per-file tagging pass
// across a library tree.
package tagging

import (
	"regexp"
	"sort"
	"strings"

	"github.com/myshevchuk/borax-cli/internal/vocab"
)

// Scoring thresholds. The occurrence floor gates before the title bonus is
// added: a keyword seen only twice is excluded even though 2 plus the bonus
// would clear the score floor.
const (
	// MinOccurrences is the minimum whole-word occurrence count for a
	// keyword to qualify at all.
	MinOccurrences = 3
	// TitleWeight is the bonus for keywords appearing in the title window.
	TitleWeight = 2.0
	// MinScore is the minimum final score for a keyword to be kept.
	MinScore = 2.0
	// TitleWindow is how many leading characters of the text stand in for
	// the title and abstract.
	TitleWindow = 2000
)

// ScoredKeyword is a qualifying keyword with its score. The term is
// title-cased for display.
type ScoredKeyword struct {
	Term  string  `json:"term"`
	Score float64 `json:"score"`
}

// ScoreKeywords scores lowercase full text against the vocabulary's
// lowercase keyword set. Only standalone whole-word occurrences count, so
// "acid" never matches inside "acidic". Results are sorted by score
// descending; ties keep the keywords' encounter order.
func ScoreKeywords(text string, keywords vocab.Set) []ScoredKeyword {
	titleText := text
	if len(titleText) > TitleWindow {
		titleText = titleText[:TitleWindow]
	}

	var scored []ScoredKeyword
	for _, kw := range keywords.Terms() {
		count := countWholeWord(text, kw)
		if count < MinOccurrences {
			continue
		}
		score := float64(count)
		// The title window check is plain containment, not word-bounded.
		if strings.Contains(titleText, kw) {
			score += TitleWeight
		}
		if score < MinScore {
			continue
		}
		scored = append(scored, ScoredKeyword{Term: vocab.TitleCase(kw), Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// Terms returns just the keyword terms, highest score first.
func Terms(scored []ScoredKeyword) []string {
	terms := make([]string, len(scored))
	for i, s := range scored {
		terms[i] = s.Term
	}
	return terms
}

// countWholeWord counts word-boundary-delimited occurrences of kw in text.
func countWholeWord(text, kw string) int {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
	return len(re.FindAllStringIndex(text, -1))
}
