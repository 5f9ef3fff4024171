package classify

import (
	"context"
	"strings"
)

// Keyword scores free text against each category's keyword list by
// case-sensitive substring containment. The category with the strictly
// highest score wins; ties go to the first-declared category.
type Keyword struct {
	categories []Category
}

// NewKeyword creates the fallback classifier over the closed category list.
// Declaration order matters for tie-breaking.
func NewKeyword(categories []Category) *Keyword {
	return &Keyword{categories: categories}
}

// Classify never fails. Score >= 2 maps to high confidence, exactly 1 to
// medium, and 0 to low with empty category fields.
func (k *Keyword) Classify(_ context.Context, text string) Result {
	best := Result{Confidence: ConfidenceLow}
	bestScore := 0

	for _, c := range k.categories {
		score := 0
		for _, kw := range c.Keywords {
			if kw != "" && strings.Contains(text, kw) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best.CategoryID = c.ID
			best.CategoryName = c.Name
		}
	}

	switch {
	case bestScore >= 2:
		best.Confidence = ConfidenceHigh
	case bestScore == 1:
		best.Confidence = ConfidenceMedium
	}
	return best
}
