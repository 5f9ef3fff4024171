// Package classify resolves free-text input to a system category.
//
// The primary path sends the text to a chat-completion endpoint with a fixed
// instruction describing the closed category list. Any transport failure,
// empty reply or unparsable payload degrades to a keyword-scoring fallback;
// classification never surfaces an error to the caller.
package classify

import "context"

// Confidence is the classifier's self-reported certainty. It drives whether
// a category guess is auto-applied, confirmed with the user, or rejected.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Result is a category verdict. CategoryID and CategoryName are empty when
// Confidence is low and nothing matched.
type Result struct {
	CategoryID   string     `json:"category_id"`
	CategoryName string     `json:"category_name"`
	Confidence   Confidence `json:"confidence"`
}

// Category is one entry of the closed category list, with the keywords the
// fallback path scores against.
type Category struct {
	ID       string
	Name     string
	Keywords []string
}

// Classifier resolves free text to a category. Implementations must always
// return a result, defaulting to low confidence on any failure.
type Classifier interface {
	Classify(ctx context.Context, text string) Result
}
