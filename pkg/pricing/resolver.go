// Package pricing centralizes scale-type resolution and the three-tier
// estimate calculation. Both the navigator (for its skip rule) and the
// calculator (for multipliers) consult the same Resolver, so the
// category-to-scale-type derivation lives in exactly one place.
package pricing

import (
	"github.com/mitsumolabs/quotetree/pkg/config"
	"github.com/mitsumolabs/quotetree/pkg/domain"
)

// ScaleTypeDeadlineOnly marks categories whose price does not vary by user
// or location count; the users question is suppressed for them and their
// users factor is pinned to 1.0.
const ScaleTypeDeadlineOnly = "deadline_only"

// Resolver answers "what is this category's scale-type" and "what factor
// applies" from the calculation rules document.
type Resolver struct {
	rules *config.CalcRules
}

// NewResolver creates a Resolver over the given rules.
func NewResolver(rules *config.CalcRules) *Resolver {
	return &Resolver{rules: rules}
}

// ScaleTypeFor returns the scale-type of a category, or "" when the
// category is unknown or unresolved.
func (r *Resolver) ScaleTypeFor(category string) string {
	return r.rules.ScaleTypes[category]
}

// Factor looks up the multiplicative factor for one scale dimension.
// It defaults to 1.0 when the selection key is empty or unknown.
//
// The users dimension is short-circuited, not merely defaulted: for a
// deadline-only scale-type the stored users key is ignored entirely.
func (r *Resolver) Factor(scaleType, dimension, key string) float64 {
	if dimension == domain.ScaleKeyUsers && scaleType == ScaleTypeDeadlineOnly {
		return 1.0
	}
	if key == "" {
		return 1.0
	}
	if f, ok := r.rules.Factors[scaleType][dimension][key]; ok {
		return f
	}
	return 1.0
}
