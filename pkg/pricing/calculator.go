package pricing

import (
	"math"

	"github.com/mitsumolabs/quotetree/pkg/config"
	"github.com/mitsumolabs/quotetree/pkg/domain"
)

// Calculator is the pure function from a completed session to a three-tier
// estimate. It has no side effects and never fails: a session without a
// base selection yields a zero estimate instead of an error, since the
// navigator's invariants make that case unreachable in normal operation.
type Calculator struct {
	book     *config.PriceBook
	resolver *Resolver
}

// NewCalculator creates a Calculator over the given price book and resolver.
func NewCalculator(book *config.PriceBook, resolver *Resolver) *Calculator {
	return &Calculator{book: book, resolver: resolver}
}

// Estimate computes the three tiers independently and identically:
// base + options + common add-ons, multiplied by the users, locations and
// deadline factors, each tier rounded up to the nearest whole unit.
func (c *Calculator) Estimate(s *domain.Session) domain.Estimate {
	if s == nil || s.Base == nil {
		return domain.Estimate{}
	}

	min, std, max := s.Base.Min, s.Base.Std, s.Base.Max
	for _, o := range s.Options {
		min += o.Min
		std += o.Std
		max += o.Max
	}
	for _, common := range []*domain.Selection{s.Common.ExternalLink, s.Common.DataMigration} {
		if common != nil {
			min += common.Min
			std += common.Std
			max += common.Max
		}
	}

	scaleType := c.resolver.ScaleTypeFor(s.Category)
	factor := c.resolver.Factor(scaleType, domain.ScaleKeyUsers, s.Scale.Users) *
		c.resolver.Factor(scaleType, domain.ScaleKeyLocations, s.Scale.Locations) *
		c.resolver.Factor(scaleType, domain.ScaleKeyDeadline, s.Scale.Deadline)

	return domain.Estimate{
		Min: math.Ceil(min * factor),
		Std: math.Ceil(std * factor),
		Max: math.Ceil(max * factor),
	}
}
