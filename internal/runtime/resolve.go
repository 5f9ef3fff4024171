package runtime

import (
	"context"
	"time"

	"github.com/mitsumolabs/quotetree/pkg/domain"
	"github.com/mitsumolabs/quotetree/pkg/pricing"
)

// resolve advances the session to the given target step, applying the
// transition rules in order: terminal check, conditional evaluation (which
// may chain), the users-question skip for deadline-only categories, and
// implicit category binding. It stops when it lands on a step that emits a
// prompt, or when the terminal sentinel freezes the session.
func (n *Navigator) resolve(ctx context.Context, s *domain.Session, target string) error {
	for hops := 0; hops <= maxResolveHops; hops++ {
		if target == domain.StepResult {
			est := n.calc.Estimate(s)
			s.Result = &est
			s.Completed = true
			s.CurrentStepID = domain.StepResult
			if n.hooks.OnEstimate != nil {
				n.hooks.OnEstimate(ctx, &domain.EstimateEvent{
					EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventEstimate},
					Category:  s.Category,
					Result:    est,
				})
			}
			return nil
		}

		step, ok := n.tree.Lookup(target)
		if !ok {
			return n.danglingRef(target)
		}

		switch st := step.(type) {
		case *domain.Conditional:
			if n.evaluate(s, st.Cond) {
				target = st.Then
			} else {
				target = st.Else
			}

		case *domain.Question:
			// Categories priced by deadline alone never ask about user
			// count; the question is skipped, not answered.
			if st.SelectionType == domain.SelectionScale &&
				st.ScaleKey == domain.ScaleKeyUsers &&
				n.resolver.ScaleTypeFor(s.Category) == pricing.ScaleTypeDeadlineOnly {
				target = st.Next
				continue
			}
			if st.System != "" && s.Category == "" {
				s.Category = st.System
			}
			s.CurrentStepID = st.ID
			n.emitStepEnter(ctx, s)
			return nil

		case *domain.Entry:
			s.CurrentStepID = st.ID
			n.emitStepEnter(ctx, s)
			return nil
		}
	}
	return n.danglingRef(target)
}

// evaluate runs a conditional predicate against the current session state
// (post-update, pre-advance).
func (n *Navigator) evaluate(s *domain.Session, cond domain.Condition) bool {
	switch cond.Kind {
	case domain.CondBase:
		return s.Base != nil && s.Base.Key == cond.Value
	case domain.CondOption:
		for _, o := range s.Options {
			if o.Key == cond.Value {
				return true
			}
		}
		return false
	case domain.CondScaleType:
		return n.resolver.ScaleTypeFor(s.Category) == cond.Value
	default:
		n.logger.Warn("unknown condition kind evaluates to false", "kind", string(cond.Kind))
		return false
	}
}
