package runtime

import (
	"context"
	"fmt"
	"time"

	"github.com/mitsumolabs/quotetree/pkg/classify"
	"github.com/mitsumolabs/quotetree/pkg/domain"
)

// handleFreeText classifies typed input from the entry step's escape option
// and routes by confidence: high advances immediately, medium asks for
// confirmation, low (or an unmatched category) resets the step pointer to
// the entry without discarding any selections.
func (n *Navigator) handleFreeText(ctx context.Context, s *domain.Session, text string) error {
	entry := n.tree.EntryStep()
	if entry == nil {
		return n.danglingRef(n.tree.EntryPoint)
	}
	if s.CurrentStepID != entry.ID {
		return fmt.Errorf("free-text input is only accepted at the entry step")
	}

	if n.classifier == nil {
		return n.resetToEntry(ctx, s, entry)
	}

	res := n.classifier.Classify(ctx, text)
	if n.hooks.OnClassify != nil {
		n.hooks.OnClassify(ctx, &domain.ClassifyEvent{
			EventBase:  domain.EventBase{Timestamp: time.Now(), Type: domain.EventClassify},
			CategoryID: res.CategoryID,
			Confidence: string(res.Confidence),
		})
	}

	opt, matched := n.entryOptionFor(entry, res.CategoryID)

	switch {
	case res.Confidence == classify.ConfidenceHigh && matched:
		s.PushHistory()
		if s.Category == "" {
			s.Category = opt.Category
		}
		return n.resolve(ctx, s, opt.Next)

	case res.Confidence == classify.ConfidenceMedium && matched:
		s.Pending = &domain.PendingTarget{
			StepID:       opt.Next,
			CategoryID:   opt.Category,
			CategoryName: res.CategoryName,
		}
		s.CurrentStepID = domain.StepAIConfirm
		n.emitStepEnter(ctx, s)
		return nil

	default:
		return n.resetToEntry(ctx, s, entry)
	}
}

// handleConfirm resolves the ai_confirm state: "yes" advances to the
// previously computed target, "no" discards it and returns to the entry.
func (n *Navigator) handleConfirm(ctx context.Context, s *domain.Session, accept bool) error {
	if s.CurrentStepID != domain.StepAIConfirm || s.Pending == nil {
		return fmt.Errorf("session is not awaiting classifier confirmation")
	}

	pending := *s.Pending
	s.Pending = nil

	if !accept {
		entry := n.tree.EntryStep()
		if entry == nil {
			return n.danglingRef(n.tree.EntryPoint)
		}
		return n.resetToEntry(ctx, s, entry)
	}

	s.PushHistory()
	if s.Category == "" {
		s.Category = pending.CategoryID
	}
	return n.resolve(ctx, s, pending.StepID)
}

// entryOptionFor finds the entry option bound to a category id.
func (n *Navigator) entryOptionFor(entry *domain.Entry, categoryID string) (domain.EntryOption, bool) {
	if categoryID == "" {
		return domain.EntryOption{}, false
	}
	for _, opt := range entry.Options {
		if !opt.FreeText && opt.Category == categoryID {
			return opt, true
		}
	}
	return domain.EntryOption{}, false
}

// resetToEntry moves only the step pointer back to the entry; selections
// made so far stay intact.
func (n *Navigator) resetToEntry(ctx context.Context, s *domain.Session, entry *domain.Entry) error {
	s.CurrentStepID = entry.ID
	n.emitStepEnter(ctx, s)
	return nil
}
