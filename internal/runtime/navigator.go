// Package runtime implements the Navigator: the state machine that moves an
// estimation session through the decision tree in response to user actions.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mitsumolabs/quotetree/internal/logging"
	"github.com/mitsumolabs/quotetree/pkg/classify"
	"github.com/mitsumolabs/quotetree/pkg/config"
	"github.com/mitsumolabs/quotetree/pkg/domain"
	"github.com/mitsumolabs/quotetree/pkg/pricing"
)

// maxResolveHops caps chained conditional resolution. Exceeding it means the
// tree contains a cycle, which is treated like a dangling reference.
const maxResolveHops = 64

// Navigator advances sessions through the decision tree, consulting the
// classifier for free-text category resolution and the calculator once the
// terminal step is reached.
type Navigator struct {
	tree       *domain.Tree
	book       *config.PriceBook
	resolver   *pricing.Resolver
	calc       *pricing.Calculator
	classifier classify.Classifier
	logger     *slog.Logger
	hooks      domain.LifecycleHooks

	// strict makes dangling step references hard errors. Lenient mode (the
	// production default) logs and leaves the session where it is.
	strict bool
}

// Option configures the Navigator.
type Option func(*Navigator)

// WithClassifier injects the free-text category classifier. Without one,
// free-text input always resets to the entry step.
func WithClassifier(c classify.Classifier) Option {
	return func(n *Navigator) { n.classifier = c }
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Navigator) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(n *Navigator) { n.hooks = hooks }
}

// WithStrict makes configuration defects (unresolvable successor ids) fail
// loudly instead of degrading to a no-op. Intended for development.
func WithStrict(strict bool) Option {
	return func(n *Navigator) { n.strict = strict }
}

// NewNavigator creates a Navigator over the loaded configuration.
func NewNavigator(cfg *config.Config, opts ...Option) *Navigator {
	resolver := pricing.NewResolver(cfg.Rules)
	n := &Navigator{
		tree:     cfg.Tree,
		book:     cfg.Book,
		resolver: resolver,
		calc:     pricing.NewCalculator(cfg.Book, resolver),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Start creates a fresh session positioned at the entry step.
func (n *Navigator) Start(ctx context.Context) *domain.Session {
	s := domain.NewSession(n.tree.EntryPoint)
	n.emitStepEnter(ctx, s)
	return s
}

// Navigate applies a single user action. The input session is never
// mutated; the returned session carries the new state (and, on back, the
// restored snapshot).
func (n *Navigator) Navigate(ctx context.Context, s *domain.Session, action domain.Action) (*domain.Session, error) {
	next := s.Clone()

	switch action.Type {
	case domain.ActionBack:
		// A no-op when history is empty; hosts disable the control then.
		next.Undo()
		return next, nil

	case domain.ActionRestart:
		fresh := n.Start(ctx)
		fresh.Generation = s.Generation + 1
		return fresh, nil

	case domain.ActionConfirm:
		return next, n.handleConfirm(ctx, next, action.Accept)

	case domain.ActionFreeText:
		return next, n.handleFreeText(ctx, next, action.Text)

	case domain.ActionChoose:
		return next, n.handleChoose(ctx, next, action.Key)

	case domain.ActionChooseMulti:
		return next, n.handleChooseMulti(ctx, next, action.Keys)

	default:
		return next, fmt.Errorf("unsupported action type: %s", action.Type)
	}
}

// handleChoose applies a single-choice answer on the current step.
func (n *Navigator) handleChoose(ctx context.Context, s *domain.Session, key string) error {
	if s.Completed {
		return nil
	}
	if s.CurrentStepID == domain.StepAIConfirm {
		return fmt.Errorf("session is awaiting classifier confirmation")
	}
	step, ok := n.tree.Lookup(s.CurrentStepID)
	if !ok {
		return n.danglingRef(s.CurrentStepID)
	}

	switch st := step.(type) {
	case *domain.Entry:
		return n.chooseEntry(ctx, s, st, key)
	case *domain.Question:
		return n.chooseSingle(ctx, s, st, key)
	default:
		return fmt.Errorf("step %q does not accept a choice", s.CurrentStepID)
	}
}

func (n *Navigator) chooseEntry(ctx context.Context, s *domain.Session, entry *domain.Entry, category string) error {
	for _, opt := range entry.Options {
		if opt.FreeText || opt.Category != category {
			continue
		}
		s.PushHistory()
		if s.Category == "" {
			s.Category = opt.Category
		}
		return n.resolve(ctx, s, opt.Next)
	}
	return fmt.Errorf("entry step has no option for category %q", category)
}

func (n *Navigator) chooseSingle(ctx context.Context, s *domain.Session, q *domain.Question, key string) error {
	opt, ok := n.findOption(s, q, key)
	if !ok {
		return fmt.Errorf("step %q has no option %q", q.ID, key)
	}

	s.PushHistory()
	n.applyAutoBase(s, q)

	// The none key declines the question without recording a selection.
	if opt.Key != "" && opt.Key != q.NoneKey {
		switch q.SelectionType {
		case domain.SelectionBase:
			sel := n.lookupBase(s.Category, opt.Key)
			s.Base = &sel
		case domain.SelectionOption:
			s.Options = append(s.Options, n.lookupOption(s.Category, opt.Key))
		case domain.SelectionCommon:
			n.setCommon(s, q.CommonSlot)
		case domain.SelectionScale:
			n.setScale(s, q.ScaleKey, opt.Key)
		}
	}

	target := opt.Next
	if target == "" {
		target = q.Next
	}
	return n.resolve(ctx, s, target)
}

// handleChooseMulti applies a multi-choice answer. A designated "none" key
// is mutually exclusive with every other pick and clears the round.
func (n *Navigator) handleChooseMulti(ctx context.Context, s *domain.Session, keys []string) error {
	if s.Completed {
		return nil
	}
	if s.CurrentStepID == domain.StepAIConfirm {
		return fmt.Errorf("session is awaiting classifier confirmation")
	}
	step, ok := n.tree.Lookup(s.CurrentStepID)
	if !ok {
		return n.danglingRef(s.CurrentStepID)
	}
	q, ok := step.(*domain.Question)
	if !ok || q.Mode != domain.SelectMulti {
		return fmt.Errorf("step %q does not accept a multi-choice", s.CurrentStepID)
	}

	s.PushHistory()
	n.applyAutoBase(s, q)

	noneChosen := false
	for _, key := range keys {
		if q.NoneKey != "" && key == q.NoneKey {
			noneChosen = true
			break
		}
	}
	if !noneChosen {
		for _, key := range keys {
			if key == "" {
				continue
			}
			if _, ok := n.findOption(s, q, key); !ok {
				return fmt.Errorf("step %q has no option %q", q.ID, key)
			}
			s.Options = append(s.Options, n.lookupOption(s.Category, key))
		}
	}

	return n.resolve(ctx, s, q.Next)
}

// findOption resolves an option key on a question, honoring per-scale-type
// option lists on tiered scale questions.
func (n *Navigator) findOption(s *domain.Session, q *domain.Question, key string) (domain.Option, bool) {
	for _, opt := range n.optionsFor(s, q) {
		if opt.Key == key {
			return opt, true
		}
	}
	return domain.Option{}, false
}

// optionsFor returns the option list presented for a question, given the
// session's resolved scale-type.
func (n *Navigator) optionsFor(s *domain.Session, q *domain.Question) []domain.Option {
	if len(q.OptionsByScaleType) > 0 {
		if opts, ok := q.OptionsByScaleType[n.resolver.ScaleTypeFor(s.Category)]; ok {
			return opts
		}
	}
	return q.Options
}

// applyAutoBase fills a nil base from the question's declared default key
// before the explicit choice is applied.
func (n *Navigator) applyAutoBase(s *domain.Session, q *domain.Question) {
	if q.AutoBase == "" || s.Base != nil {
		return
	}
	sel := n.lookupBase(s.Category, q.AutoBase)
	s.Base = &sel
}

func (n *Navigator) setCommon(s *domain.Session, slot string) {
	sel, ok := n.book.Common(s.Category, slot)
	if !ok {
		n.logger.Warn("common option missing from price book, priced at zero",
			"category", s.Category, "slot", slot)
		sel = domain.Selection{Key: slot}
	}
	switch slot {
	case domain.CommonSlotExternalLink:
		s.Common.ExternalLink = &sel
	case domain.CommonSlotDataMigration:
		s.Common.DataMigration = &sel
	default:
		n.logger.Warn("unknown common slot ignored", "slot", slot)
	}
}

func (n *Navigator) setScale(s *domain.Session, scaleKey, optionKey string) {
	switch scaleKey {
	case domain.ScaleKeyUsers:
		s.Scale.Users = optionKey
	case domain.ScaleKeyLocations:
		s.Scale.Locations = optionKey
	case domain.ScaleKeyDeadline:
		s.Scale.Deadline = optionKey
	default:
		n.logger.Warn("unknown scale key ignored", "scale_key", scaleKey)
	}
}

// lookupBase returns a base selection, priced at zero when the key is
// missing from the price book so estimation can still complete.
func (n *Navigator) lookupBase(category, key string) domain.Selection {
	if sel, ok := n.book.Base(category, key); ok {
		return sel
	}
	n.logger.Warn("base item missing from price book, priced at zero",
		"category", category, "key", key)
	return domain.Selection{Key: key}
}

// lookupOption returns an option selection, priced at zero when missing.
func (n *Navigator) lookupOption(category, key string) domain.Selection {
	if sel, ok := n.book.Option(category, key); ok {
		return sel
	}
	n.logger.Warn("option item missing from price book, priced at zero",
		"category", category, "key", key)
	return domain.Selection{Key: key}
}

func (n *Navigator) emitStepEnter(ctx context.Context, s *domain.Session) {
	if n.hooks.OnStepEnter == nil {
		return
	}
	n.hooks.OnStepEnter(ctx, &domain.StepEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStepEnter},
		StepID:    s.CurrentStepID,
		Category:  s.Category,
	})
}

// danglingRef handles an unresolvable step reference: loud in strict mode,
// a logged no-op otherwise. This is the one place a malformed tree surfaces.
func (n *Navigator) danglingRef(id string) error {
	if n.strict {
		return fmt.Errorf("%w: %q", domain.ErrStepNotFound, id)
	}
	n.logger.Error("decision tree references unknown step, ignoring transition", "step", id)
	return nil
}
