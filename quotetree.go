package quotetree

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mitsumolabs/quotetree/internal/logging"
	"github.com/mitsumolabs/quotetree/internal/runtime"
	"github.com/mitsumolabs/quotetree/pkg/classify"
	"github.com/mitsumolabs/quotetree/pkg/config"
	"github.com/mitsumolabs/quotetree/pkg/domain"
)

// Version is the engine version reported by the CLI.
const Version = "0.4.0"

// Engine is the high-level entry point for the quotetree library.
// It wraps the internal navigator and provides a simplified API for hosts.
type Engine struct {
	nav        *runtime.Navigator
	cfg        *config.Config
	classifier classify.Classifier
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	strict     bool
	Name       string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithClassifier injects the free-text category classifier. The default is
// the keyword fallback over the entry step's categories.
func WithClassifier(c classify.Classifier) Option {
	return func(e *Engine) { e.classifier = c }
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) { e.hooks = hooks }
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithStrict makes configuration defects hard errors instead of logged
// no-ops. Intended for development and CI.
func WithStrict(strict bool) Option {
	return func(e *Engine) { e.strict = strict }
}

// New initializes an Engine from the configuration directory containing
// tree.yaml, prices.yaml and rules.yaml.
func New(configDir string, opts ...Option) (*Engine, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return NewFromConfig(cfg, opts...)
}

// NewFromConfig initializes an Engine from already-parsed configuration.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Engine, error) {
	eng := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.classifier == nil {
		eng.classifier = classify.NewKeyword(Categories(cfg.Tree))
	}
	if llm, ok := eng.classifier.(*classify.LLM); ok && eng.hooks.OnFallback != nil {
		hook := eng.hooks.OnFallback
		llm.OnFallback = func(ctx context.Context) {
			hook(ctx, &domain.ClassifyEvent{
				EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventFallback},
				Fallback:  true,
			})
		}
	}

	eng.nav = runtime.NewNavigator(cfg,
		runtime.WithClassifier(eng.classifier),
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithStrict(eng.strict),
	)
	return eng, nil
}

// Start creates a fresh session positioned at the entry step.
func (e *Engine) Start(ctx context.Context) *domain.Session {
	return e.nav.Start(ctx)
}

// Render generates the actions (view) for the current session state without
// transitioning. Returns actions, isTerminal, and error.
func (e *Engine) Render(ctx context.Context, s *domain.Session) ([]domain.ActionRequest, bool, error) {
	return e.nav.Render(ctx, s)
}

// Navigate applies a user action and returns the resulting session.
func (e *Engine) Navigate(ctx context.Context, s *domain.Session, action domain.Action) (*domain.Session, error) {
	return e.nav.Navigate(ctx, s, action)
}

// Estimate returns the three-tier result of a completed session.
func (e *Engine) Estimate(s *domain.Session) (domain.Estimate, error) {
	if !s.Completed || s.Result == nil {
		return domain.Estimate{}, domain.ErrNotTerminal
	}
	return *s.Result, nil
}

// Config exposes the loaded configuration for introspection tools.
func (e *Engine) Config() *config.Config {
	return e.cfg
}

// Categories derives the closed category list (with fallback keywords) from
// the tree's entry options.
func Categories(tree *domain.Tree) []classify.Category {
	entry := tree.EntryStep()
	if entry == nil {
		return nil
	}
	var cats []classify.Category
	for _, opt := range entry.Options {
		if opt.FreeText || opt.Category == "" {
			continue
		}
		cats = append(cats, classify.Category{
			ID:       opt.Category,
			Name:     opt.Label,
			Keywords: opt.Keywords,
		})
	}
	return cats
}
