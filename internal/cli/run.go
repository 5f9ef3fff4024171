package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/sashabaranov/go-openai"

	"github.com/mitsumolabs/quotetree"
	"github.com/mitsumolabs/quotetree/pkg/classify"
	"github.com/mitsumolabs/quotetree/pkg/config"
)

// RunOptions contains all the configuration for the Run command.
type RunOptions struct {
	ConfigDir string
	Debug     bool
	Plain     bool
	Strict    bool
	Model     string
}

// Execute handles the 'run' command logic.
func Execute(opts RunOptions) error {
	logger := createLogger(opts.Debug)

	cfg, err := config.Load(opts.ConfigDir)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	engineOpts := []quotetree.Option{}
	if opts.Debug {
		engineOpts = append(engineOpts, quotetree.WithLogger(logger))
		engineOpts = append(engineOpts, quotetree.WithLifecycleHooks(createDebugHooks(logger)))
	}
	if opts.Strict {
		engineOpts = append(engineOpts, quotetree.WithStrict(true))
	}
	if classifier := buildClassifier(cfg, opts, logger); classifier != nil {
		engineOpts = append(engineOpts, quotetree.WithClassifier(classifier))
	}

	engine, err := quotetree.NewFromConfig(cfg, engineOpts...)
	if err != nil {
		return fmt.Errorf("error initializing engine: %w", err)
	}

	return RunSession(engine, opts)
}

// buildClassifier wires the remote classifier when an API key is present.
// Without a key the engine falls back to its built-in keyword matcher.
func buildClassifier(cfg *config.Config, opts RunOptions, logger *slog.Logger) classify.Classifier {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil
	}

	llmOpts := []classify.Option{classify.WithLogger(logger)}
	if opts.Model != "" {
		llmOpts = append(llmOpts, classify.WithModel(opts.Model))
	}
	return classify.NewLLM(openai.NewClient(apiKey), quotetree.Categories(cfg.Tree), llmOpts...)
}
