package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/mitsumolabs/quotetree/internal/logging"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o-mini"

// ChatCompleter is the slice of the OpenAI client the classifier needs.
// *openai.Client satisfies it.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// wireResult is the JSON object expected inside the model reply.
type wireResult struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	Confidence   string `json:"confidence"`
}

// LLM classifies via a remote chat-completion call, falling back to keyword
// scoring on any failure. It never returns an error.
type LLM struct {
	client     ChatCompleter
	model      string
	categories []Category
	fallback   *Keyword
	logger     *slog.Logger

	// OnFallback, when set, is invoked once per classification that took
	// the fallback path. Used for observability hooks.
	OnFallback func(ctx context.Context)
}

// Option configures the LLM classifier.
type Option func(*LLM)

// WithModel overrides the chat-completion model.
func WithModel(model string) Option {
	return func(l *LLM) {
		if model != "" {
			l.model = model
		}
	}
}

// WithLogger configures a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *LLM) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLLM creates the remote classifier over the closed category list.
func NewLLM(client ChatCompleter, categories []Category, opts ...Option) *LLM {
	l := &LLM{
		client:     client,
		model:      DefaultModel,
		categories: categories,
		fallback:   NewKeyword(categories),
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// instruction builds the fixed system prompt enumerating the category enum.
func (l *LLM) instruction() string {
	var sb strings.Builder
	sb.WriteString("You classify a customer's free-text description of the business system they need into exactly one category.\n\nCategories:\n")
	for _, c := range l.categories {
		fmt.Fprintf(&sb, "- %s: %s\n", c.ID, c.Name)
	}
	sb.WriteString("\nRespond with ONLY a single JSON object (no markdown, no preamble):\n")
	sb.WriteString(`{"category_id":"<id>","category_name":"<name>","confidence":"high|medium|low"}`)
	return sb.String()
}

// Classify runs the remote path and degrades to the keyword fallback on any
// transport failure, empty reply, or unparsable payload.
func (l *LLM) Classify(ctx context.Context, text string) Result {
	if l.client == nil {
		return l.fallBack(ctx, text, "no remote client configured")
	}

	resp, err := l.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: l.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: l.instruction()},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return l.fallBack(ctx, text, err.Error())
	}
	if len(resp.Choices) == 0 {
		return l.fallBack(ctx, text, "reply contained no choices")
	}

	payload, err := ExtractJSON(resp.Choices[0].Message.Content)
	if err != nil {
		return l.fallBack(ctx, text, err.Error())
	}

	var wire wireResult
	if err := json.Unmarshal(payload, &wire); err != nil {
		return l.fallBack(ctx, text, err.Error())
	}

	switch Confidence(wire.Confidence) {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
	default:
		return l.fallBack(ctx, text, fmt.Sprintf("unknown confidence %q", wire.Confidence))
	}

	return Result{
		CategoryID:   wire.CategoryID,
		CategoryName: wire.CategoryName,
		Confidence:   Confidence(wire.Confidence),
	}
}

func (l *LLM) fallBack(ctx context.Context, text, reason string) Result {
	l.logger.Warn("remote classification unavailable, using keyword fallback", "reason", reason)
	if l.OnFallback != nil {
		l.OnFallback(ctx)
	}
	return l.fallback.Classify(ctx, text)
}
