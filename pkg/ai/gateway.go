// Package ai is the unified completion surface over two independent chat
// backends. Every generation mode reduces to "build a message list, pick a
// token budget, call Complete"; Complete fails over from the primary to the
// fallback backend at most once, so a call costs at most two request
// timeouts.
package ai

import (
	"context"
	"strings"
	"time"

	"spacebio-be/internal/pkg/logger"
	"spacebio-be/pkg/llm"
)

// Config carries the per-mode budgets. These are configuration, not hidden
// magic numbers; see internal/config for the environment surface.
type Config struct {
	Temperature         float64
	MaxTokensChat       int
	MaxTokensSummary    int
	MaxTokensGeneration int
}

func DefaultConfig() Config {
	return Config{
		Temperature:         0.7,
		MaxTokensChat:       1000,
		MaxTokensSummary:    500,
		MaxTokensGeneration: 3000,
	}
}

type Gateway struct {
	primary  llm.LLMProvider
	fallback llm.LLMProvider
	cfg      Config
	logger   logger.ILogger
}

func NewGateway(primary, fallback llm.LLMProvider, cfg Config, log logger.ILogger) *Gateway {
	return &Gateway{
		primary:  primary,
		fallback: fallback,
		cfg:      cfg,
		logger:   log,
	}
}

// Complete sends the message list to the primary backend and, if that fails,
// to the fallback. There is no retry within a backend and failover happens at
// most once; both failing yields *AllProvidersFailed with both causes.
func (g *Gateway) Complete(ctx context.Context, history []llm.Message, maxTokens int) (string, error) {
	opts := []llm.Option{
		llm.WithMaxTokens(maxTokens),
		llm.WithTemperature(g.cfg.Temperature),
	}

	text, primaryErr := g.primary.Chat(ctx, history, opts...)
	if primaryErr == nil {
		return text, nil
	}
	g.logger.Warn("ai", "primary provider failed, trying fallback", map[string]interface{}{
		"error": primaryErr.Error(),
	})

	text, fallbackErr := g.fallback.Chat(ctx, history, opts...)
	if fallbackErr == nil {
		return text, nil
	}
	g.logger.Error("ai", "all providers failed", map[string]interface{}{
		"primary_error":  primaryErr.Error(),
		"fallback_error": fallbackErr.Error(),
	})

	return "", &AllProvidersFailed{Primary: primaryErr, Fallback: fallbackErr}
}

// Chat runs the assistant persona over the caller's history. Context blocks,
// when present, are rendered into the system prompt; the history itself is
// appended verbatim, role-preserving.
func (g *Gateway) Chat(ctx context.Context, history []llm.Message, contextBlocks []string) (string, error) {
	messages := make([]llm.Message, 0, len(history)+1)
	messages = append(messages, llm.Message{
		Role:    "system",
		Content: buildChatSystemPrompt(contextBlocks),
	})
	messages = append(messages, history...)

	return g.Complete(ctx, messages, g.cfg.MaxTokensChat)
}

// Summarize produces a concise (~100 words) or detailed (~300 words) summary
// of a single article text. Input is capped at maxSummaryInputChars.
func (g *Gateway) Summarize(ctx context.Context, text string, summaryType SummaryType) (string, error) {
	messages := []llm.Message{
		{Role: "system", Content: buildSummarySystemPrompt(summaryType)},
		{Role: "user", Content: buildSummaryUserPrompt(text)},
	}

	return g.Complete(ctx, messages, g.cfg.MaxTokensSummary)
}

// GenerationResult is the parsed output of generate/synthesize plus call
// metadata.
type GenerationResult struct {
	Title       string
	Content     string
	SourceCount int
	Elapsed     time.Duration
}

// GenerateArticle writes a free-form article about params.Topic. Grounding
// context is optional here; up to maxContextBlocks blocks are used.
func (g *Gateway) GenerateArticle(ctx context.Context, params GenerationParams) (*GenerationResult, error) {
	params.normalize()
	start := time.Now()

	messages := []llm.Message{
		{Role: "system", Content: buildGenerationSystemPrompt(params)},
		{Role: "user", Content: buildGenerationUserPrompt(params)},
	}

	content, err := g.Complete(ctx, messages, g.cfg.MaxTokensGeneration)
	if err != nil {
		return nil, err
	}

	title, body := ParseGenerated(content)
	return &GenerationResult{
		Title:       title,
		Content:     body,
		SourceCount: len(params.Context),
		Elapsed:     time.Since(start),
	}, nil
}

// Synthesize is GenerateArticle with mandatory grounding: at least one
// context block is required, and an empty list fails fast without touching
// either backend.
func (g *Gateway) Synthesize(ctx context.Context, params GenerationParams) (*GenerationResult, error) {
	hasContext := false
	for _, c := range params.Context {
		if strings.TrimSpace(c) != "" {
			hasContext = true
			break
		}
	}
	if !hasContext {
		return nil, ErrNoGroundingContext
	}

	return g.GenerateArticle(ctx, params)
}
