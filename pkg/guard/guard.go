// Package guard decides whether a query belongs to the space biology domain
// before any retrieval or generation money is spent. It is a UX nicety, not
// a security boundary: every failure path accepts the query (fail-open), so
// an unrelated backend outage can never block usage.
package guard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"spacebio-be/internal/pkg/logger"
	"spacebio-be/pkg/llm"
)

// RedirectMessage is the fixed, non-generated copy returned on rejection.
const RedirectMessage = "I'm specialized in space biology and microgravity research. " +
	"Your question seems outside this domain. I focus on topics like: " +
	"astronaut health, microgravity effects on organisms, ISS experiments, " +
	"radiation biology, and countermeasures for spaceflight. " +
	"Could you rephrase your question to relate to space biology research?"

// classifierTimeout bounds the single classifier call; the keyword tier is
// free and most real traffic never reaches the classifier.
const classifierTimeout = 10 * time.Second

// spaceBiologyKeywords is the fixed vocabulary of the keyword tier.
var spaceBiologyKeywords = []string{
	"space", "microgravity", "astronaut", "iss", "nasa", "orbit",
	"radiation", "cosmic", "weightless", "spaceflight", "mars",
	"moon", "bone", "muscle", "cell", "biology", "gravity",
	"adaptation", "countermeasure", "mission", "research",
	"experiment", "station", "crew", "physiology", "health",
	"medical", "science", "tissue", "organism", "gene", "protein",
	"immune", "cardiovascular", "osteoporosis", "atrophy",
}

// ContextGuard validates queries in two tiers: a zero-cost keyword check and
// a single low-token YES/NO classification on a fast backend.
type ContextGuard struct {
	classifier llm.LLMProvider
	logger     logger.ILogger
}

func NewContextGuard(classifier llm.LLMProvider, log logger.ILogger) *ContextGuard {
	return &ContextGuard{
		classifier: classifier,
		logger:     log,
	}
}

// QuickKeywordCheck reports whether the query contains any domain keyword.
// Case-insensitive substring match; no network involved.
func (g *ContextGuard) QuickKeywordCheck(query string) bool {
	queryLower := strings.ToLower(query)
	for _, keyword := range spaceBiologyKeywords {
		if strings.Contains(queryLower, keyword) {
			return true
		}
	}
	return false
}

// Validate returns (accepted, redirect). An accepted query carries an empty
// redirect; a rejected one carries RedirectMessage. Classifier errors and
// timeouts accept; an answer that reaches us but lacks "YES" rejects.
func (g *ContextGuard) Validate(ctx context.Context, query string) (bool, string) {
	if g.QuickKeywordCheck(query) {
		return true, ""
	}

	relevant, err := g.classifyQuery(ctx, query)
	if err != nil {
		g.logger.Warn("guard", "classification failed, allowing query", map[string]interface{}{
			"error": err.Error(),
		})
		return true, ""
	}

	if relevant {
		return true, ""
	}
	return false, RedirectMessage
}

func (g *ContextGuard) classifyQuery(ctx context.Context, query string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, classifierTimeout)
	defer cancel()

	answer, err := g.classifier.Generate(ctx, buildClassificationPrompt(query),
		llm.WithMaxTokens(5),
		llm.WithTemperature(0.1),
	)
	if err != nil {
		return false, err
	}

	return strings.Contains(strings.ToUpper(answer), "YES"), nil
}

func buildClassificationPrompt(query string) string {
	return fmt.Sprintf(`You are a classifier for a space biology research platform.

Determine if this query is relevant to space biology, microgravity research, astronaut health,
ISS experiments, or NASA-related biological/medical research.

Query: %q

Respond with ONLY "YES" if relevant to space biology/research, or "NO" if completely unrelated.
Examples of relevant topics: microgravity effects, bone loss in space, muscle atrophy,
radiation biology, plant growth in space, cell biology, countermeasures, astronaut health.

Examples of irrelevant topics: making money, cooking recipes, sports, general news,
entertainment, fashion, generic business advice (unless space-industry related).

Answer:`, query)
}
