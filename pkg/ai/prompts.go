package ai

import (
	"fmt"
	"strings"
)

// SummaryType selects the summary length tier.
type SummaryType string

const (
	SummaryConcise  SummaryType = "concise"  // ~100 words
	SummaryDetailed SummaryType = "detailed" // ~300 words
)

// Input caps per mode. Budgets for output tokens live in Config.
const (
	maxSummaryInputChars = 4000
	maxContextBlocks     = 3
)

// GenerationParams describe a generate/synthesize request.
type GenerationParams struct {
	Topic       string
	ArticleType string   // review, research, protocol
	Length      string   // short, medium, long
	Style       string   // academic, executive, technical
	Context     []string // rendered grounding blocks, may be empty for generate
}

var lengthWordCounts = map[string]int{
	"short":  500,
	"medium": 1000,
	"long":   2000,
}

func (p *GenerationParams) normalize() {
	if p.ArticleType == "" {
		p.ArticleType = "review"
	}
	if p.Length == "" {
		p.Length = "medium"
	}
	if p.Style == "" {
		p.Style = "academic"
	}
}

// TargetWords maps the length tier to a word count the prompt asks for.
func (p GenerationParams) TargetWords() int {
	if words, ok := lengthWordCounts[p.Length]; ok {
		return words
	}
	return lengthWordCounts["medium"]
}

func buildChatSystemPrompt(contextBlocks []string) string {
	var prompt strings.Builder

	prompt.WriteString("You are a research assistant specialized in space biology and microgravity research.\n")
	prompt.WriteString("You help users explore scientific literature about astronaut health, microgravity effects on organisms, ISS experiments, radiation biology and spaceflight countermeasures.\n")
	prompt.WriteString("Answer clearly and accurately; say so honestly when you do not know.\n")

	if len(contextBlocks) > 0 {
		prompt.WriteString("\nRelevant articles from the corpus:\n")
		for _, block := range contextBlocks {
			prompt.WriteString("\n---\n")
			prompt.WriteString(block)
			prompt.WriteString("\n")
		}
		prompt.WriteString("\nGround your answers in these articles where they apply.\n")
	}

	return prompt.String()
}

func buildSummarySystemPrompt(summaryType SummaryType) string {
	maxWords := 100
	if summaryType == SummaryDetailed {
		maxWords = 300
	}

	var prompt strings.Builder
	prompt.WriteString("You are a scientific summarizer specialized in space biology research.\n")
	prompt.WriteString(fmt.Sprintf("Create a %s summary (%d words max) that captures:\n", summaryType, maxWords))
	prompt.WriteString("- Main findings\n")
	prompt.WriteString("- Methodology highlights\n")
	prompt.WriteString("- Significance to space biology\n\n")
	prompt.WriteString("Use clear, accessible language while maintaining scientific accuracy.")
	return prompt.String()
}

func buildSummaryUserPrompt(text string) string {
	if len(text) > maxSummaryInputChars {
		text = text[:maxSummaryInputChars]
	}
	return "Summarize this scientific article:\n\n" + text
}

func buildGenerationSystemPrompt(params GenerationParams) string {
	var prompt strings.Builder
	prompt.WriteString(fmt.Sprintf("You are an expert space biology researcher writing a %s article.\n", params.ArticleType))
	prompt.WriteString(fmt.Sprintf("Write in %s style for %d words.\n\n", params.Style, params.TargetWords()))
	prompt.WriteString("Structure:\n")
	prompt.WriteString("1. Compelling title on the first line, nothing before it\n")
	prompt.WriteString("2. Abstract\n")
	prompt.WriteString("3. Introduction\n")
	prompt.WriteString("4. Main content sections\n")
	prompt.WriteString("5. Conclusion\n")
	prompt.WriteString("6. Key references, cited as (Author et al., Year)\n\n")
	prompt.WriteString("Focus on space biology aspects: microgravity effects, radiation, ISS experiments.")
	return prompt.String()
}

func buildGenerationUserPrompt(params GenerationParams) string {
	var prompt strings.Builder
	prompt.WriteString(fmt.Sprintf("Write a comprehensive %s article about: %s", params.ArticleType, params.Topic))

	blocks := params.Context
	if len(blocks) > maxContextBlocks {
		blocks = blocks[:maxContextBlocks]
	}
	if len(blocks) > 0 {
		prompt.WriteString("\n\nContext from related research:\n")
		prompt.WriteString(strings.Join(blocks, "\n"))
	}
	return prompt.String()
}
