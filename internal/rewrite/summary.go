package rewrite

import (
	"context"
	"fmt"
	"strings"

	"enrichly/internal/llm"
)

// Summarizer produces a new abstract for the expanded article. The 200-300
// word target is enforced only through the prompt; actual length is checked
// downstream by the validator.
type Summarizer struct {
	invoker *llm.Invoker
}

// NewSummarizer creates a summary generator backed by the given invoker.
func NewSummarizer(invoker *llm.Invoker) *Summarizer {
	return &Summarizer{invoker: invoker}
}

// Summarize generates the article abstract.
func (s *Summarizer) Summarize(ctx context.Context, title, content string) (string, error) {
	prompt := BuildSummaryPrompt(title, content)

	response, err := s.invoker.Invoke(ctx, prompt, llm.TextGenerationOptions{
		Temperature: 0.5,
	})
	if err != nil {
		return "", fmt.Errorf("summary generation failed: %w", err)
	}

	return strings.TrimSpace(response), nil
}
