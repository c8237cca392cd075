package rewrite

import (
	"context"
	"strconv"
	"strings"

	"enrichly/internal/llm"
	"enrichly/internal/logger"
)

// NeutralQualityScore is used when the assessor cannot produce a usable
// score. Assessment is advisory; it must never abort a rewrite.
const NeutralQualityScore = 5

// Assessor scores finished content from 1 to 10.
type Assessor struct {
	invoker *llm.Invoker
}

// NewAssessor creates a quality assessor backed by the given invoker.
func NewAssessor(invoker *llm.Invoker) *Assessor {
	return &Assessor{invoker: invoker}
}

// Assess returns an integer score clamped into [1, 10]. Invocation failures
// and unparsable responses both default to the neutral score.
func (a *Assessor) Assess(ctx context.Context, content string) int {
	prompt := BuildQualityPrompt(content)

	response, err := a.invoker.Invoke(ctx, prompt, llm.TextGenerationOptions{
		Temperature: 0.1,
		MaxTokens:   16,
	})
	if err != nil {
		logger.Warn("Quality assessment unavailable, using neutral score", "error", err.Error())
		return NeutralQualityScore
	}

	score, err := strconv.Atoi(strings.TrimSpace(response))
	if err != nil {
		logger.Warn("Quality assessment returned non-numeric response, using neutral score", "response", response)
		return NeutralQualityScore
	}

	if score < 1 {
		score = 1
	} else if score > 10 {
		score = 10
	}
	return score
}
