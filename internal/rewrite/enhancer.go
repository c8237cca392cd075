package rewrite

import (
	"context"
	"fmt"
	"strings"

	"enrichly/internal/core"
	"enrichly/internal/llm"
	"enrichly/internal/logger"
)

// Enhancer optionally layers additional factual detail onto expanded content.
// The stage is opt-in: unless EnhanceFactualContent is set it passes its
// input through untouched.
type Enhancer struct {
	invoker *llm.Invoker
}

// NewEnhancer creates a factual enhancer backed by the given invoker.
func NewEnhancer(invoker *llm.Invoker) *Enhancer {
	return &Enhancer{invoker: invoker}
}

// Enhance returns the enhanced content and whether the stage fell back to its
// input because the model produced no usable output. When the stage is
// disabled the content is returned unchanged with no fallback flag.
func (e *Enhancer) Enhance(ctx context.Context, title, content string, opts core.RewriteOptions) (string, bool, error) {
	if !opts.EnhanceFactualContent {
		return content, false, nil
	}

	prompt := BuildEnhancementPrompt(title, content)

	response, err := e.invoker.Invoke(ctx, prompt, llm.TextGenerationOptions{
		Temperature: 0.7,
	})
	if err != nil {
		return "", false, fmt.Errorf("factual enhancement failed: %w", err)
	}

	enhanced := strings.TrimSpace(response)
	if enhanced == "" {
		logger.Warn("Enhancer produced no output, keeping expanded content", "title", title)
		return content, true, nil
	}

	return enhanced, false, nil
}
