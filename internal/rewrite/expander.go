package rewrite

import (
	"context"
	"fmt"
	"strings"

	"enrichly/internal/core"
	"enrichly/internal/llm"
	"enrichly/internal/logger"
)

// DefaultExpansionMultiple is applied to the original content length when the
// caller does not supply a target length.
const DefaultExpansionMultiple = 2.5

// Expander generates expanded prose from the original content and the gap
// analysis. Empty model output degrades gracefully to the original content;
// only invoker exhaustion is an error.
type Expander struct {
	invoker *llm.Invoker
}

// NewExpander creates a content expander backed by the given invoker.
func NewExpander(invoker *llm.Invoker) *Expander {
	return &Expander{invoker: invoker}
}

// TargetLength resolves the expansion target for the given options and
// original content.
func TargetLength(opts core.RewriteOptions, original string) int {
	if opts.TargetLength > 0 {
		return opts.TargetLength
	}
	return int(float64(len(original)) * DefaultExpansionMultiple)
}

// Expand returns the expanded content and whether the stage fell back to the
// original because the model produced no usable output.
func (e *Expander) Expand(ctx context.Context, title, original string, analysis core.GapAnalysis, opts core.RewriteOptions) (string, bool, error) {
	target := TargetLength(opts, original)
	prompt := BuildExpansionPrompt(title, original, analysis, target, opts.PreserveOriginalStructure)

	response, err := e.invoker.Invoke(ctx, prompt, llm.TextGenerationOptions{
		Temperature: 0.7,
	})
	if err != nil {
		return "", false, fmt.Errorf("content expansion failed: %w", err)
	}

	expanded := strings.TrimSpace(response)
	if expanded == "" {
		logger.Warn("Expander produced no output, keeping original content", "title", title)
		return original, true, nil
	}

	return expanded, false, nil
}
