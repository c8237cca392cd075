package rewrite

import (
	"context"
	"encoding/json"
	"fmt"

	"enrichly/internal/core"
	"enrichly/internal/llm"

	"google.golang.org/genai"
)

// gapAnalysisSchema returns the response schema enforcing the four-category
// JSON shape the analyzer expects.
func gapAnalysisSchema() *genai.Schema {
	stringArray := func(description string) *genai.Schema {
		return &genai.Schema{
			Type:        genai.TypeArray,
			Description: description,
			Items:       &genai.Schema{Type: genai.TypeString},
		}
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"gaps":                  stringArray("Missing historical context the article should cover"),
			"suggested_additions":   stringArray("Key facts, dates, and figures worth adding"),
			"focus_areas":           stringArray("Aspects of cultural significance to develop"),
			"factual_opportunities": stringArray("Related context that would enrich the article"),
		},
		Required: []string{"gaps", "suggested_additions", "focus_areas", "factual_opportunities"},
	}
}

// Analyzer produces a structured improvement plan for an article. Parse
// failures propagate: a malformed plan aborts that article's rewrite rather
// than silently expanding without direction.
type Analyzer struct {
	invoker *llm.Invoker
}

// NewAnalyzer creates a gap analyzer backed by the given invoker.
func NewAnalyzer(invoker *llm.Invoker) *Analyzer {
	return &Analyzer{invoker: invoker}
}

// Analyze requests and parses a GapAnalysis for the article.
func (a *Analyzer) Analyze(ctx context.Context, title, content string, opts core.RewriteOptions) (core.GapAnalysis, error) {
	prompt := BuildGapAnalysisPrompt(title, content, opts.FocusAreas)

	response, err := a.invoker.Invoke(ctx, prompt, llm.TextGenerationOptions{
		ResponseSchema: gapAnalysisSchema(),
		Temperature:    0.3,
	})
	if err != nil {
		return core.GapAnalysis{}, fmt.Errorf("gap analysis failed: %w", err)
	}

	var analysis core.GapAnalysis
	if err := json.Unmarshal([]byte(response), &analysis); err != nil {
		return core.GapAnalysis{}, fmt.Errorf("failed to parse gap analysis JSON: %w", err)
	}

	return analysis, nil
}
