package rewrite

import (
	"fmt"
	"strings"

	"enrichly/internal/core"
)

// BuildGapAnalysisPrompt creates the prompt for the gap analyzer. The model
// is asked for exactly four categories, returned as structured JSON.
func BuildGapAnalysisPrompt(title, content string, focusAreas []string) string {
	var prompt strings.Builder

	prompt.WriteString("You are an encyclopedia editor reviewing a short article for gaps.\n\n")
	prompt.WriteString(fmt.Sprintf("**Title:** %s\n\n", title))
	prompt.WriteString(fmt.Sprintf("**Current content:**\n%s\n\n", content))

	if len(focusAreas) > 0 {
		prompt.WriteString(fmt.Sprintf("Give extra weight to these focus areas: %s\n\n", strings.Join(focusAreas, ", ")))
	}

	prompt.WriteString("Identify improvement opportunities in exactly these four categories:\n")
	prompt.WriteString("1. gaps: missing historical context the article should cover\n")
	prompt.WriteString("2. suggested_additions: key facts, dates, and figures worth adding\n")
	prompt.WriteString("3. focus_areas: aspects of cultural significance to develop\n")
	prompt.WriteString("4. factual_opportunities: related context that would enrich the article\n\n")
	prompt.WriteString("Respond with a JSON object containing those four string arrays.")

	return prompt.String()
}

// BuildExpansionPrompt creates the prompt for the content expander.
func BuildExpansionPrompt(title, content string, analysis core.GapAnalysis, targetLength int, preserveStructure bool) string {
	var prompt strings.Builder

	prompt.WriteString("Expand the following encyclopedia article into a longer, factually richer version.\n\n")
	prompt.WriteString(fmt.Sprintf("**Title:** %s\n\n", title))
	prompt.WriteString(fmt.Sprintf("**Original content:**\n%s\n\n", content))

	if len(analysis.Gaps) > 0 {
		prompt.WriteString(fmt.Sprintf("**Gaps to fill:**\n- %s\n\n", strings.Join(analysis.Gaps, "\n- ")))
	}
	if len(analysis.SuggestedAdditions) > 0 {
		prompt.WriteString(fmt.Sprintf("**Facts to add:**\n- %s\n\n", strings.Join(analysis.SuggestedAdditions, "\n- ")))
	}
	if len(analysis.FocusAreas) > 0 {
		prompt.WriteString(fmt.Sprintf("**Areas to develop:**\n- %s\n\n", strings.Join(analysis.FocusAreas, "\n- ")))
	}

	prompt.WriteString("Requirements:\n")
	prompt.WriteString(fmt.Sprintf("1. Target roughly %d characters of prose\n", targetLength))
	prompt.WriteString("2. Add specific dates, names, and verifiable facts\n")
	if preserveStructure {
		prompt.WriteString("3. Preserve the original section structure and ordering\n")
	} else {
		prompt.WriteString("3. Keep the original structure where it helps readability\n")
	}
	prompt.WriteString("4. Write entirely in your own words; never copy sentences verbatim from external sources\n\n")
	prompt.WriteString("Return only the expanded article body, no commentary.")

	return prompt.String()
}

// BuildEnhancementPrompt creates the prompt for the factual enhancer.
func BuildEnhancementPrompt(title, content string) string {
	var prompt strings.Builder

	prompt.WriteString("Enrich the following encyclopedia article with additional factual detail.\n\n")
	prompt.WriteString(fmt.Sprintf("**Title:** %s\n\n", title))
	prompt.WriteString(fmt.Sprintf("**Content:**\n%s\n\n", content))

	prompt.WriteString("Integrate the following into the existing text, not as an appendix:\n")
	prompt.WriteString("1. Relevant statistics and measurable figures\n")
	prompt.WriteString("2. Timeline detail for the events covered\n")
	prompt.WriteString("3. Social and cultural impact\n")
	prompt.WriteString("4. Contemporary relevance framing\n\n")
	prompt.WriteString("Return only the enhanced article body, no commentary.")

	return prompt.String()
}

// BuildSummaryPrompt creates the prompt for the summary generator.
func BuildSummaryPrompt(title, content string) string {
	var prompt strings.Builder

	prompt.WriteString("Write a new abstract for the following encyclopedia article.\n\n")
	prompt.WriteString(fmt.Sprintf("**Title:** %s\n\n", title))
	prompt.WriteString(fmt.Sprintf("**Content:**\n%s\n\n", content))

	prompt.WriteString("The abstract should be 200-300 words, cover the article's main topics, ")
	prompt.WriteString("and stand alone as an introduction for readers who stop there.\n")
	prompt.WriteString("Return only the abstract text.")

	return prompt.String()
}

// BuildQualityPrompt creates the prompt for the quality assessor.
func BuildQualityPrompt(content string) string {
	var prompt strings.Builder

	prompt.WriteString("Rate the quality of the following encyclopedia article on a scale of 1 to 10, ")
	prompt.WriteString("considering factual density, clarity, and completeness.\n\n")
	prompt.WriteString(fmt.Sprintf("**Content:**\n%s\n\n", content))
	prompt.WriteString("Respond with the number only.")

	return prompt.String()
}
