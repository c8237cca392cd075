package rewrite

import "strings"

// Validation rule messages. Callers match on these strings, so they are fixed
// even though the thresholds are policy.
const (
	errNotExpanded    = "Content not sufficiently expanded"
	errSummaryShort   = "Summary is missing or too short"
	errExpandedEmpty  = "Expanded content is empty"
	errTooFewWords    = "Expanded content appears to be too short or malformed"
)

// ValidationPolicy holds the thresholds the validator applies. The defaults
// are operating policy, not law; deployments tune them through config.
type ValidationPolicy struct {
	MinGrowthFactor float64 // Expansion must strictly exceed this multiple of the original length
	MinSummaryChars int     // Minimum trimmed summary length
	MinWordCount    int     // Minimum whitespace-delimited words in the expanded content
}

// DefaultValidationPolicy returns the standard thresholds.
func DefaultValidationPolicy() ValidationPolicy {
	return ValidationPolicy{
		MinGrowthFactor: 1.2,
		MinSummaryChars: 50,
		MinWordCount:    50,
	}
}

// ValidationResult reports whether generated output may be persisted, and if
// not, every rule it violated.
type ValidationResult struct {
	IsValid bool
	Errors  []string
}

// Validate is the gate between generation and persistence. It is pure: no
// I/O, no model calls. All rules must pass; every violated rule is reported.
func (p ValidationPolicy) Validate(originalContent, expandedContent, summary string) ValidationResult {
	var errs []string

	// Growth must strictly exceed the threshold; exactly at it still fails.
	if float64(len(expandedContent)) <= float64(len(originalContent))*p.MinGrowthFactor {
		errs = append(errs, errNotExpanded)
	}

	trimmedSummary := strings.TrimSpace(summary)
	if trimmedSummary == "" || len(trimmedSummary) < p.MinSummaryChars {
		errs = append(errs, errSummaryShort)
	}

	trimmedExpanded := strings.TrimSpace(expandedContent)
	if trimmedExpanded == "" {
		errs = append(errs, errExpandedEmpty)
	} else if len(strings.Fields(expandedContent)) < p.MinWordCount {
		errs = append(errs, errTooFewWords)
	}

	return ValidationResult{
		IsValid: len(errs) == 0,
		Errors:  errs,
	}
}
