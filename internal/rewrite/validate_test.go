package rewrite

import (
	"strings"
	"testing"
)

func containsError(result ValidationResult, msg string) bool {
	for _, e := range result.Errors {
		if e == msg {
			return true
		}
	}
	return false
}

func validExpanded() string {
	// Plenty of words and plenty of growth over a short original.
	return strings.TrimSpace(strings.Repeat("expanded article prose with facts ", 30))
}

func validSummary() string {
	return "This summary describes the article's topic, history, and significance in enough detail to stand alone."
}

func TestValidate_AllRulesPass(t *testing.T) {
	policy := DefaultValidationPolicy()

	result := policy.Validate("short original text", validExpanded(), validSummary())
	if !result.IsValid {
		t.Fatalf("Expected valid result, got errors: %v", result.Errors)
	}
	if len(result.Errors) != 0 {
		t.Errorf("Expected no errors, got: %v", result.Errors)
	}
}

func TestValidate_InsufficientExpansion(t *testing.T) {
	policy := DefaultValidationPolicy()
	original := strings.Repeat("a", 500)

	// Only 10% growth, but enough words that only the growth rule fails.
	expanded := strings.TrimSpace(strings.Repeat("word ", 110))

	result := policy.Validate(original, expanded, validSummary())
	if result.IsValid {
		t.Fatal("Expected invalid result")
	}
	if !containsError(result, "Content not sufficiently expanded") {
		t.Errorf("Expected expansion error, got: %v", result.Errors)
	}
	if len(result.Errors) != 1 {
		t.Errorf("Expected only the expansion rule to fail, got: %v", result.Errors)
	}
}

func TestValidate_ExpansionBoundaryIsStrict(t *testing.T) {
	policy := DefaultValidationPolicy()

	// Exactly 1.2x the original length is still invalid; the rule requires
	// strictly greater growth.
	original := strings.TrimSpace(strings.Repeat("word ", 100)) // 499 chars
	words := make([]string, 0, 120)
	for len(strings.Join(words, " ")) < int(float64(len(original))*1.2) {
		words = append(words, "word")
	}
	expanded := strings.Join(words, " ")
	for len(expanded) > int(float64(len(original))*1.2) {
		expanded = expanded[:len(expanded)-1]
	}
	if float64(len(expanded)) > float64(len(original))*1.2 {
		t.Fatalf("test setup: expanded length %d exceeds boundary", len(expanded))
	}

	result := policy.Validate(original, expanded, validSummary())
	if !containsError(result, "Content not sufficiently expanded") {
		t.Errorf("Expansion at or below the 1.2x boundary must fail, got: %v", result.Errors)
	}
}

func TestValidate_SummaryMissing(t *testing.T) {
	policy := DefaultValidationPolicy()

	for _, summary := range []string{"", "   ", "too short"} {
		result := policy.Validate("orig", validExpanded(), summary)
		if result.IsValid {
			t.Errorf("Summary %q should be rejected", summary)
		}
		if !containsError(result, "Summary is missing or too short") {
			t.Errorf("Summary %q: expected summary error, got: %v", summary, result.Errors)
		}
	}
}

func TestValidate_ExpandedEmpty(t *testing.T) {
	policy := DefaultValidationPolicy()

	result := policy.Validate("original content here", "   ", validSummary())
	if result.IsValid {
		t.Fatal("Expected invalid result")
	}
	if !containsError(result, "Expanded content is empty") {
		t.Errorf("Expected empty-content error, got: %v", result.Errors)
	}
	// The word-count rule only applies to non-empty content.
	if containsError(result, "Expanded content appears to be too short or malformed") {
		t.Errorf("Word-count rule should not fire for empty content, got: %v", result.Errors)
	}
}

func TestValidate_TooFewWords(t *testing.T) {
	policy := DefaultValidationPolicy()

	// Long enough to pass the growth rule but only a handful of words.
	expanded := strings.Repeat("aaaaaaaaaaaaaaaaaaaa", 20) + " word word"

	result := policy.Validate("short", expanded, validSummary())
	if result.IsValid {
		t.Fatal("Expected invalid result")
	}
	if !containsError(result, "Expanded content appears to be too short or malformed") {
		t.Errorf("Expected word-count error, got: %v", result.Errors)
	}
}

func TestValidate_MultipleFailuresReported(t *testing.T) {
	policy := DefaultValidationPolicy()

	result := policy.Validate("a reasonably long original text body", "", "")
	if result.IsValid {
		t.Fatal("Expected invalid result")
	}
	for _, expected := range []string{
		"Content not sufficiently expanded",
		"Summary is missing or too short",
		"Expanded content is empty",
	} {
		if !containsError(result, expected) {
			t.Errorf("Expected %q among errors, got: %v", expected, result.Errors)
		}
	}
}

func TestValidate_ConfigurableThresholds(t *testing.T) {
	policy := ValidationPolicy{
		MinGrowthFactor: 2.0,
		MinSummaryChars: 10,
		MinWordCount:    5,
	}

	original := strings.Repeat("a", 100)
	expanded := "one two three four five six " + strings.Repeat("b", 150)

	result := policy.Validate(original, expanded, "long enough summary")
	if result.IsValid {
		t.Fatal("178 chars is below 2x growth of 100; expected failure")
	}
	if !containsError(result, "Content not sufficiently expanded") {
		t.Errorf("Expected expansion error under stricter policy, got: %v", result.Errors)
	}

	expanded = "one two three four five six " + strings.Repeat("b", 400)
	result = policy.Validate(original, expanded, "long enough summary")
	if !result.IsValid {
		t.Errorf("Expected valid result under stricter policy, got: %v", result.Errors)
	}
}
