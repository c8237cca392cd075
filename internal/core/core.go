package core

import "time"

// Article statuses as stored by the wiki. The rewrite pipeline never invents
// new statuses; it only reads these to decide whether an article is safe to touch.
const (
	StatusDraft         = "draft"
	StatusPendingReview = "pending_review"
	StatusApproved      = "approved"
	StatusPublished     = "published"
	StatusRejected      = "rejected"
)

// Article represents a wiki article as persisted by the content store.
// Articles are pre-existing entities fetched by ID; the rewrite pipeline
// mutates them only through the store's update operation.
type Article struct {
	ID        string    `json:"id"`         // Unique identifier for the article
	Title     string    `json:"title"`      // Title of the article
	Content   string    `json:"content"`    // Prose body of the article
	Summary   string    `json:"summary"`    // Abstract shown in listings
	Status    string    `json:"status"`     // Editorial status (draft, pending_review, approved, published, rejected)
	Published bool      `json:"published"`  // Whether the article is publicly visible
	CreatedAt time.Time `json:"created_at"` // Timestamp when the article was created
	UpdatedAt time.Time `json:"updated_at"` // Timestamp of the last content update
}

// Version is an immutable snapshot of an article's content taken after each
// successful rewrite. Numbers are strictly increasing per article, assigned
// as max(existing)+1; versions are never mutated or deleted.
type Version struct {
	ArticleID string    `json:"article_id"` // Owning article
	Number    int       `json:"number"`     // Sequence number, starts at 1
	Content   string    `json:"content"`    // Snapshot of the article body
	CreatedAt time.Time `json:"created_at"` // When the snapshot was taken
}

// GapAnalysis is the structured improvement plan produced by the gap analyzer.
// It is transient: consumed by the content expander within the same rewrite
// invocation and discarded afterwards (SuggestedAdditions surfaces to the
// caller through RewriteResult.FactualAdditions).
type GapAnalysis struct {
	Gaps                 []string `json:"gaps"`                  // Missing historical context
	SuggestedAdditions   []string `json:"suggested_additions"`   // Key facts, dates, and figures to add
	FocusAreas           []string `json:"focus_areas"`           // Cultural significance angles
	FactualOpportunities []string `json:"factual_opportunities"` // Related context worth covering
}

// RewriteOptions is caller-supplied configuration for a rewrite.
type RewriteOptions struct {
	TargetLength              int      `json:"target_length"`               // Desired character count; 0 means original length * 2.5
	AddSources                bool     `json:"add_sources"`                 // Reserved for citation generation, part of the contract
	EnhanceFactualContent     bool     `json:"enhance_factual_content"`     // Gates the factual enhancer stage
	PreserveOriginalStructure bool     `json:"preserve_original_structure"` // Advisory to prompt construction
	FocusAreas                []string `json:"focus_areas"`                 // Biases the gap analysis
}

// RewriteResult reports the outcome of a single article rewrite. It is always
// returned, even on failure: the failure path carries a zeroed result with
// Success=false and a human-readable Error message.
type RewriteResult struct {
	ArticleID        string   `json:"article_id"`         // Article the result refers to
	OriginalLength   int      `json:"original_length"`    // Character count before rewriting
	NewLength        int      `json:"new_length"`         // Character count after rewriting
	ExpansionFactor  float64  `json:"expansion_factor"`   // NewLength / OriginalLength
	FactualAdditions []string `json:"factual_additions"`  // Suggested additions surfaced from the gap analysis
	QualityScore     int      `json:"quality_score"`      // 1-10 assessment of the finished content
	Success          bool     `json:"success"`            // Whether the rewrite was persisted
	Error            string   `json:"error,omitempty"`    // Failure description when Success is false
	ExpanderFellBack bool     `json:"expander_fell_back"` // Expander returned the original content unchanged
	EnhancerFellBack bool     `json:"enhancer_fell_back"` // Enhancer returned its input unchanged
}

// CandidateArticle is the trimmed row shape returned by candidate queries.
type CandidateArticle struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}
