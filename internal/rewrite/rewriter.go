package rewrite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"enrichly/internal/core"
	"enrichly/internal/llm"
	"enrichly/internal/logger"
)

// ContentStore is the persistence surface the pipeline needs. *store.Store
// satisfies it; tests may substitute their own.
type ContentStore interface {
	GetArticle(id string) (*core.Article, error)
	SaveRewrite(id, content, summary string) (int, error)
	QueryCandidates(limit int, includeAllStatuses bool) ([]core.CandidateArticle, error)
	LockArticle(id string) (unlock func())
}

// Options configures pipeline-level behavior.
type Options struct {
	BatchSize          int               // Default chunk size for batch rewrites
	RateLimitDelay     time.Duration     // Stagger between chunk members; chunks pause twice this
	MaxCandidateLength int               // Articles at or above this length are not candidates
	Validation         ValidationPolicy  // Thresholds for the pre-persistence gate
}

// DefaultOptions returns the standard pipeline configuration.
func DefaultOptions() Options {
	return Options{
		BatchSize:          5,
		RateLimitDelay:     time.Second,
		MaxCandidateLength: 2000,
		Validation:         DefaultValidationPolicy(),
	}
}

// Rewriter sequences the generation stages for one article and coordinates
// batches across many. It is the public entry point of the pipeline: its
// methods never panic or return errors for individual articles; every
// outcome is a RewriteResult.
type Rewriter struct {
	store      ContentStore
	analyzer   *Analyzer
	expander   *Expander
	enhancer   *Enhancer
	summarizer *Summarizer
	assessor   *Assessor
	opts       Options
}

// NewRewriter wires the pipeline around a content store and a model invoker.
func NewRewriter(cs ContentStore, invoker *llm.Invoker, opts Options) *Rewriter {
	if opts.BatchSize < 1 {
		opts.BatchSize = 5
	}
	if opts.RateLimitDelay <= 0 {
		opts.RateLimitDelay = time.Second
	}
	if opts.MaxCandidateLength < 1 {
		opts.MaxCandidateLength = 2000
	}
	return &Rewriter{
		store:      cs,
		analyzer:   NewAnalyzer(invoker),
		expander:   NewExpander(invoker),
		enhancer:   NewEnhancer(invoker),
		summarizer: NewSummarizer(invoker),
		assessor:   NewAssessor(invoker),
		opts:       opts,
	}
}

// RewriteArticle runs the full pipeline for one article:
// fetch, analyze, expand, enhance (opt-in), summarize, validate, then either
// assess and persist or return a failure result with the store untouched.
func (r *Rewriter) RewriteArticle(ctx context.Context, articleID string, opts core.RewriteOptions) (result core.RewriteResult) {
	result = core.RewriteResult{ArticleID: articleID}

	defer func() {
		if rec := recover(); rec != nil {
			result.Success = false
			result.Error = fmt.Sprintf("rewrite panicked: %v", rec)
			logger.Error("Rewrite panicked", nil, "article_id", articleID, "panic", rec)
		}
	}()

	fail := func(err error) core.RewriteResult {
		logger.Error("Article rewrite failed", err, "article_id", articleID)
		result.Success = false
		result.Error = err.Error()
		return result
	}

	// Serialize concurrent rewrites of the same article so version numbers
	// stay monotonic and updates are not lost.
	unlock := r.store.LockArticle(articleID)
	defer unlock()

	article, err := r.store.GetArticle(articleID)
	if err != nil {
		return fail(fmt.Errorf("failed to fetch article: %w", err))
	}

	original := article.Content
	result.OriginalLength = len(original)

	logger.Info("Starting article rewrite",
		"article_id", articleID,
		"title", article.Title,
		"original_length", result.OriginalLength)

	analysis, err := r.analyzer.Analyze(ctx, article.Title, original, opts)
	if err != nil {
		return fail(err)
	}
	result.FactualAdditions = analysis.SuggestedAdditions

	expanded, expanderFellBack, err := r.expander.Expand(ctx, article.Title, original, analysis, opts)
	if err != nil {
		return fail(err)
	}
	result.ExpanderFellBack = expanderFellBack

	enhanced, enhancerFellBack, err := r.enhancer.Enhance(ctx, article.Title, expanded, opts)
	if err != nil {
		return fail(err)
	}
	result.EnhancerFellBack = enhancerFellBack

	summary, err := r.summarizer.Summarize(ctx, article.Title, enhanced)
	if err != nil {
		return fail(err)
	}

	validation := r.opts.Validation.Validate(original, enhanced, summary)
	if !validation.IsValid {
		return fail(fmt.Errorf("content validation failed: %s", strings.Join(validation.Errors, "; ")))
	}

	result.QualityScore = r.assessor.Assess(ctx, enhanced)

	version, err := r.store.SaveRewrite(articleID, enhanced, summary)
	if err != nil {
		return fail(fmt.Errorf("failed to persist rewrite: %w", err))
	}

	result.NewLength = len(enhanced)
	if result.OriginalLength > 0 {
		result.ExpansionFactor = float64(result.NewLength) / float64(result.OriginalLength)
	}
	result.Success = true

	logger.Info("Article rewrite complete",
		"article_id", articleID,
		"version", version,
		"new_length", result.NewLength,
		"expansion_factor", result.ExpansionFactor,
		"quality_score", result.QualityScore)

	return result
}

// Candidates returns up to limit article ids suitable for rewriting.
func (r *Rewriter) Candidates(limit int, includeAllStatuses bool) ([]string, error) {
	return SelectCandidates(r.store, limit, includeAllStatuses, r.opts.MaxCandidateLength)
}

// SelectCandidates queries articles suitable for rewriting: non-empty
// content, safe status combinations unless includeAllStatuses,
// oldest-updated-first, and short enough to be worth expanding. The length
// filter runs after the bounded fetch, so fewer than limit ids may return.
func SelectCandidates(cs ContentStore, limit int, includeAllStatuses bool, maxLength int) ([]string, error) {
	rows, err := cs.QueryCandidates(limit, includeAllStatuses)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if len(row.Content) >= maxLength {
			continue
		}
		ids = append(ids, row.ID)
		if len(ids) == limit {
			break
		}
	}

	return ids, nil
}
