package rewrite

import (
	"context"
	"time"

	"enrichly/internal/core"
	"enrichly/internal/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// RewriteBatch rewrites many articles with bounded concurrency. Ids are
// partitioned into chunks of batchSize (default from Options); within a chunk
// all rewrites run concurrently but member i starts i*RateLimitDelay late to
// spread load, and chunks are separated by twice that delay. The returned
// slice has one result per input id in input order, failures included.
func (r *Rewriter) RewriteBatch(ctx context.Context, articleIDs []string, opts core.RewriteOptions, batchSize int) []core.RewriteResult {
	if batchSize < 1 {
		batchSize = r.opts.BatchSize
	}

	jobID := uuid.NewString()
	results := make([]core.RewriteResult, len(articleIDs))

	logger.Info("Starting batch rewrite",
		"job_id", jobID,
		"article_count", len(articleIDs),
		"batch_size", batchSize)

	for start := 0; start < len(articleIDs); start += batchSize {
		end := start + batchSize
		if end > len(articleIDs) {
			end = len(articleIDs)
		}

		var g errgroup.Group
		for i := start; i < end; i++ {
			i := i
			stagger := time.Duration(i-start) * r.opts.RateLimitDelay
			g.Go(func() error {
				if stagger > 0 {
					select {
					case <-time.After(stagger):
					case <-ctx.Done():
						results[i] = cancelledResult(articleIDs[i], ctx)
						return nil
					}
				}
				results[i] = r.RewriteArticle(ctx, articleIDs[i], opts)
				return nil
			})
		}
		_ = g.Wait()

		if end < len(articleIDs) {
			select {
			case <-time.After(2 * r.opts.RateLimitDelay):
			case <-ctx.Done():
				for i := end; i < len(articleIDs); i++ {
					results[i] = cancelledResult(articleIDs[i], ctx)
				}
				logger.Warn("Batch rewrite cancelled", "job_id", jobID, "completed", end)
				return results
			}
		}
	}

	succeeded := 0
	for _, res := range results {
		if res.Success {
			succeeded++
		}
	}
	logger.Info("Batch rewrite complete",
		"job_id", jobID,
		"succeeded", succeeded,
		"failed", len(results)-succeeded)

	return results
}

func cancelledResult(articleID string, ctx context.Context) core.RewriteResult {
	return core.RewriteResult{
		ArticleID: articleID,
		Success:   false,
		Error:     ctx.Err().Error(),
	}
}
