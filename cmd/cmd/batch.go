package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"enrichly/internal/core"

	"github.com/spf13/cobra"
)

var (
	batchSize         int
	batchLimit        int
	batchAllStatuses  bool
	batchEnhanceFacts bool
)

var batchCmd = &cobra.Command{
	Use:   "batch [article-id...]",
	Short: "Rewrite many articles with rate-limited concurrency",
	Long: `Rewrite the given article ids in staggered, rate-limited chunks. With no
ids, candidate articles are selected from the store automatically.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rewriter, st, err := buildRewriter()
		if err != nil {
			return err
		}
		defer st.Close()

		ids := args
		if len(ids) == 0 {
			ids, err = rewriter.Candidates(batchLimit, batchAllStatuses)
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				fmt.Println("No candidate articles to rewrite.")
				return nil
			}
		}

		opts := core.RewriteOptions{
			EnhanceFactualContent: batchEnhanceFacts,
		}

		results := rewriter.RewriteBatch(context.Background(), ids, opts, batchSize)

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			return err
		}

		failed := 0
		for _, res := range results {
			if !res.Success {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d rewrites failed", failed, len(results))
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().IntVar(&batchSize, "batch-size", 0, "chunk size for concurrent rewrites (default from config)")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 10, "maximum candidates to select when no ids are given")
	batchCmd.Flags().BoolVar(&batchAllStatuses, "all-statuses", false, "consider articles regardless of editorial status")
	batchCmd.Flags().BoolVar(&batchEnhanceFacts, "enhance-facts", false, "run the factual enhancement stage")

	rootCmd.AddCommand(batchCmd)
}
