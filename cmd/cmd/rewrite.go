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
	rewriteTargetLength      int
	rewriteEnhanceFacts      bool
	rewritePreserveStructure bool
	rewriteFocusAreas        []string
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite <article-id>",
	Short: "Rewrite a single article through the expansion pipeline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rewriter, st, err := buildRewriter()
		if err != nil {
			return err
		}
		defer st.Close()

		opts := core.RewriteOptions{
			TargetLength:              rewriteTargetLength,
			EnhanceFactualContent:     rewriteEnhanceFacts,
			PreserveOriginalStructure: rewritePreserveStructure,
			FocusAreas:                rewriteFocusAreas,
		}

		result := rewriter.RewriteArticle(context.Background(), args[0], opts)

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			return err
		}

		if !result.Success {
			return fmt.Errorf("rewrite failed: %s", result.Error)
		}
		return nil
	},
}

func init() {
	rewriteCmd.Flags().IntVar(&rewriteTargetLength, "target-length", 0, "desired character count (default: original length x 2.5)")
	rewriteCmd.Flags().BoolVar(&rewriteEnhanceFacts, "enhance-facts", false, "run the factual enhancement stage")
	rewriteCmd.Flags().BoolVar(&rewritePreserveStructure, "preserve-structure", false, "ask the model to keep the original section structure")
	rewriteCmd.Flags().StringSliceVar(&rewriteFocusAreas, "focus", nil, "focus areas to bias the gap analysis")

	rootCmd.AddCommand(rewriteCmd)
}
