package cmd

import (
	"fmt"

	"enrichly/internal/config"
	"enrichly/internal/rewrite"
	"enrichly/internal/store"

	"github.com/spf13/cobra"
)

var (
	candidatesLimit       int
	candidatesAllStatuses bool
	candidatesStats       bool
)

var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "List articles suitable for rewriting",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()

		st, err := store.NewStore(cfg.Store.DataDir)
		if err != nil {
			return fmt.Errorf("failed to open content store: %w", err)
		}
		defer st.Close()

		ids, err := rewrite.SelectCandidates(st, candidatesLimit, candidatesAllStatuses, cfg.Rewrite.MaxCandidateLength)
		if err != nil {
			return err
		}

		if len(ids) == 0 {
			fmt.Println("No candidate articles found.")
		}
		for _, id := range ids {
			fmt.Println(id)
		}

		if candidatesStats {
			stats, err := st.GetStats()
			if err != nil {
				return err
			}
			fmt.Printf("\n%d articles, %d versions in store\n", stats.ArticleCount, stats.VersionCount)
		}
		return nil
	},
}

func init() {
	candidatesCmd.Flags().IntVar(&candidatesLimit, "limit", 10, "maximum number of candidates to list")
	candidatesCmd.Flags().BoolVar(&candidatesAllStatuses, "all-statuses", false, "consider articles regardless of editorial status")
	candidatesCmd.Flags().BoolVar(&candidatesStats, "stats", false, "print store statistics after the listing")

	rootCmd.AddCommand(candidatesCmd)
}
