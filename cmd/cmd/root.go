package cmd

import (
	"fmt"
	"os"

	"enrichly/internal/config"
	"enrichly/internal/llm"
	"enrichly/internal/rewrite"
	"enrichly/internal/store"

	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "enrichly",
	Short: "Enrichly expands short wiki articles with AI-generated factual detail.",
	Long: `Enrichly runs an AI-driven rewrite pipeline over wiki articles: it analyzes
an article for gaps, expands it toward a target length, optionally layers in
additional factual detail, regenerates its abstract, validates the output,
and persists the result with full version history.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.enrichly.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if _, err := config.Load(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
}

// buildRewriter assembles the store, model client, and pipeline from config.
// The caller owns the returned store's lifetime.
func buildRewriter() (*rewrite.Rewriter, *store.Store, error) {
	cfg := config.Get()

	st, err := store.NewStore(cfg.Store.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open content store: %w", err)
	}

	client, err := llm.NewClient(cfg.AI.Gemini.Model)
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	invoker := llm.NewInvoker(client, llm.InvokerOptions{
		MaxAttempts: cfg.Rewrite.MaxRetries,
		BaseDelay:   config.RetryBaseDelay(),
		CallTimeout: config.GeminiTimeout(),
	})

	opts := rewrite.Options{
		BatchSize:          cfg.Rewrite.BatchSize,
		RateLimitDelay:     config.RateLimitDelay(),
		MaxCandidateLength: cfg.Rewrite.MaxCandidateLength,
		Validation: rewrite.ValidationPolicy{
			MinGrowthFactor: cfg.Rewrite.MinGrowthFactor,
			MinSummaryChars: cfg.Rewrite.MinSummaryChars,
			MinWordCount:    cfg.Rewrite.MinWordCount,
		},
	}

	return rewrite.NewRewriter(st, invoker, opts), st, nil
}
