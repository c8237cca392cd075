package cmd

import (
	"fmt"
	"os"
	"time"

	"enrichly/internal/config"
	"enrichly/internal/core"
	"enrichly/internal/store"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	seedTitle     string
	seedStatus    string
	seedPublished bool
	seedFile      string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert an article into the store for local runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		if seedFile == "" {
			return fmt.Errorf("--file is required")
		}

		content, err := os.ReadFile(seedFile)
		if err != nil {
			return fmt.Errorf("failed to read content file: %w", err)
		}

		cfg := config.Get()
		st, err := store.NewStore(cfg.Store.DataDir)
		if err != nil {
			return fmt.Errorf("failed to open content store: %w", err)
		}
		defer st.Close()

		now := time.Now().UTC()
		article := core.Article{
			ID:        uuid.NewString(),
			Title:     seedTitle,
			Content:   string(content),
			Status:    seedStatus,
			Published: seedPublished,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := st.SeedArticle(article); err != nil {
			return err
		}

		fmt.Println(article.ID)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "path to a file holding the article body")
	seedCmd.Flags().StringVar(&seedTitle, "title", "Untitled", "article title")
	seedCmd.Flags().StringVar(&seedStatus, "status", core.StatusDraft, "editorial status")
	seedCmd.Flags().BoolVar(&seedPublished, "published", false, "publication flag")

	rootCmd.AddCommand(seedCmd)
}
