package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"enrichly/internal/config"
	"enrichly/internal/server"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the rewrite API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		rewriter, st, err := buildRewriter()
		if err != nil {
			return err
		}
		defer st.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := server.New(rewriter, config.GetServer())
		return srv.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
