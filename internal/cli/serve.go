package cli

import (
	"github.com/spf13/cobra"

	"github.com/evcraddock/comment-analyzer/internal/web"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start an HTTP server exposing the analysis API over the local database.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			return runServe()
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "port to listen on (default from config)")

	return cmd
}

func runServe() error {
	database, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(database)

	srv := web.NewServer(database, cfg.ScanOptions(), cfg.Report.TopWords)
	return srv.ListenAndServe(cfg.Server.Port)
}
