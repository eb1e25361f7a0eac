// Package cli defines the cobra command tree for cmt.
package cli

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/evcraddock/comment-analyzer/internal/config"
	"github.com/evcraddock/comment-analyzer/internal/db"
	"github.com/evcraddock/comment-analyzer/internal/logging"
)

var (
	flagFormat string
	flagDB     string
	flagConfig string
	flagServer string

	// cfg is loaded before every command runs.
	cfg config.Config
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cmt",
		Short: "Extract and measure source code comments",
		Long: "Extract comments from C, C++, Python, Java and JavaScript sources, " +
			"report comment coverage and word frequencies, and keep the results in a local store or an API server.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: loadSettings,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json|yaml)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default: ~/.config/cmt/comments.db)")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: ~/.config/cmt/config.yaml)")
	root.PersistentFlags().StringVar(&flagServer, "server", "", "API server URL; stored analyses are read from it instead of the local database")

	root.AddCommand(
		newAnalyzeCmd(),
		newListCmd(),
		newShowCmd(),
		newWordsCmd(),
		newRemoveCmd(),
		newServeCmd(),
		newVersionCmd(),
	)

	return root
}

// loadSettings reads the configuration, applies global flag overrides and
// installs the logger.
func loadSettings(cmd *cobra.Command, args []string) error {
	switch flagFormat {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid format %q: must be text, json or yaml", flagFormat)
	}

	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDB != "" {
		loaded.Database.Path = flagDB
	}
	if flagServer != "" {
		loaded.Server.URL = flagServer
	}
	cfg = loaded

	logging.Setup(cfg.Logging.Dev)
	return nil
}

// openDB opens the SQLite database named by the configuration.
func openDB() (*sql.DB, error) {
	return db.Open(cfg.Database.Path)
}

// closeDB closes the database, logging any error.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		slog.Warn("closing database", "error", err)
	}
}
