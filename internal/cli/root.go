package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	vaultSvc "mdvault/internal/domain/services/vault"
	"mdvault/internal/service/vault"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Global flags, bound into viper so they override env and file
	cfgFile string
	v       = viper.New()

	// Loaded configuration
	settings *Settings
)

var rootCmd = &cobra.Command{
	Use:   "vaultctl",
	Short: "Browse and reorganize a document vault's folders",
	Long: `vaultctl shows the folder tree of a document vault and lets you create,
rename and delete folders and move documents between them. Folders are
derived from each document's project path.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := LoadSettings(v, cfgFile)
		if err != nil {
			return err
		}
		settings = s
		return nil
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&cfgFile, "config", "", "config file (default is ~/.mdvault/config.yaml)")
	f.String("backend", "", "document store: http, sqlite, postgres or memory")
	f.String("url", "", "document API base URL (http backend)")
	f.String("token", "", "bearer token for the document API")
	f.String("sqlite", "", "SQLite database path (sqlite backend)")
	f.String("database-url", "", "Postgres connection URL (postgres backend)")
	f.Bool("debug", false, "log store calls to stderr")

	_ = v.BindPFlag("backend", f.Lookup("backend"))
	_ = v.BindPFlag("api_url", f.Lookup("url"))
	_ = v.BindPFlag("token", f.Lookup("token"))
	_ = v.BindPFlag("sqlite_path", f.Lookup("sqlite"))
	_ = v.BindPFlag("database_url", f.Lookup("database-url"))
	_ = v.BindPFlag("debug", f.Lookup("debug"))

	rootCmd.AddCommand(treeCmd, shellCmd, tokenCmd)
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openSession connects to the configured store and loads a session. The
// returned func releases the store.
func openSession(ctx context.Context, logger *slog.Logger) (vaultSvc.FolderSession, func(), error) {
	store, closeStore, err := OpenStore(ctx, settings, logger)
	if err != nil {
		return nil, nil, err
	}
	session := vault.NewSession(uuid.NewString(), "vaultctl", store, nil, logger)
	if err := session.Reload(ctx); err != nil {
		closeStore()
		return nil, nil, fmt.Errorf("load documents: %w", err)
	}
	return session, closeStore, nil
}
