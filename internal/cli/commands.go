package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"mdvault/internal/auth"
	"mdvault/internal/service/vault/formatting"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	treeFormat    string
	treeCollapsed []string

	tokenSubject string
	tokenTTL     time.Duration
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the folder tree",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, closeStore, err := openSession(cmd.Context(), newLogger(settings.Debug))
		if err != nil {
			return err
		}
		defer closeStore()

		view := session.Render(treeCollapsed)
		out := cmd.OutOrStdout()

		switch treeFormat {
		case "text":
			fmt.Fprintln(out, formatting.NewTreeRenderer().RenderView(view))
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(view)
		case "yaml":
			enc := yaml.NewEncoder(out)
			defer enc.Close()
			return enc.Encode(view)
		default:
			return fmt.Errorf("unknown format %q (text, json or yaml)", treeFormat)
		}
		return nil
	},
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Open an interactive session on the vault",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, closeStore, err := openSession(cmd.Context(), newLogger(settings.Debug))
		if err != nil {
			return err
		}
		defer closeStore()

		sh := NewShell(session, cmd.OutOrStdout())
		fmt.Fprintf(cmd.OutOrStdout(), "%d documents loaded. Type help for commands.\n", len(session.Documents()))
		return sh.Run(cmd.Context(), cmd.InOrStdin())
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an HS256 bearer token signed with jwt_secret",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if settings.JWTSecret == "" {
			return fmt.Errorf("jwt_secret is not set (MDVAULT_JWT_SECRET or config file)")
		}
		token, err := auth.IssueToken(settings.JWTSecret, tokenSubject, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	treeCmd.Flags().StringVarP(&treeFormat, "format", "f", "text", "output format: text, json or yaml")
	treeCmd.Flags().StringSliceVar(&treeCollapsed, "collapsed", nil, "folders to show collapsed")

	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "dev", "user id to put in the sub claim")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
}
