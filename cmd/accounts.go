package cmd

import (
	"fmt"
	"time"

	accountsview "github.com/bnema/rebor-cli/internal/adapters/render/accounts"
	"github.com/spf13/cobra"
)

const authStaleAfter = 24 * time.Hour

func newAccountsCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List the accounts parsed from the accounts file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := wireApp(cmd, opts)
			if err != nil {
				return err
			}

			credentials := app.loader.Load(cmd.Context())
			rendered, err := accountsview.Render(credentials, format, accountsview.RenderOptions{
				Now:        app.now(),
				StaleAfter: authStaleAfter,
			})
			if err != nil {
				return fmt.Errorf("render accounts: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", accountsview.FormatText, "Output format: text, json or toml")

	return cmd
}
