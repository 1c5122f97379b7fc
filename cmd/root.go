package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func Execute() error {
	return ExecuteContext(context.Background())
}

func ExecuteContext(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

type rootOptions struct {
	configFile   string
	accountsPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "rebor",
		Short:         "Rebor daily task completer",
		Long:          "rebor replays captured Telegram web-app data for every account in the accounts file and keeps completing the Rebor daily tasks until interrupted.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := wireApp(cmd, opts)
			if err != nil {
				return err
			}
			return runLoop(cmd, app)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Config file (default: ./rebor.toml when present)")
	rootCmd.PersistentFlags().StringVar(&opts.accountsPath, "accounts", "", "Accounts file, one web-app data line per account (default: data.txt)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newAccountsCmd(opts),
	)

	return rootCmd
}
