package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/rebor-cli/internal/adapters/render/banner"
	"github.com/spf13/cobra"
)

func runLoop(cmd *cobra.Command, app *app) error {
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), banner.Render()); err != nil {
		return err
	}

	err := app.poller.Run(cmd.Context())
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		app.logger.Info("Stopping task loop", "reason", err.Error())
		return nil
	default:
		app.logger.Error("Error in main: " + err.Error())
		return err
	}
}
