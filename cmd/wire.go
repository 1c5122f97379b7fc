package cmd

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	accountfile "github.com/bnema/rebor-cli/internal/adapters/accounts/file"
	"github.com/bnema/rebor-cli/internal/adapters/rebor"
	"github.com/bnema/rebor-cli/internal/application"
	"github.com/bnema/rebor-cli/internal/config"
	"github.com/bnema/rebor-cli/internal/logging"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const envFile = ".env"

type app struct {
	logger *slog.Logger
	loader *accountfile.Loader
	poller *application.Poller
	now    func() time.Time
}

func wireApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	v := config.New()
	if opts.accountsPath != "" {
		v.Set(config.KeyAccountsPath, opts.accountsPath)
	}

	cfg, err := config.Load(v, config.Options{
		ConfigFile: opts.configFile,
		EnvFiles:   []string{envFile},
	})
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("configure logger: %w", err)
	}
	logger = logger.With("run_id", uuid.NewString())

	loader := accountfile.NewLoader(cfg.AccountsPath, logger)
	client := &rebor.Client{
		Endpoint:       cfg.APIEndpoint,
		Origin:         cfg.APIOrigin,
		HTTPClient:     http.DefaultClient,
		RequestTimeout: cfg.APITimeout,
		Reporter:       logger,
	}

	poller := application.NewPoller(loader, client, logger,
		application.WithBackoff(application.Backoff{Short: cfg.DelayShort, Long: cfg.DelayLong}),
	)

	return &app{
		logger: logger,
		loader: loader,
		poller: poller,
		now:    time.Now,
	}, nil
}
