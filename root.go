package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"retention-engine/internal/config"
	"retention-engine/internal/engine"
	"retention-engine/internal/logging"
	"retention-engine/internal/metrics"
	"retention-engine/internal/refdata"
)

type rootOptions struct {
	configFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "retention-engine",
		Short: "Retention policy decision engine for court hearing outcomes",
		Long: `retention-engine selects the retention policy (type and duration) for case
material from the outcome of a court hearing: life and custodial sentences,
remittals, acquittals, not-guilty verdicts and everything else.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "config file path (defaults and environment only when empty)")

	cmd.AddCommand(newServeCmd(opts), newEvaluateCmd(opts), newVersionCmd())
	return cmd
}

// services is what every command builds from the configuration.
type services struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics.Metrics
	engine  *engine.Engine
}

func buildServices(opts *rootOptions, logOutput io.Writer) (*services, error) {
	cfg, err := config.LoadWithEnvOverrides(opts.configFile)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Logging, logOutput)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics.Namespace)
	}

	ref := refdata.New(refdata.Config{
		URL:              cfg.RefData.URL,
		Timeout:          cfg.RefData.Timeout,
		CacheTTL:         cfg.RefData.CacheTTL,
		FallbackRemitIDs: cfg.RefData.FallbackRemitResultIDs,
	}, logger)

	return &services{
		cfg:     cfg,
		logger:  logger,
		metrics: m,
		engine:  engine.New(cfg.Rules.Markers, ref, logger, m),
	}, nil
}
