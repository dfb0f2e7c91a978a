package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"

	"retention-engine/internal/handler"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the retention policy HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := buildServices(opts, os.Stdout)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), svc)
		},
	}
}

func serve(ctx context.Context, svc *services) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := handler.New(svc.engine, svc.metrics, svc.logger)
	server := &fasthttp.Server{
		Handler:            h.Handle,
		Name:               "retention-engine",
		ReadTimeout:        svc.cfg.Server.ReadTimeout,
		WriteTimeout:       svc.cfg.Server.WriteTimeout,
		MaxRequestBodySize: svc.cfg.Server.MaxRequestBodySize,
	}

	errCh := make(chan error, 1)
	go func() {
		svc.logger.Info("retention engine starting", "address", svc.cfg.Server.ListenAddress)
		errCh <- server.ListenAndServe(svc.cfg.Server.ListenAddress)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	svc.logger.Info("shutting down", "timeout", svc.cfg.Server.ShutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), svc.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
