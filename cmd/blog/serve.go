package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"blog/di"
	"blog/job"
	"blog/utils/otel"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server and background jobs",
	Long: `Run the web server together with the notification dispatcher and the
outbox prune job. The process stops gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	otelCfg := otel.ConfigFromEnv()
	otelShutdown, err := otel.InitProvider(ctx, otelCfg)
	if err != nil {
		slog.Warn("failed to initialize OpenTelemetry, continuing without tracing", "error", err)
		otelCfg.Enabled = false
		otelShutdown = func(context.Context) error { return nil }
	}

	if err := loadConfig(otelCfg.Enabled); err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	log.InfoContext(ctx, "configuration loaded",
		"port", cfg.Server.Port,
		"base_url", cfg.App.BaseURL,
		"mail_enabled", cfg.Mail.Enabled,
		"outbox_poll_interval", cfg.Outbox.PollInterval)

	container, err := di.NewContainer(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("initialize dependencies: %w", err)
	}
	defer func() {
		if err := container.Close(); err != nil {
			log.Warn("failed to close connections", "error", err)
		}
	}()

	e, limiter, err := newServer(cfg, container.ApplicationComponents, log, otelCfg.Enabled, otelCfg.ServiceName)
	if err != nil {
		return err
	}
	defer limiter.Stop()

	scheduler := job.NewJobScheduler(log)
	scheduler.Add(container.DispatchJob)
	scheduler.Add(container.PruneJob)
	scheduler.Start(ctx)

	address := fmt.Sprintf(":%d", cfg.Server.Port)
	log.InfoContext(ctx, "starting blog server", "address", address, "version", version)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		<-gCtx.Done()
		scheduler.Shutdown()
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return otelShutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server exited properly")
	return nil
}
