package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/typecast/internal/analysis"
	"github.com/MikeSquared-Agency/typecast/internal/api"
	"github.com/MikeSquared-Agency/typecast/internal/chart"
	"github.com/MikeSquared-Agency/typecast/internal/config"
	"github.com/MikeSquared-Agency/typecast/internal/hermes"
	"github.com/MikeSquared-Agency/typecast/internal/router"
	"github.com/MikeSquared-Agency/typecast/internal/session"
	"github.com/MikeSquared-Agency/typecast/internal/store"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the session HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().IntVar(&cfg.Port, "port", cfg.Port, "HTTP listen port")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	slog.Info("typecast starting", "port", cfg.Port, "backend", cfg.Backend, "model", cfg.Model)

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	completer, err := newCompleter(cfg)
	if err != nil {
		return err
	}

	// Session store: Postgres when configured, otherwise a bounded in-memory LRU.
	var sessions session.Store
	if cfg.DatabaseURL != "" {
		db, err := store.New(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			return err
		}
		defer db.Close()
		sessions = db
		slog.Info("database connected")
	} else {
		mem, err := session.NewMemoryStore(cfg.MaxSessions, slog.Default())
		if err != nil {
			return err
		}
		sessions = mem
		slog.Info("using in-memory sessions", "max_sessions", cfg.MaxSessions)
	}

	// NATS/Hermes is optional; events are dropped without it.
	var events session.Publisher
	if cfg.NatsURL != "" {
		hermesClient, err := hermes.NewClient(ctx, cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			return err
		}
		defer hermesClient.Close()
		events = hermesClient
		slog.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		slog.Warn("NATS not configured, running without events")
	}

	logger := slog.Default()
	svc := session.NewService(
		analysis.New(completer, logger),
		router.New(completer, chart.PlotlyRenderer{}, logger),
		events,
		logger,
	)
	srv := api.NewServer(cfg.Port, session.NewManager(sessions, svc), logger)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	slog.Info("typecast ready", "port", cfg.Port)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		slog.Error("HTTP server error", "error", err)
		return err
	}

	slog.Info("shutting down")
	shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP shutdown", "error", err)
	}
	slog.Info("typecast stopped")
	return nil
}

