package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/johnwards/oppscore/internal/api"
	"github.com/johnwards/oppscore/internal/api/health"
	"github.com/johnwards/oppscore/internal/api/score"
	"github.com/johnwards/oppscore/internal/api/stages"
	"github.com/johnwards/oppscore/internal/config"
	"github.com/johnwards/oppscore/internal/recommend"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the scoring HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFrom(cmd.Context())

			gen, err := recommend.NewOllamaGenerator(cfg.OllamaURL, cfg.Model)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, recommend.New(gen))
		},
	}
}

// newHandler builds the full HTTP handler with middleware.
func newHandler(rec *recommend.Recommender, generationTimeout time.Duration) http.Handler {
	mux := http.NewServeMux()

	health.RegisterRoutes(mux)
	score.RegisterRoutes(mux, rec, generationTimeout)
	stages.RegisterRoutes(mux)

	mux.HandleFunc("/", api.NotFound)

	return api.Chain(mux,
		api.Recovery(),
		api.RequestID(),
		api.JSONContentType(),
		api.Logging(),
	)
}

func serve(ctx context.Context, cfg config.Config, rec *recommend.Recommender) error {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(rec, cfg.GenerationTimeout),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("starting oppscore server", "addr", cfg.Addr, "model", cfg.Model)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	return nil
}
