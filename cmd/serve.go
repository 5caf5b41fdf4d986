package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"crossfade/internal/auth"
	"crossfade/internal/server"
	"crossfade/internal/tasks"
)

// Serve starts the HTTP conversion service and blocks until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if host := cmd.String("host"); host != "" {
		r.config.Server.Host = host
	}
	if port := cmd.Int("port"); port != 0 {
		r.config.Server.Port = int(port)
	}

	db, err := r.openDatabase(cmd.String("db"))
	if err != nil {
		return err
	}
	defer db.Close()

	pool := tasks.NewPool(r.config.Converter.Workers, r.config.Converter.QueueSize, r.logger)
	converter, spotify := r.buildConverter(db, pool)

	oauthConfig := auth.NewSpotifyOAuthConfig(r.config.Credentials.Spotify)
	state := auth.GenerateState()

	router := server.NewBasicRouter()
	router.Use(server.LoggingMiddleware(r.logger))
	router.Handler(server.NewConversionHandler(converter, r.logger))
	router.Handler(server.NewOAuthHandler(oauthConfig, state, r.tokens, spotify, r.logger))
	router.Handler(&server.HealthHandler{})

	srv := server.NewServer(r.config.Server, router, r.logger)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		r.logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			r.logger.Error("server shutdown failed", "err", err)
		}

		// Let in-flight conversions finish before closing the database.
		pool.Shutdown()
	}

	return nil
}
