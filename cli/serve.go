package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"b3-dashboard/config"
	httpLayer "b3-dashboard/http"
	"b3-dashboard/scheduler"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port, _ := cmd.Flags().GetString("port"); port != "" {
				cfg.Port = port
			}
			return runServer(cmd.Context(), cfg)
		},
	}
	cmd.Flags().String("port", "", "Port to listen on (overrides PORT)")
	return cmd
}

func runServer(ctx context.Context, cfg *config.Config) error {
	a := newApp(ctx, cfg)
	defer a.Close()

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimitCapacity, cfg.RateLimitWindow)
	defer rateLimiter.Stop()

	if cfg.WarmInterval > 0 {
		warmer := scheduler.NewWarmer(a.stocks, a.fx, cfg.WarmTickers, cfg.WarmInterval)
		if err := warmer.Start(); err != nil {
			return err
		}
		defer warmer.Stop()
	}

	mux := httpLayer.NewRouter(httpLayer.Handlers{
		Investment: httpLayer.NewInvestmentHandler(a.investments),
		Stock:      httpLayer.NewStockHandler(a.stocks, a.metrics),
		FX:         httpLayer.NewFXHandler(a.fx),
		UI:         httpLayer.NewUIHandler(a.stocks, a.investments, a.fx),
	}, rateLimiter, a.metrics)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("dashboard listening", "addr", server.Addr, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		return err
	case <-quit:
		slog.Info("shutting down server")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("error during server shutdown", "error", err)
		return err
	}

	slog.Info("server exited")
	return nil
}
