// Package scheduler runs background jobs for the dashboard server.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"b3-dashboard/service"
)

const warmTimeout = 2 * time.Minute

// Warmer periodically refreshes the FX rate and a watchlist of tickers so
// the cache is hot when the dashboard asks for them.
type Warmer struct {
	cron     *gocron.Scheduler
	stocks   *service.StockService
	fx       *service.FXService
	tickers  []string
	interval time.Duration
}

func NewWarmer(
	stocks *service.StockService,
	fx *service.FXService,
	tickers []string,
	interval time.Duration,
) *Warmer {
	return &Warmer{
		cron:     gocron.NewScheduler(time.UTC),
		stocks:   stocks,
		fx:       fx,
		tickers:  tickers,
		interval: interval,
	}
}

// Start schedules the warm job every interval, first run immediately.
func (w *Warmer) Start() error {
	if w.interval <= 0 {
		return errors.New("warm interval must be positive")
	}

	w.cron.SingletonModeAll()
	if _, err := w.cron.Every(w.interval).Do(w.run); err != nil {
		return fmt.Errorf("failed to schedule cache warmer: %w", err)
	}
	w.cron.StartAsync()

	slog.Info("cache warmer started", "interval", w.interval.String(), "tickers", w.tickers)
	return nil
}

func (w *Warmer) Stop() {
	w.cron.Stop()
}

func (w *Warmer) run() {
	ctx, cancel := context.WithTimeout(context.Background(), warmTimeout)
	defer cancel()
	w.Warm(ctx)
}

// Warm fetches the FX rate and the watchlist once. Failures are logged.
func (w *Warmer) Warm(ctx context.Context) {
	rate := w.fx.USDToBRL(ctx)
	slog.Debug("warmed FX rate", "rate", rate.Rate.String(), "fallback", rate.Fallback)

	if len(w.tickers) == 0 {
		return
	}
	bars, err := w.stocks.GetStockData(ctx, w.tickers, "", "")
	if err != nil {
		slog.Warn("failed to warm stock data", "error", err)
		return
	}
	slog.Debug("warmed stock data", "tickers", len(w.tickers), "bars", len(bars))
}
