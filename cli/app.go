package cli

import (
	"context"
	"log/slog"
	"time"

	"b3-dashboard/config"
	"b3-dashboard/metrics"
	"b3-dashboard/repository"
	"b3-dashboard/service"
)

// app holds the wired services shared by every command.
type app struct {
	cfg         *config.Config
	metrics     *metrics.Metrics
	cache       repository.CacheRepository
	investments *service.InvestmentService
	stocks      *service.StockService
	fx          *service.FXService
	closers     []func() error
}

func newApp(ctx context.Context, cfg *config.Config) *app {
	m := metrics.New()
	a := &app{cfg: cfg, metrics: m}

	a.cache = a.newCache(ctx)
	a.investments = service.NewInvestmentService(
		repository.NewInvestmentRepositoryMemory(service.MaxRecentInvestments), m)
	a.stocks = service.NewStockService(
		repository.NewYahooMarketData(), a.cache, cfg.MarketDataTTL, m,
	).WithDefaults(cfg.DefaultPeriod, cfg.DefaultInterval)
	a.fx = service.NewFXService(
		repository.NewXRatesScraper(cfg.FXSourceURL, cfg.HTTPTimeout),
		a.cache, cfg.FXTTL, cfg.FXFallbackRate, m)

	return a
}

// newCache prefers Redis when configured and reachable, otherwise an
// in-process cache.
func (a *app) newCache(ctx context.Context) repository.CacheRepository {
	if a.cfg.CacheBackend != "redis" {
		return repository.NewMemoryCache()
	}

	rc := repository.NewRedisCache(a.cfg.RedisAddr, a.cfg.RedisPassword, a.cfg.RedisDB)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		slog.Warn("redis unavailable, using in-memory cache", "addr", a.cfg.RedisAddr, "error", err)
		rc.Close()
		return repository.NewMemoryCache()
	}

	slog.Info("using redis cache", "addr", a.cfg.RedisAddr)
	a.closers = append(a.closers, rc.Close)
	return rc
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			slog.Warn("failed to close resource", "error", err)
		}
	}
}
