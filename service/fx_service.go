package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"b3-dashboard/domain"
	"b3-dashboard/metrics"
	"b3-dashboard/repository"
)

const fxCacheKey = "fx:USD:BRL"

type cachedRate struct {
	Rate      decimal.Decimal `json:"rate"`
	FetchedAt time.Time       `json:"fetched_at"`
}

type FXService struct {
	source   repository.FXRateRepository
	cache    repository.CacheRepository
	ttl      time.Duration
	fallback decimal.Decimal
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewFXService(
	source repository.FXRateRepository,
	cache repository.CacheRepository,
	ttl time.Duration,
	fallback decimal.Decimal,
	m *metrics.Metrics,
) *FXService {
	if ttl <= 0 {
		ttl = DefaultFXTTL
	}
	if !fallback.IsPositive() {
		fallback = decimal.RequireFromString(FallbackUSDToBRLRate)
	}
	return &FXService{
		source:   source,
		cache:    cache,
		ttl:      ttl,
		fallback: fallback,
		metrics:  m,
		now:      time.Now,
	}
}

// USDToBRL returns the cached or freshly scraped rate. FetchedAt is the
// time of the scrape, also for cached rates. When the source fails the
// configured fallback is returned with Fallback set.
func (s *FXService) USDToBRL(ctx context.Context) domain.FXRate {
	rate := domain.FXRate{
		Base:   "USD",
		Quote:  "BRL",
		Source: s.source.Source(),
	}

	if raw, ok := s.cache.Get(ctx, fxCacheKey); ok {
		var cached cachedRate
		if err := json.Unmarshal([]byte(raw), &cached); err == nil && cached.Rate.IsPositive() {
			rate.Rate = cached.Rate
			rate.FetchedAt = cached.FetchedAt
			return rate
		}
		slog.Warn("discarding unreadable cache entry", "key", fxCacheKey)
	}

	scraped, err := s.source.USDToBRL(ctx)
	rate.FetchedAt = s.now()
	if err != nil {
		slog.Warn("using fallback FX rate", "error", err, "fallback", s.fallback.String())
		s.metrics.IncFXFallback()
		rate.Rate = s.fallback
		rate.Fallback = true
		return rate
	}

	payload, err := json.Marshal(cachedRate{Rate: scraped, FetchedAt: rate.FetchedAt})
	if err == nil {
		err = s.cache.Set(ctx, fxCacheKey, string(payload), s.ttl)
	}
	if err != nil {
		slog.Warn("failed to cache FX rate", "error", err)
	}
	rate.Rate = scraped
	return rate
}

// ToUSD converts a BRL amount using the current rate.
func (s *FXService) ToUSD(ctx context.Context, brl float64) (float64, domain.FXRate) {
	rate := s.USDToBRL(ctx)
	if !rate.Rate.IsPositive() {
		return 0, rate
	}
	usd := decimal.NewFromFloat(brl).Div(rate.Rate).Round(2)
	return usd.InexactFloat64(), rate
}
