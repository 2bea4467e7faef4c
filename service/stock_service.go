package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"b3-dashboard/domain"
	"b3-dashboard/metrics"
	"b3-dashboard/repository"
)

var validPeriods = map[string]bool{
	"1d": true, "5d": true, "1mo": true, "3mo": true, "6mo": true,
	"1y": true, "2y": true, "5y": true, "10y": true, "ytd": true, "max": true,
}

var validIntervals = map[string]bool{
	"1m": true, "2m": true, "5m": true, "15m": true, "30m": true, "60m": true,
	"90m": true, "1h": true, "1d": true, "5d": true, "1wk": true, "1mo": true, "3mo": true,
}

// NormalizeTicker upper-cases the ticker and appends the B3 suffix when
// missing: "petr4" -> "PETR4.SA".
func NormalizeTicker(ticker string) string {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	if strings.HasSuffix(t, domain.B3Suffix) {
		return t
	}
	return t + domain.B3Suffix
}

// ParseTickers splits a comma-separated ticker list, dropping blanks.
func ParseTickers(raw string) []string {
	parts := strings.Split(raw, ",")
	tickers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tickers = append(tickers, p)
		}
	}
	return tickers
}

type StockService struct {
	provider repository.MarketDataRepository
	cache    repository.CacheRepository
	ttl      time.Duration
	metrics  *metrics.Metrics

	defaultPeriod   string
	defaultInterval string
}

func NewStockService(
	provider repository.MarketDataRepository,
	cache repository.CacheRepository,
	ttl time.Duration,
	m *metrics.Metrics,
) *StockService {
	if ttl <= 0 {
		ttl = DefaultMarketDataTTL
	}
	return &StockService{
		provider:        provider,
		cache:           cache,
		ttl:             ttl,
		metrics:         m,
		defaultPeriod:   DefaultPeriod,
		defaultInterval: DefaultInterval,
	}
}

// WithDefaults overrides the period and interval used when a query leaves
// them empty. Unsupported values are ignored.
func (s *StockService) WithDefaults(period, interval string) *StockService {
	if validPeriods[period] {
		s.defaultPeriod = period
	}
	if validIntervals[interval] {
		s.defaultInterval = interval
	}
	return s
}

func (s *StockService) Defaults() (period, interval string) {
	return s.defaultPeriod, s.defaultInterval
}

// GetStockData returns OHLCV bars for every ticker, sorted by ticker and
// date. Tickers that fail or have no data are skipped, so the result may be
// empty but is never nil.
func (s *StockService) GetStockData(ctx context.Context, tickers []string, period, interval string) ([]domain.Bar, error) {
	if len(tickers) == 0 {
		return nil, ErrNoTickers
	}
	if len(tickers) > MaxTickersPerRequest {
		return nil, fmt.Errorf("%w: at most %d per request", ErrTooManyTickers, MaxTickersPerRequest)
	}
	if period == "" {
		period = s.defaultPeriod
	}
	if interval == "" {
		interval = s.defaultInterval
	}
	if !validPeriods[period] {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}
	if !validIntervals[interval] {
		return nil, fmt.Errorf("%w: %q", ErrInvalidInterval, interval)
	}

	seen := make(map[string]bool, len(tickers))
	bars := make([]domain.Bar, 0)
	for _, raw := range tickers {
		ticker := NormalizeTicker(raw)
		if seen[ticker] {
			continue
		}
		seen[ticker] = true

		history, err := s.history(ctx, ticker, period, interval)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			slog.Warn("failed to fetch stock data", "ticker", ticker, "error", err)
			s.metrics.IncMarketDataFetch("error")
			continue
		}
		if len(history) == 0 {
			s.metrics.IncMarketDataFetch("empty")
			continue
		}
		bars = append(bars, history...)
	}

	sort.SliceStable(bars, func(i, j int) bool {
		if bars[i].Ticker != bars[j].Ticker {
			return bars[i].Ticker < bars[j].Ticker
		}
		return bars[i].Date.Before(bars[j].Date)
	})
	return bars, nil
}

func (s *StockService) history(ctx context.Context, ticker, period, interval string) ([]domain.Bar, error) {
	key := fmt.Sprintf("bars:%s:%s:%s", ticker, period, interval)

	if raw, ok := s.cache.Get(ctx, key); ok {
		var cached []domain.Bar
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			s.metrics.IncMarketDataFetch("hit")
			return cached, nil
		}
		slog.Warn("discarding unreadable cache entry", "key", key)
	}

	bars, err := s.provider.History(ctx, ticker, period, interval)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return bars, nil
	}
	s.metrics.IncMarketDataFetch("fetched")

	if payload, err := json.Marshal(bars); err == nil {
		if err := s.cache.Set(ctx, key, string(payload), s.ttl); err != nil {
			slog.Warn("failed to cache stock data", "ticker", ticker, "error", err)
		}
	}
	return bars, nil
}
