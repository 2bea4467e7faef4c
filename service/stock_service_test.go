package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"b3-dashboard/domain"
	"b3-dashboard/repository"
)

type MockMarketData struct {
	Bars  map[string][]domain.Bar
	Fail  map[string]bool
	Calls int
}

func (m *MockMarketData) History(_ context.Context, ticker, _, _ string) ([]domain.Bar, error) {
	m.Calls++
	if m.Fail[ticker] {
		return nil, errors.New("provider down")
	}
	return m.Bars[ticker], nil
}

func bar(ticker string, day int, close int64) domain.Bar {
	return domain.Bar{
		Ticker: ticker,
		Date:   time.Date(2024, time.March, day, 0, 0, 0, 0, time.UTC),
		Close:  decimal.NewFromInt(close),
	}
}

func TestNormalizeTicker(t *testing.T) {

	cases := map[string]string{
		"petr4":    "PETR4.SA",
		" vale3 ":  "VALE3.SA",
		"ITUB4.SA": "ITUB4.SA",
		"bbas3.sa": "BBAS3.SA",
	}
	for in, want := range cases {
		if got := NormalizeTicker(in); got != want {
			t.Errorf("NormalizeTicker(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestParseTickers(t *testing.T) {

	got := ParseTickers(" PETR4, ,vale3,,ITUB4 ")
	want := []string{"PETR4", "vale3", "ITUB4"}

	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestGetStockData_SortsAndSkips(t *testing.T) {

	provider := &MockMarketData{
		Bars: map[string][]domain.Bar{
			"VALE3.SA": {bar("VALE3.SA", 2, 60), bar("VALE3.SA", 1, 59)},
			"PETR4.SA": {bar("PETR4.SA", 1, 38)},
		},
		Fail: map[string]bool{"ITUB4.SA": true},
	}
	service := NewStockService(provider, repository.NewMemoryCache(), time.Minute, nil)

	bars, err := service.GetStockData(context.Background(), []string{"vale3", "ITUB4", "petr4", "XXXX3"}, "1y", "1d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bars) != 3 {
		t.Fatalf("expected 3 bars, got %d", len(bars))
	}
	if bars[0].Ticker != "PETR4.SA" {
		t.Errorf("expected PETR4.SA first, got %s", bars[0].Ticker)
	}
	if bars[1].Ticker != "VALE3.SA" || bars[1].Date.Day() != 1 || bars[2].Date.Day() != 2 {
		t.Errorf("expected VALE3.SA bars in date order, got %v then %v", bars[1].Date, bars[2].Date)
	}
}

func TestGetStockData_AllEmpty(t *testing.T) {

	service := NewStockService(&MockMarketData{}, repository.NewMemoryCache(), time.Minute, nil)

	bars, err := service.GetStockData(context.Background(), []string{"NOPE3"}, "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bars == nil || len(bars) != 0 {
		t.Errorf("expected an empty non-nil slice, got %#v", bars)
	}
}

func TestGetStockData_Validation(t *testing.T) {

	service := NewStockService(&MockMarketData{}, repository.NewMemoryCache(), time.Minute, nil)
	ctx := context.Background()

	tooMany := make([]string, MaxTickersPerRequest+1)
	for i := range tooMany {
		tooMany[i] = "PETR4"
	}

	cases := []struct {
		name     string
		tickers  []string
		period   string
		interval string
		want     error
	}{
		{"no tickers", nil, "1y", "1d", ErrNoTickers},
		{"too many tickers", tooMany, "1y", "1d", ErrTooManyTickers},
		{"bad period", []string{"PETR4"}, "7y", "1d", ErrInvalidPeriod},
		{"two months is not a yahoo period", []string{"PETR4"}, "2mo", "1d", ErrInvalidPeriod},
		{"bad interval", []string{"PETR4"}, "1y", "2h", ErrInvalidInterval},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.GetStockData(ctx, tc.tickers, tc.period, tc.interval)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
			if !IsValidationError(err) {
				t.Errorf("expected a validation error")
			}
		})
	}
}

func TestGetStockData_UsesCache(t *testing.T) {

	provider := &MockMarketData{
		Bars: map[string][]domain.Bar{"PETR4.SA": {bar("PETR4.SA", 1, 38)}},
	}
	service := NewStockService(provider, repository.NewMemoryCache(), time.Minute, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		bars, err := service.GetStockData(ctx, []string{"PETR4", "petr4.sa"}, "1mo", "1d")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(bars) != 1 {
			t.Fatalf("expected duplicate tickers to collapse into 1 bar, got %d", len(bars))
		}
		if !bars[0].Close.Equal(decimal.NewFromInt(38)) {
			t.Errorf("expected close 38, got %s", bars[0].Close)
		}
	}

	if provider.Calls != 1 {
		t.Errorf("expected 1 provider call, got %d", provider.Calls)
	}
}

func TestGetStockData_CancelledContext(t *testing.T) {

	provider := &MockMarketData{Fail: map[string]bool{"PETR4.SA": true}}
	service := NewStockService(provider, repository.NewMemoryCache(), time.Minute, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := service.GetStockData(ctx, []string{"PETR4"}, "1y", "1d"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestWithDefaults(t *testing.T) {

	service := NewStockService(&MockMarketData{}, repository.NewMemoryCache(), 0, nil).
		WithDefaults("6mo", "bogus")

	period, interval := service.Defaults()
	if period != "6mo" || interval != DefaultInterval {
		t.Errorf("expected 6mo/%s, got %s/%s", DefaultInterval, period, interval)
	}
}
