package http

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"b3-dashboard/domain"
	"b3-dashboard/repository"
	"b3-dashboard/service"
)

type stubMarketData struct {
	bars map[string][]domain.Bar
}

func (s *stubMarketData) History(_ context.Context, ticker, _, _ string) ([]domain.Bar, error) {
	return s.bars[ticker], nil
}

type stubFXSource struct {
	rate decimal.Decimal
	fail bool
}

func (s *stubFXSource) USDToBRL(_ context.Context) (decimal.Decimal, error) {
	if s.fail {
		return decimal.Zero, errors.New("unreachable")
	}
	return s.rate, nil
}

func (s *stubFXSource) Source() string {
	return "stub"
}

func sampleBars(ticker string, n int) []domain.Bar {
	start := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]domain.Bar, n)
	for i := range bars {
		price := decimal.NewFromFloat(30 + float64(i)/10)
		bars[i] = domain.Bar{
			Ticker: ticker,
			Date:   start.AddDate(0, 0, i),
			Open:   price,
			High:   price,
			Low:    price,
			Close:  price,
			Volume: 1_000_000,
		}
	}
	return bars
}

func newTestServices() (*service.InvestmentService, *service.StockService, *service.FXService) {
	cache := repository.NewMemoryCache()

	investments := service.NewInvestmentService(repository.NewInvestmentRepositoryMemory(10), nil)
	stocks := service.NewStockService(&stubMarketData{bars: map[string][]domain.Bar{
		"PETR4.SA": sampleBars("PETR4.SA", 60),
		"VALE3.SA": sampleBars("VALE3.SA", 5),
	}}, cache, time.Minute, nil)
	fx := service.NewFXService(&stubFXSource{rate: decimal.RequireFromString("5")}, cache, time.Hour, decimal.Zero, nil)

	return investments, stocks, fx
}
