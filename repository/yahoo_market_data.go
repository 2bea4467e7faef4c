package repository

import (
	"context"
	"fmt"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"

	"b3-dashboard/domain"
)

type chartFetcher func(params *chart.Params) ([]*finance.ChartBar, error)

// YahooMarketData reads price history from the Yahoo Finance chart API.
type YahooMarketData struct {
	fetch chartFetcher
	retry RetryConfig
	now   func() time.Time
}

func NewYahooMarketData() *YahooMarketData {
	return &YahooMarketData{
		fetch: fetchChart,
		retry: DefaultRetryConfig(),
		now:   time.Now,
	}
}

func fetchChart(params *chart.Params) ([]*finance.ChartBar, error) {
	iter := chart.Get(params)

	bars := make([]*finance.ChartBar, 0)
	for iter.Next() {
		bars = append(bars, iter.Bar())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return bars, nil
}

// History fetches bars covering period (e.g. "1y") sampled at interval
// (e.g. "1d").
func (y *YahooMarketData) History(ctx context.Context, ticker, period, interval string) ([]domain.Bar, error) {
	end := y.now()
	start, err := PeriodStart(period, end)
	if err != nil {
		return nil, err
	}

	params := &chart.Params{
		Symbol:   ticker,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.Interval(interval),
	}

	var raw []*finance.ChartBar
	err = withRetry(ctx, y.retry, func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		bars, err := y.fetch(params)
		if err != nil {
			return fmt.Errorf("failed to get history for %s: %w", ticker, err)
		}
		raw = bars
		return nil
	})
	if err != nil {
		return nil, err
	}

	bars := make([]domain.Bar, 0, len(raw))
	for _, b := range raw {
		if b == nil {
			continue
		}
		bars = append(bars, domain.Bar{
			Ticker: ticker,
			Date:   time.Unix(int64(b.Timestamp), 0).UTC(),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: int64(b.Volume),
		})
	}
	return bars, nil
}

// PeriodStart translates a Yahoo-style period into the start of the window
// ending at end.
func PeriodStart(period string, end time.Time) (time.Time, error) {
	switch period {
	case "1d":
		return end.AddDate(0, 0, -1), nil
	case "5d":
		return end.AddDate(0, 0, -5), nil
	case "1mo":
		return end.AddDate(0, -1, 0), nil
	case "3mo":
		return end.AddDate(0, -3, 0), nil
	case "6mo":
		return end.AddDate(0, -6, 0), nil
	case "1y":
		return end.AddDate(-1, 0, 0), nil
	case "2y":
		return end.AddDate(-2, 0, 0), nil
	case "5y":
		return end.AddDate(-5, 0, 0), nil
	case "10y":
		return end.AddDate(-10, 0, 0), nil
	case "ytd":
		return time.Date(end.Year(), time.January, 1, 0, 0, 0, 0, end.Location()), nil
	case "max":
		return time.Unix(0, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unsupported period %q", period)
}
