package repository

import (
	"context"

	"b3-dashboard/domain"
)

// MarketDataRepository returns OHLCV history for an already normalised
// ticker. An empty slice with a nil error means the provider has no data.
type MarketDataRepository interface {
	History(ctx context.Context, ticker, period, interval string) ([]domain.Bar, error)
}
