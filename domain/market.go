package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// B3Suffix is the Yahoo Finance suffix for tickers listed on B3.
const B3Suffix = ".SA"

// Bar is one OHLCV observation for a ticker.
type Bar struct {
	Ticker string          `json:"ticker"`
	Date   time.Time       `json:"date"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume int64           `json:"volume"`
}

// AnnotatedBar carries a bar plus its indicator values. A nil indicator
// means the bar falls inside that indicator's lookback window.
type AnnotatedBar struct {
	Bar
	RSI        *float64 `json:"rsi"`
	MACD       *float64 `json:"macd"`
	MACDSignal *float64 `json:"macd_signal"`
	MACDHist   *float64 `json:"macd_hist"`
	SMAShort   *float64 `json:"sma_20"`
	SMALong    *float64 `json:"sma_50"`
}

type StockQuery struct {
	Tickers    []string
	Period     string
	Interval   string
	Indicators bool
}

type FXRate struct {
	Base      string          `json:"base"`
	Quote     string          `json:"quote"`
	Rate      decimal.Decimal `json:"rate"`
	Source    string          `json:"source"`
	FetchedAt time.Time       `json:"fetched_at"`
	Fallback  bool            `json:"fallback"`
}
