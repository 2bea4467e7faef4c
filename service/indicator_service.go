package service

import (
	talib "github.com/markcheno/go-talib"

	"b3-dashboard/domain"
)

const macdLookback = indicatorMACDSlow - 1 + indicatorMACDSignal - 1

// AnnotateIndicators computes RSI, MACD and the short and long SMA for each
// ticker's bars. Bars must be grouped by ticker and in date order, as
// returned by StockService.GetStockData.
func AnnotateIndicators(bars []domain.Bar) []domain.AnnotatedBar {
	out := make([]domain.AnnotatedBar, len(bars))
	for i, b := range bars {
		out[i].Bar = b
	}

	start := 0
	for start < len(bars) {
		end := start
		for end < len(bars) && bars[end].Ticker == bars[start].Ticker {
			end++
		}
		annotateSeries(out[start:end])
		start = end
	}
	return out
}

func annotateSeries(series []domain.AnnotatedBar) {
	closes := make([]float64, len(series))
	for i, b := range series {
		closes[i] = b.Close.InexactFloat64()
	}

	if len(closes) > indicatorRSIPeriod {
		rsi := talib.Rsi(closes, indicatorRSIPeriod)
		for i := indicatorRSIPeriod; i < len(series); i++ {
			series[i].RSI = value(rsi[i])
		}
	}

	if len(closes) > macdLookback {
		macd, signal, hist := talib.Macd(closes, indicatorMACDFast, indicatorMACDSlow, indicatorMACDSignal)
		for i := macdLookback; i < len(series); i++ {
			series[i].MACD = value(macd[i])
			series[i].MACDSignal = value(signal[i])
			series[i].MACDHist = value(hist[i])
		}
	}

	if len(closes) >= indicatorSMAShortPeriod {
		sma := talib.Sma(closes, indicatorSMAShortPeriod)
		for i := indicatorSMAShortPeriod - 1; i < len(series); i++ {
			series[i].SMAShort = value(sma[i])
		}
	}

	if len(closes) >= indicatorSMALongPeriod {
		sma := talib.Sma(closes, indicatorSMALongPeriod)
		for i := indicatorSMALongPeriod - 1; i < len(series); i++ {
			series[i].SMALong = value(sma[i])
		}
	}
}

func value(v float64) *float64 {
	return &v
}
