package service

import "time"

const (
	MaxPrincipal            = 1_000_000_000.0 // 1 billion BRL
	MaxMonthlyContribution  = 10_000_000.0
	MaxAnnualRatePercent    = 100.0
	MinYears                = 1
	MaxYears                = 50
	MaxCompoundingFrequency = 360
	MaxTickersPerRequest    = 20
	MaxRecentInvestments    = 50
	DefaultPeriod           = "1y"
	DefaultInterval         = "1d"
	DefaultMarketDataTTL    = 15 * time.Minute
	DefaultFXTTL            = 1 * time.Hour
	FallbackUSDToBRLRate    = "5.40"

	indicatorRSIPeriod      = 14
	indicatorMACDFast       = 12
	indicatorMACDSlow       = 26
	indicatorMACDSignal     = 9
	indicatorSMAShortPeriod = 20
	indicatorSMALongPeriod  = 50
)
