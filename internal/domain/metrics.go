package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SeriesPoint is one day of profit, keyed by the close date at UTC
// midnight. Used for both the per-day and the cumulative series.
type SeriesPoint struct {
	Date   time.Time
	Profit decimal.Decimal
}

type AssetClassProfit struct {
	AssetClass AssetClass
	Profit     decimal.Decimal
}

// MetricsSummary aggregates one filtered, currency-converted trade set.
// All money amounts are in the display currency the trades were converted
// into.
//
// ProfitFactor is nil when gross losses are zero but gross wins are not;
// the ratio is undefined there and nil keeps the JSON encoding sane.
// AvgReturnPct is nil when no trade carried a percent-return figure.
type MetricsSummary struct {
	TradeCount         int
	TotalProfit        decimal.Decimal
	WinRate            float64
	ProfitFactor       *float64
	AvgProfitPerDay    decimal.Decimal
	AvgReturnPct       *float64
	MaxDrawdown        decimal.Decimal
	DailySeries        []SeriesPoint
	CumulativeSeries   []SeriesPoint
	ProfitByAssetClass []AssetClassProfit
	OldestClose        *time.Time
	NewestClose        *time.Time
}
