package calculator

import (
	"testing"
	"time"

	"github.com/allanboury/ao-trading-dasboard/internal/domain"
	"github.com/allanboury/ao-trading-dasboard/internal/util"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool {
	return a.Equal(b)
})

func convertedTrade(symbol string, class domain.AssetClass, closeTime time.Time, profit string, pct *float64) domain.ConvertedTrade {
	p := decimal.RequireFromString(profit)
	return domain.ConvertedTrade{
		Trade: domain.Trade{
			Symbol:     symbol,
			AssetClass: class,
			CloseTime:  closeTime,
			Profit:     p,
			ProfitPct:  pct,
			Currency:   "USD",
		},
		DisplayCurrency: "USD",
		DisplayProfit:   p,
		Converted:       true,
	}
}

func TestComputeSummary(t *testing.T) {
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	t.Run("mixed wins and losses on one day", func(t *testing.T) {
		summary := ComputeSummary([]domain.ConvertedTrade{
			convertedTrade("AAPL", domain.AssetClass_Stocks, day.Add(10*time.Hour), "100", nil),
			convertedTrade("TSLA", domain.AssetClass_Stocks, day.Add(11*time.Hour), "-40", nil),
			convertedTrade("BTC", domain.AssetClass_Crypto, day.Add(12*time.Hour), "20", nil),
		})

		require.Equal(t, 3, summary.TradeCount)
		require.Equal(t, "80", summary.TotalProfit.String())
		require.InDelta(t, 66.6667, summary.WinRate, 0.001)
		require.NotNil(t, summary.ProfitFactor)
		require.InDelta(t, 3.0, *summary.ProfitFactor, 1e-9)
		require.Equal(t, "80", summary.AvgProfitPerDay.String())

		require.Empty(t, cmp.Diff([]domain.SeriesPoint{
			{Date: day, Profit: decimal.NewFromInt(80)},
		}, summary.DailySeries, decimalComparer))
		require.Empty(t, cmp.Diff([]domain.SeriesPoint{
			{Date: day, Profit: decimal.NewFromInt(80)},
		}, summary.CumulativeSeries, decimalComparer))

		require.NotNil(t, summary.OldestClose)
		require.NotNil(t, summary.NewestClose)
		require.True(t, summary.OldestClose.Before(*summary.NewestClose))
	})

	t.Run("empty set is a defined zero state", func(t *testing.T) {
		summary := ComputeSummary(nil)

		require.Zero(t, summary.TradeCount)
		require.True(t, summary.TotalProfit.IsZero())
		require.Zero(t, summary.WinRate)
		require.NotNil(t, summary.ProfitFactor)
		require.Zero(t, *summary.ProfitFactor)
		require.True(t, summary.AvgProfitPerDay.IsZero())
		require.Empty(t, summary.DailySeries)
		require.Empty(t, summary.CumulativeSeries)
		require.Nil(t, summary.OldestClose)
		require.Nil(t, summary.AvgReturnPct)
	})

	t.Run("no losses leaves the profit factor undefined", func(t *testing.T) {
		summary := ComputeSummary([]domain.ConvertedTrade{
			convertedTrade("AAPL", domain.AssetClass_Stocks, day, "100", nil),
			convertedTrade("TSLA", domain.AssetClass_Stocks, day, "20", nil),
		})
		require.Nil(t, summary.ProfitFactor)
		require.InDelta(t, 100.0, summary.WinRate, 1e-9)
	})

	t.Run("daily series, cumulative series and drawdown across days", func(t *testing.T) {
		summary := ComputeSummary([]domain.ConvertedTrade{
			convertedTrade("D4", domain.AssetClass_Stocks, day.AddDate(0, 0, 3), "50", nil),
			convertedTrade("D1A", domain.AssetClass_Stocks, day.Add(9*time.Hour), "70", nil),
			convertedTrade("D1B", domain.AssetClass_Stocks, day.Add(15*time.Hour), "30", nil),
			convertedTrade("D2", domain.AssetClass_Stocks, day.AddDate(0, 0, 1), "-30", nil),
			convertedTrade("D3", domain.AssetClass_Stocks, day.AddDate(0, 0, 2), "-80", nil),
		})

		require.Empty(t, cmp.Diff([]domain.SeriesPoint{
			{Date: day, Profit: decimal.NewFromInt(100)},
			{Date: day.AddDate(0, 0, 1), Profit: decimal.NewFromInt(-30)},
			{Date: day.AddDate(0, 0, 2), Profit: decimal.NewFromInt(-80)},
			{Date: day.AddDate(0, 0, 3), Profit: decimal.NewFromInt(50)},
		}, summary.DailySeries, decimalComparer))

		require.Empty(t, cmp.Diff([]domain.SeriesPoint{
			{Date: day, Profit: decimal.NewFromInt(100)},
			{Date: day.AddDate(0, 0, 1), Profit: decimal.NewFromInt(70)},
			{Date: day.AddDate(0, 0, 2), Profit: decimal.NewFromInt(-10)},
			{Date: day.AddDate(0, 0, 3), Profit: decimal.NewFromInt(40)},
		}, summary.CumulativeSeries, decimalComparer))

		// peak 100 down to -10
		require.Equal(t, "110", summary.MaxDrawdown.String())
		require.Equal(t, "10", summary.AvgProfitPerDay.String())
	})

	t.Run("asset class rollup is ordered by magnitude", func(t *testing.T) {
		summary := ComputeSummary([]domain.ConvertedTrade{
			convertedTrade("AAPL", domain.AssetClass_Stocks, day, "10", nil),
			convertedTrade("BTC", domain.AssetClass_Crypto, day, "-90", nil),
			convertedTrade("EUR/USD", domain.AssetClass_Forex, day, "25", nil),
		})

		require.Empty(t, cmp.Diff([]domain.AssetClassProfit{
			{AssetClass: domain.AssetClass_Crypto, Profit: decimal.NewFromInt(-90)},
			{AssetClass: domain.AssetClass_Forex, Profit: decimal.NewFromInt(25)},
			{AssetClass: domain.AssetClass_Stocks, Profit: decimal.NewFromInt(10)},
		}, summary.ProfitByAssetClass, decimalComparer))
	})

	t.Run("average return percent is the mean of known percents", func(t *testing.T) {
		summary := ComputeSummary([]domain.ConvertedTrade{
			convertedTrade("A", domain.AssetClass_Stocks, day, "1", util.FloatPointer(10)),
			convertedTrade("B", domain.AssetClass_Stocks, day, "1", util.FloatPointer(-4)),
			convertedTrade("C", domain.AssetClass_Stocks, day, "1", nil),
		})
		require.NotNil(t, summary.AvgReturnPct)
		require.InDelta(t, 3.0, *summary.AvgReturnPct, 1e-9)
	})
}

func TestTopTrades(t *testing.T) {
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	trades := []domain.ConvertedTrade{
		convertedTrade("A", domain.AssetClass_Stocks, day, "5", nil),
		convertedTrade("B", domain.AssetClass_Stocks, day, "100", nil),
		convertedTrade("C", domain.AssetClass_Stocks, day, "-40", nil),
		convertedTrade("D", domain.AssetClass_Stocks, day, "20", nil),
	}

	top := TopTrades(trades, 2)
	require.Len(t, top, 2)
	require.Equal(t, "B", top[0].Symbol)
	require.Equal(t, "D", top[1].Symbol)

	t.Run("n larger than the set returns everything", func(t *testing.T) {
		require.Len(t, TopTrades(trades, 10), 4)
	})

	t.Run("input order is untouched", func(t *testing.T) {
		require.Equal(t, "A", trades[0].Symbol)
	})
}
