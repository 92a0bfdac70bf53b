package calculator

import (
	"sort"
	"time"

	"github.com/allanboury/ao-trading-dasboard/internal/domain"
	"github.com/allanboury/ao-trading-dasboard/internal/util"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

// ComputeSummary aggregates one filtered, display-currency trade set into
// the dashboard numbers. An empty set produces the zero summary rather
// than an error; an empty dashboard is a state, not a failure.
//
// All sums run over DisplayProfit, so whatever the converter could not
// re-express stays in its source amount and the totals say so via the
// unconverted count the caller tracks.
func ComputeSummary(trades []domain.ConvertedTrade) domain.MetricsSummary {
	summary := domain.MetricsSummary{
		TotalProfit:        decimal.Zero,
		AvgProfitPerDay:    decimal.Zero,
		MaxDrawdown:        decimal.Zero,
		DailySeries:        []domain.SeriesPoint{},
		CumulativeSeries:   []domain.SeriesPoint{},
		ProfitByAssetClass: []domain.AssetClassProfit{},
	}
	if len(trades) == 0 {
		summary.ProfitFactor = util.FloatPointer(0)
		return summary
	}

	sorted := make([]domain.ConvertedTrade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CloseTime.Before(sorted[j].CloseTime)
	})

	summary.TradeCount = len(sorted)
	summary.OldestClose = util.TimePointer(sorted[0].CloseTime)
	summary.NewestClose = util.TimePointer(sorted[len(sorted)-1].CloseTime)

	var (
		grossWin  = decimal.Zero
		grossLoss = decimal.Zero
		wins      int
		returns   []float64
		byClass   = map[domain.AssetClass]decimal.Decimal{}
		byDay     = map[time.Time]decimal.Decimal{}
		days      []time.Time
	)

	for _, t := range sorted {
		p := t.DisplayProfit
		summary.TotalProfit = summary.TotalProfit.Add(p)
		if p.IsPositive() {
			wins++
			grossWin = grossWin.Add(p)
		} else if p.IsNegative() {
			grossLoss = grossLoss.Add(p.Abs())
		}
		if t.ProfitPct != nil {
			returns = append(returns, *t.ProfitPct)
		}
		byClass[t.AssetClass] = byClass[t.AssetClass].Add(p)

		day := util.Day(t.CloseTime)
		if _, seen := byDay[day]; !seen {
			days = append(days, day)
		}
		byDay[day] = byDay[day].Add(p)
	}

	// breakeven trades count in neither gross sum, so a set of flat
	// trades lands in the zero case
	summary.WinRate = 100 * float64(wins) / float64(len(sorted))
	switch {
	case grossWin.IsZero() && grossLoss.IsZero():
		summary.ProfitFactor = util.FloatPointer(0)
	case grossLoss.IsZero():
		// undefined ratio, nil keeps JSON clients honest about it
		summary.ProfitFactor = nil
	default:
		summary.ProfitFactor = util.FloatPointer(grossWin.Div(grossLoss).InexactFloat64())
	}

	if len(returns) > 0 {
		if mean, err := stats.Mean(returns); err == nil {
			summary.AvgReturnPct = util.FloatPointer(mean)
		}
	}

	// days were appended while walking close-time sorted trades, so they
	// are already chronological
	cumulative := decimal.Zero
	peak := decimal.Zero
	for _, day := range days {
		p := byDay[day]
		summary.DailySeries = append(summary.DailySeries, domain.SeriesPoint{Date: day, Profit: p})

		cumulative = cumulative.Add(p)
		summary.CumulativeSeries = append(summary.CumulativeSeries, domain.SeriesPoint{Date: day, Profit: cumulative})

		if cumulative.GreaterThan(peak) {
			peak = cumulative
		}
		if dd := peak.Sub(cumulative); dd.GreaterThan(summary.MaxDrawdown) {
			summary.MaxDrawdown = dd
		}
	}

	// average is over days that saw a close, not the calendar span
	summary.AvgProfitPerDay = summary.TotalProfit.Div(decimal.NewFromInt(int64(len(days))))

	classes := make([]domain.AssetClass, 0, len(byClass))
	for c := range byClass {
		classes = append(classes, c)
	}
	sort.Slice(classes, func(i, j int) bool {
		pi, pj := byClass[classes[i]].Abs(), byClass[classes[j]].Abs()
		if pi.Equal(pj) {
			return classes[i] < classes[j]
		}
		return pi.GreaterThan(pj)
	})
	for _, c := range classes {
		summary.ProfitByAssetClass = append(summary.ProfitByAssetClass, domain.AssetClassProfit{
			AssetClass: c,
			Profit:     byClass[c],
		})
	}

	return summary
}

// TopTrades returns the n best trades by display profit, best first. When
// fewer than n trades exist they all come back, losses included.
func TopTrades(trades []domain.ConvertedTrade, n int) []domain.ConvertedTrade {
	sorted := make([]domain.ConvertedTrade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DisplayProfit.GreaterThan(sorted[j].DisplayProfit)
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
