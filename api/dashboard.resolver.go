package api

import (
	"fmt"
	"time"

	"github.com/allanboury/ao-trading-dasboard/internal/domain"
	"github.com/allanboury/ao-trading-dasboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type filterRequest struct {
	AssetClasses    []string `json:"assetClasses"`
	StartDate       *string  `json:"startDate"`
	EndDate         *string  `json:"endDate"`
	DisplayCurrency string   `json:"displayCurrency"`
}

func (r filterRequest) toDashboardInput() (service.DashboardInput, error) {
	criteria := domain.FilterCriteria{}
	for _, raw := range r.AssetClasses {
		class, recognized := domain.NewAssetClass(raw)
		if !recognized {
			return service.DashboardInput{}, fmt.Errorf("unknown asset class %q", raw)
		}
		criteria.AssetClasses = append(criteria.AssetClasses, class)
	}

	if r.StartDate != nil && *r.StartDate != "" {
		start, err := time.Parse(time.DateOnly, *r.StartDate)
		if err != nil {
			return service.DashboardInput{}, fmt.Errorf("invalid startDate %q: %w", *r.StartDate, err)
		}
		criteria.StartDate = &start
	}
	if r.EndDate != nil && *r.EndDate != "" {
		end, err := time.Parse(time.DateOnly, *r.EndDate)
		if err != nil {
			return service.DashboardInput{}, fmt.Errorf("invalid endDate %q: %w", *r.EndDate, err)
		}
		criteria.EndDate = &end
	}

	return service.DashboardInput{
		Filter:          criteria,
		DisplayCurrency: r.DisplayCurrency,
	}, nil
}

type seriesPointJson struct {
	Date   string          `json:"date"`
	Profit decimal.Decimal `json:"profit"`
}

type assetClassProfitJson struct {
	AssetClass string          `json:"assetClass"`
	Profit     decimal.Decimal `json:"profit"`
}

type tradeJson struct {
	Symbol          string          `json:"symbol"`
	Name            string          `json:"name,omitempty"`
	Side            string          `json:"side"`
	AssetClass      string          `json:"assetClass"`
	OpenTime        *string         `json:"openTime,omitempty"`
	CloseTime       string          `json:"closeTime"`
	Volume          decimal.Decimal `json:"volume"`
	OpenPrice       decimal.Decimal `json:"openPrice"`
	ClosePrice      decimal.Decimal `json:"closePrice"`
	Profit          decimal.Decimal `json:"profit"`
	ProfitPct       *float64        `json:"profitPct,omitempty"`
	Currency        string          `json:"currency"`
	DisplayCurrency string          `json:"displayCurrency"`
	DisplayProfit   decimal.Decimal `json:"displayProfit"`
	Converted       bool            `json:"converted"`
}

type summaryJson struct {
	TradeCount      int             `json:"tradeCount"`
	TotalProfit     decimal.Decimal `json:"totalProfit"`
	WinRate         float64         `json:"winRate"`
	ProfitFactor    *float64        `json:"profitFactor"`
	AvgProfitPerDay decimal.Decimal `json:"avgProfitPerDay"`
	AvgReturnPct    *float64        `json:"avgReturnPct,omitempty"`
	MaxDrawdown     decimal.Decimal `json:"maxDrawdown"`
	OldestClose     *string         `json:"oldestClose,omitempty"`
	NewestClose     *string         `json:"newestClose,omitempty"`
}

type dashboardResponse struct {
	Summary            summaryJson            `json:"summary"`
	DailySeries        []seriesPointJson      `json:"dailySeries"`
	CumulativeSeries   []seriesPointJson      `json:"cumulativeSeries"`
	ProfitByAssetClass []assetClassProfitJson `json:"profitByAssetClass"`
	TopTrades          []tradeJson            `json:"topTrades"`
	Trades             []tradeJson            `json:"trades"`
	SkippedRows        int                    `json:"skippedRows"`
	UnconvertedTrades  int                    `json:"unconvertedTrades"`
	RateNotice         string                 `json:"rateNotice,omitempty"`
}

// dashboard computes the full dashboard over the session's dataset. An
// empty filter result is a valid, all-zero dashboard.
func (m *ApiHandler) dashboard(c *gin.Context) {
	profile, endProfile := domain.NewProfile()
	defer func() {
		endProfile()
		logProfile("dashboard", profile)
	}()

	profile.StartNewSpan("parse request")
	session, err := sessionFromContext(c)
	if err != nil {
		returnErrorJsonCode(err, c, 401)
		return
	}

	var requestBody filterRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}
	input, err := requestBody.toDashboardInput()
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	profile.StartNewSpan("build dashboard")
	result, err := m.DashboardService.BuildDashboard(c.Request.Context(), session, input)
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	profile.StartNewSpan("encode response")
	c.JSON(200, buildDashboardResponse(result))
}

func buildDashboardResponse(result *service.DashboardResult) dashboardResponse {
	return dashboardResponse{
		Summary:            toSummaryJson(result.Summary),
		DailySeries:        toSeriesJson(result.Summary.DailySeries),
		CumulativeSeries:   toSeriesJson(result.Summary.CumulativeSeries),
		ProfitByAssetClass: toAssetClassJson(result.Summary.ProfitByAssetClass),
		TopTrades:          toTradesJson(result.TopTrades),
		Trades:             toTradesJson(result.Trades),
		SkippedRows:        result.SkippedRows,
		UnconvertedTrades:  result.UnconvertedTrades,
		RateNotice:         result.RateNotice,
	}
}

func toSummaryJson(summary domain.MetricsSummary) summaryJson {
	out := summaryJson{
		TradeCount:      summary.TradeCount,
		TotalProfit:     summary.TotalProfit,
		WinRate:         summary.WinRate,
		ProfitFactor:    summary.ProfitFactor,
		AvgProfitPerDay: summary.AvgProfitPerDay,
		AvgReturnPct:    summary.AvgReturnPct,
		MaxDrawdown:     summary.MaxDrawdown,
	}
	if summary.OldestClose != nil {
		s := summary.OldestClose.Format(time.DateOnly)
		out.OldestClose = &s
	}
	if summary.NewestClose != nil {
		s := summary.NewestClose.Format(time.DateOnly)
		out.NewestClose = &s
	}
	return out
}

func toSeriesJson(points []domain.SeriesPoint) []seriesPointJson {
	out := make([]seriesPointJson, 0, len(points))
	for _, p := range points {
		out = append(out, seriesPointJson{
			Date:   p.Date.Format(time.DateOnly),
			Profit: p.Profit,
		})
	}
	return out
}

func toAssetClassJson(breakdown []domain.AssetClassProfit) []assetClassProfitJson {
	out := make([]assetClassProfitJson, 0, len(breakdown))
	for _, b := range breakdown {
		out = append(out, assetClassProfitJson{
			AssetClass: string(b.AssetClass),
			Profit:     b.Profit,
		})
	}
	return out
}

func toTradesJson(trades []domain.ConvertedTrade) []tradeJson {
	out := make([]tradeJson, 0, len(trades))
	for _, t := range trades {
		row := tradeJson{
			Symbol:          t.Symbol,
			Name:            t.Name,
			Side:            string(t.Side),
			AssetClass:      string(t.AssetClass),
			CloseTime:       t.CloseTime.Format(time.RFC3339),
			Volume:          t.Volume,
			OpenPrice:       t.OpenPrice,
			ClosePrice:      t.ClosePrice,
			Profit:          t.Profit,
			ProfitPct:       t.ProfitPct,
			Currency:        t.Currency,
			DisplayCurrency: t.DisplayCurrency,
			DisplayProfit:   t.DisplayProfit,
			Converted:       t.Converted,
		}
		if !t.OpenTime.IsZero() {
			s := t.OpenTime.Format(time.RFC3339)
			row.OpenTime = &s
		}
		out = append(out, row)
	}
	return out
}
