package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/allanboury/ao-trading-dasboard/internal/calculator"
	"github.com/allanboury/ao-trading-dasboard/internal/convert"
	"github.com/allanboury/ao-trading-dasboard/internal/domain"
	"github.com/allanboury/ao-trading-dasboard/internal/extract"
	"github.com/allanboury/ao-trading-dasboard/internal/logger"
	"github.com/allanboury/ao-trading-dasboard/internal/normalize"
)

type ImportResult struct {
	TradeCount  int
	SkippedRows int
}

type DashboardInput struct {
	Filter          domain.FilterCriteria
	DisplayCurrency string
}

type DashboardResult struct {
	Summary   domain.MetricsSummary
	Trades    []domain.ConvertedTrade
	TopTrades []domain.ConvertedTrade

	SkippedRows       int
	UnconvertedTrades int
	// RateNotice is a human readable note when conversion was degraded,
	// "" when every trade converted cleanly
	RateNotice string
}

// DashboardService owns the paste-to-dashboard pipeline: extraction,
// normalization, currency conversion and metrics, all scoped to one
// session.
type DashboardService interface {
	// ImportTrades replaces the session's dataset with whatever the
	// pasted markup holds. When the paste is entirely unusable the old
	// dataset stays untouched and an extract.ExtractionError comes back.
	ImportTrades(ctx context.Context, session *domain.Session, html string) (*ImportResult, error)

	// BuildDashboard computes the dashboard over the session's dataset
	// narrowed by the input filter.
	BuildDashboard(ctx context.Context, session *domain.Session, input DashboardInput) (*DashboardResult, error)
}

type dashboardServiceHandler struct {
	Extractor    *extract.Extractor
	Normalizer   *normalize.Normalizer
	RatesService RatesService

	// BaseCurrency is what the one rate fetch is quoted against; cross
	// rates cover every display currency after that
	BaseCurrency           string
	DefaultDisplayCurrency string
	TopTradesCount         int
}

func NewDashboardService(
	ratesService RatesService,
	baseCurrency string,
	defaultDisplayCurrency string,
	topTradesCount int,
) DashboardService {
	return &dashboardServiceHandler{
		Extractor:              extract.NewExtractor(),
		Normalizer:             normalize.NewNormalizer(),
		RatesService:           ratesService,
		BaseCurrency:           baseCurrency,
		DefaultDisplayCurrency: defaultDisplayCurrency,
		TopTradesCount:         topTradesCount,
	}
}

func (h *dashboardServiceHandler) ImportTrades(ctx context.Context, session *domain.Session, html string) (*ImportResult, error) {
	rows, err := h.Extractor.ExtractRows(html)
	if err != nil {
		return nil, err
	}

	trades, skipped := h.Normalizer.NormalizeRows(rows)
	if len(trades) == 0 {
		return nil, extract.ExtractionError{
			Detail: fmt.Sprintf("found %d rows but none were usable", len(rows)),
		}
	}

	session.SetDataset(trades, skipped)
	logger.Info("session %s imported %d trades, skipped %d rows", session.ID, len(trades), skipped)
	return &ImportResult{
		TradeCount:  len(trades),
		SkippedRows: skipped,
	}, nil
}

func (h *dashboardServiceHandler) BuildDashboard(ctx context.Context, session *domain.Session, input DashboardInput) (*DashboardResult, error) {
	target := strings.ToUpper(strings.TrimSpace(input.DisplayCurrency))
	if target == "" {
		target = h.DefaultDisplayCurrency
	}
	if len(target) != 3 {
		return nil, fmt.Errorf("invalid display currency %q", input.DisplayCurrency)
	}

	trades, skippedRows := session.Dataset()
	filtered := domain.FilterTrades(trades, input.Filter)

	// the provider is only worth bothering when some trade actually
	// needs converting
	var table *domain.RateTable
	rateNotice := ""
	if needsRates(filtered, target) {
		var err error
		table, err = h.RatesService.SessionRates(ctx, session, h.BaseCurrency)
		if err != nil {
			rateNotice = fmt.Sprintf("currency conversion unavailable: %v", err)
		}
	}

	converted, missing := convert.Apply(filtered, table, target)
	if rateNotice == "" && len(missing) > 0 {
		rateNotice = fmt.Sprintf("missing rates for %s", strings.Join(distinctPairs(missing), ", "))
	}

	return &DashboardResult{
		Summary:           calculator.ComputeSummary(converted),
		Trades:            converted,
		TopTrades:         calculator.TopTrades(converted, h.TopTradesCount),
		SkippedRows:       skippedRows,
		UnconvertedTrades: len(missing),
		RateNotice:        rateNotice,
	}, nil
}

func needsRates(trades []domain.Trade, target string) bool {
	for _, t := range trades {
		if t.Currency != target {
			return true
		}
	}
	return false
}

func distinctPairs(missing []convert.RateUnavailableError) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, m := range missing {
		key := m.From + "->" + m.To
		if !seen[key] {
			seen[key] = true
			out = append(out, key)
		}
	}
	return out
}
