package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/allanboury/ao-trading-dasboard/internal/domain"
	"github.com/allanboury/ao-trading-dasboard/internal/util"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// ExportService round-trips trades through CSV. Exports carry either the
// source amounts or the display amounts; re-imports always read the file
// as source amounts.
type ExportService interface {
	TradesToCsv(trades []domain.ConvertedTrade, useDisplayCurrency bool) ([]byte, error)
	TradesFromCsv(data []byte) ([]domain.Trade, error)
}

type exportServiceHandler struct{}

func NewExportService() ExportService {
	return &exportServiceHandler{}
}

// csvTradeRow keeps every numeric column as formatted text so the file is
// byte-stable: what we write is exactly what we parse back.
type csvTradeRow struct {
	Symbol     string `csv:"symbol"`
	Name       string `csv:"name"`
	Side       string `csv:"side"`
	AssetClass string `csv:"asset_class"`
	OpenTime   string `csv:"open_time"`
	CloseTime  string `csv:"close_time"`
	Volume     string `csv:"volume"`
	OpenPrice  string `csv:"open_price"`
	ClosePrice string `csv:"close_price"`
	Profit     string `csv:"profit"`
	ProfitPct  string `csv:"profit_pct"`
	Currency   string `csv:"currency"`
}

func (h *exportServiceHandler) TradesToCsv(trades []domain.ConvertedTrade, useDisplayCurrency bool) ([]byte, error) {
	rows := make([]csvTradeRow, 0, len(trades))
	for _, t := range trades {
		profit := t.Profit
		currency := t.Currency
		if useDisplayCurrency {
			profit = t.DisplayProfit
			currency = t.DisplayCurrency
		}

		row := csvTradeRow{
			Symbol:     t.Symbol,
			Name:       t.Name,
			Side:       string(t.Side),
			AssetClass: string(t.AssetClass),
			CloseTime:  t.CloseTime.Format(time.RFC3339),
			Profit:     profit.String(),
			Currency:   currency,
		}
		if !t.OpenTime.IsZero() {
			row.OpenTime = t.OpenTime.Format(time.RFC3339)
		}
		if !t.Volume.IsZero() {
			row.Volume = t.Volume.String()
		}
		if !t.OpenPrice.IsZero() {
			row.OpenPrice = t.OpenPrice.String()
		}
		if !t.ClosePrice.IsZero() {
			row.ClosePrice = t.ClosePrice.String()
		}
		if t.ProfitPct != nil {
			row.ProfitPct = strconv.FormatFloat(*t.ProfitPct, 'f', -1, 64)
		}
		rows = append(rows, row)
	}

	return gocsv.MarshalBytes(&rows)
}

func (h *exportServiceHandler) TradesFromCsv(data []byte) ([]domain.Trade, error) {
	rows := []csvTradeRow{}
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}

	trades := make([]domain.Trade, 0, len(rows))
	for i, row := range rows {
		closeTime, err := time.Parse(time.RFC3339, row.CloseTime)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad close_time %q: %w", i, row.CloseTime, err)
		}

		profit, err := decimal.NewFromString(row.Profit)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad profit %q: %w", i, row.Profit, err)
		}

		trade := domain.Trade{
			Symbol:    row.Symbol,
			Name:      row.Name,
			Side:      domain.NewSide(row.Side),
			CloseTime: closeTime.UTC(),
			Profit:    profit,
			Currency:  row.Currency,
		}
		trade.AssetClass, _ = domain.NewAssetClass(row.AssetClass)

		if row.OpenTime != "" {
			openTime, err := time.Parse(time.RFC3339, row.OpenTime)
			if err != nil {
				return nil, fmt.Errorf("row %d: bad open_time %q: %w", i, row.OpenTime, err)
			}
			trade.OpenTime = openTime.UTC()
		}
		if row.Volume != "" {
			if trade.Volume, err = decimal.NewFromString(row.Volume); err != nil {
				return nil, fmt.Errorf("row %d: bad volume %q: %w", i, row.Volume, err)
			}
		}
		if row.OpenPrice != "" {
			if trade.OpenPrice, err = decimal.NewFromString(row.OpenPrice); err != nil {
				return nil, fmt.Errorf("row %d: bad open_price %q: %w", i, row.OpenPrice, err)
			}
		}
		if row.ClosePrice != "" {
			if trade.ClosePrice, err = decimal.NewFromString(row.ClosePrice); err != nil {
				return nil, fmt.Errorf("row %d: bad close_price %q: %w", i, row.ClosePrice, err)
			}
		}
		if row.ProfitPct != "" {
			pct, err := strconv.ParseFloat(row.ProfitPct, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: bad profit_pct %q: %w", i, row.ProfitPct, err)
			}
			trade.ProfitPct = util.FloatPointer(pct)
		}

		trades = append(trades, trade)
	}
	return trades, nil
}
