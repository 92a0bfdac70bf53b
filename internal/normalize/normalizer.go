package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/allanboury/ao-trading-dasboard/internal/domain"
	"github.com/allanboury/ao-trading-dasboard/internal/logger"
	"github.com/allanboury/ao-trading-dasboard/internal/util"
)

// MalformedRowError rejects a single row. Rows fail individually; one bad
// row never takes the import down with it.
type MalformedRowError struct {
	Field string
	Value string
	Err   error
}

func (e MalformedRowError) Error() string {
	return fmt.Sprintf("malformed row: field %q value %q: %v", e.Field, e.Value, e.Err)
}

func (e MalformedRowError) Unwrap() error {
	return e.Err
}

type Normalizer struct {
	// DefaultCurrency is assumed when a profit cell carries no currency
	// marker of its own.
	DefaultCurrency string
	Now             func() time.Time
}

func NewNormalizer() *Normalizer {
	return &Normalizer{
		DefaultCurrency: "USD",
		Now:             time.Now,
	}
}

// NormalizeRows turns raw rows into trades. Rows missing a close time or a
// profit, or carrying values that will not parse, are dropped and counted;
// the count is the second return and the details go to the debug log.
func (n *Normalizer) NormalizeRows(rows []domain.RawRow) ([]domain.Trade, int) {
	trades := []domain.Trade{}
	skipped := 0
	for i, row := range rows {
		trade, err := n.normalizeRow(row)
		if err != nil {
			skipped++
			logger.Debug("dropping row %d: %v", i, err)
			continue
		}
		trades = append(trades, *trade)
	}
	return trades, skipped
}

func (n *Normalizer) normalizeRow(row domain.RawRow) (*domain.Trade, error) {
	closeRaw := strings.TrimSpace(row[domain.FieldCloseTime])
	if closeRaw == "" {
		return nil, MalformedRowError{domain.FieldCloseTime, closeRaw, fmt.Errorf("missing close time")}
	}
	closeTime, err := parseTime(closeRaw, n.Now())
	if err != nil {
		return nil, MalformedRowError{domain.FieldCloseTime, closeRaw, err}
	}

	profitRaw := strings.TrimSpace(row[domain.FieldProfit])
	if profitRaw == "" {
		return nil, MalformedRowError{domain.FieldProfit, profitRaw, fmt.Errorf("missing profit")}
	}
	profit, currency, err := cleanNumber(profitRaw)
	if err != nil {
		return nil, MalformedRowError{domain.FieldProfit, profitRaw, err}
	}
	if currency == "" {
		currency = n.DefaultCurrency
	}

	trade := &domain.Trade{
		Symbol:    strings.TrimSpace(row[domain.FieldSymbol]),
		Name:      strings.TrimSpace(row[domain.FieldName]),
		Side:      domain.NewSide(row[domain.FieldSide]),
		CloseTime: closeTime,
		Profit:    profit,
		Currency:  currency,
	}

	if v := strings.TrimSpace(row[domain.FieldOpenTime]); v != "" {
		openTime, err := parseTime(v, n.Now())
		if err != nil {
			return nil, MalformedRowError{domain.FieldOpenTime, v, err}
		}
		if closeTime.Before(openTime) {
			return nil, MalformedRowError{domain.FieldOpenTime, v, fmt.Errorf("close time precedes open time")}
		}
		trade.OpenTime = openTime
	}

	if v := strings.TrimSpace(row[domain.FieldVolume]); v != "" {
		d, _, err := cleanNumber(v)
		if err != nil {
			return nil, MalformedRowError{domain.FieldVolume, v, err}
		}
		trade.Volume = d
	}
	if v := strings.TrimSpace(row[domain.FieldOpenPrice]); v != "" {
		d, _, err := cleanNumber(v)
		if err != nil {
			return nil, MalformedRowError{domain.FieldOpenPrice, v, err}
		}
		trade.OpenPrice = d
	}
	if v := strings.TrimSpace(row[domain.FieldClosePrice]); v != "" {
		d, _, err := cleanNumber(v)
		if err != nil {
			return nil, MalformedRowError{domain.FieldClosePrice, v, err}
		}
		trade.ClosePrice = d
	}

	// the percent column is presentation only, a bad value is not worth
	// dropping the row over
	if v := strings.TrimSpace(row[domain.FieldProfitPct]); v != "" {
		if d, _, err := cleanNumber(v); err == nil {
			trade.ProfitPct = util.FloatPointer(d.InexactFloat64())
		} else {
			logger.Debug("ignoring unparseable percent %q: %v", v, err)
		}
	}

	trade.AssetClass = resolveAssetClass(row[domain.FieldAssetClass], trade.Symbol)
	return trade, nil
}

func resolveAssetClass(label, symbol string) domain.AssetClass {
	if strings.TrimSpace(label) != "" {
		cls, _ := domain.NewAssetClass(label)
		return cls
	}
	return inferAssetClass(symbol)
}

var (
	forexPairRe = regexp.MustCompile(`^[A-Z]{3}/[A-Z]{3}$`)
	tickerRe    = regexp.MustCompile(`^[A-Z]{1,5}(\.[A-Z])?$`)
)

var cryptoSymbols = map[string]bool{
	"BTC": true, "ETH": true, "XRP": true, "SOL": true, "ADA": true,
	"DOGE": true, "DOT": true, "LTC": true, "BNB": true, "AVAX": true,
	"LINK": true, "MATIC": true, "SHIB": true,
}

var currencyCodes = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true, "CHF": true,
	"AUD": true, "CAD": true, "NZD": true, "SEK": true, "NOK": true,
	"DKK": true, "PLN": true, "TRY": true, "ZAR": true, "MXN": true,
	"SGD": true, "HKD": true, "CNY": true, "CNH": true,
}

// inferAssetClass guesses a class from the symbol shape when the page did
// not label the row. Crypto is checked before the plain ticker shape since
// BTC would pass for a stock symbol.
func inferAssetClass(symbol string) domain.AssetClass {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" {
		return domain.AssetClass_Other
	}
	if forexPairRe.MatchString(s) {
		return domain.AssetClass_Forex
	}
	if len(s) == 6 && currencyCodes[s[:3]] && currencyCodes[s[3:]] {
		return domain.AssetClass_Forex
	}
	base := s
	if i := strings.IndexAny(s, "/-"); i > 0 {
		base = s[:i]
	}
	if cryptoSymbols[base] {
		return domain.AssetClass_Crypto
	}
	if tickerRe.MatchString(s) {
		return domain.AssetClass_Stocks
	}
	return domain.AssetClass_Other
}
