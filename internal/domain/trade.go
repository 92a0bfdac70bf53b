package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Canonical RawRow field keys. The extractor emits these, the normalizer
// consumes them; keeping them here lets both sides agree without importing
// each other.
const (
	FieldSide       = "side"
	FieldName       = "name"
	FieldSymbol     = "symbol"
	FieldAssetClass = "assetClass"
	FieldVolume     = "volume"
	FieldOpenPrice  = "openPrice"
	FieldClosePrice = "closePrice"
	FieldOpenTime   = "openTime"
	FieldCloseTime  = "closeTime"
	FieldProfit     = "profit"
	FieldProfitPct  = "profitPct"
)

// RawRow is one detected position row, field key -> raw cell text. Missing
// cells are simply absent; the normalizer treats absent and blank the same.
type RawRow map[string]string

type Side string

const (
	Side_Buy     Side = "BUY"
	Side_Sell    Side = "SELL"
	Side_Unknown Side = "UNKNOWN"
)

func NewSide(s string) Side {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY", "LONG":
		return Side_Buy
	case "SELL", "SHORT":
		return Side_Sell
	}
	return Side_Unknown
}

type AssetClass string

const (
	AssetClass_Stocks AssetClass = "Stocks"
	AssetClass_Forex  AssetClass = "Forex"
	AssetClass_Crypto AssetClass = "Crypto"
	AssetClass_Other  AssetClass = "Other"
)

// NewAssetClass maps the platform's asset-class label to a known class. The
// second return reports whether the label was recognized; unrecognized
// labels map to Other so a row is never dropped over its category.
func NewAssetClass(s string) (AssetClass, bool) {
	m := map[string]AssetClass{
		"stocks":           AssetClass_Stocks,
		"stock":            AssetClass_Stocks,
		"equities":         AssetClass_Stocks,
		"shares":           AssetClass_Stocks,
		"forex":            AssetClass_Forex,
		"fx":               AssetClass_Forex,
		"currencies":       AssetClass_Forex,
		"currency":         AssetClass_Forex,
		"crypto":           AssetClass_Crypto,
		"cryptocurrency":   AssetClass_Crypto,
		"cryptocurrencies": AssetClass_Crypto,
		"other":            AssetClass_Other,
	}
	if v, ok := m[strings.ToLower(strings.TrimSpace(s))]; ok {
		return v, true
	}
	return AssetClass_Other, false
}

// Trade is one normalized closed position. Immutable once created; the
// session owns the slice for the lifetime of one browser session.
//
// CloseTime and Profit are always set. OpenTime may be zero and the price /
// volume fields may be zero when the pasted page omits those columns.
// Profit is in Currency (the source currency detected on the row).
type Trade struct {
	Symbol     string
	Name       string
	Side       Side
	AssetClass AssetClass
	OpenTime   time.Time
	CloseTime  time.Time
	Volume     decimal.Decimal
	OpenPrice  decimal.Decimal
	ClosePrice decimal.Decimal
	Profit     decimal.Decimal
	ProfitPct  *float64
	Currency   string
}

// ConvertedTrade is a Trade re-expressed in the display currency. When the
// needed rate was unavailable, Converted is false and DisplayProfit still
// carries the source amount so the row remains visible.
type ConvertedTrade struct {
	Trade

	DisplayCurrency string
	DisplayProfit   decimal.Decimal
	Converted       bool
}
