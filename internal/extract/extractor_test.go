package extract

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/allanboury/ao-trading-dasboard/internal/domain"

	"github.com/stretchr/testify/require"
)

type rowFixture struct {
	containerClass string

	side       string
	name       string
	symbol     string
	assetClass string
	volume     string
	openPrice  string
	closePrice string
	openDate   string
	closeDate  string
	profit     string
	profitPct  string
}

func (f rowFixture) html() string {
	class := f.containerClass
	if class == "" {
		class = "border-grey-300 border-b flex w-full items-center py-2"
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<div class=%q>`, class)
	if f.side != "" {
		fmt.Fprintf(&b, `<div class="portfolio-styles_typeColumn__Psx6k"><span class="laptop:flex">%s</span></div>`, f.side)
	}
	if f.name != "" || f.symbol != "" || f.assetClass != "" {
		b.WriteString(`<div title="Asset info" class="flex gap-2">`)
		fmt.Fprintf(&b, `<p class="font-semibold text-sm">%s</p>`, f.name)
		fmt.Fprintf(&b, `<span class="text-secondary text-xs">%s</span>`, f.symbol)
		if f.assetClass != "" {
			fmt.Fprintf(&b, `<div class="flex"><div class="mx-1 text-xs">%s</div></div>`, f.assetClass)
		}
		b.WriteString(`</div>`)
	}
	if f.volume != "" {
		fmt.Fprintf(&b, `<div title="Volume"><p>%s</p></div>`, f.volume)
	}
	if f.openPrice != "" {
		fmt.Fprintf(&b, `<div title="Open price"><p>%s</p></div>`, f.openPrice)
	}
	if f.closePrice != "" {
		fmt.Fprintf(&b, `<div title="Close price"><p>%s</p></div>`, f.closePrice)
	}
	if f.openDate != "" {
		fmt.Fprintf(&b, `<div title="Open date"><p class="text-secondary">%s</p></div>`, f.openDate)
	}
	if f.closeDate != "" {
		fmt.Fprintf(&b, `<div title="Close date"><p class="text-secondary">%s</p></div>`, f.closeDate)
	}
	if f.profit != "" || f.profitPct != "" {
		b.WriteString(`<div title="Profit/Loss">`)
		fmt.Fprintf(&b, `<p class="laptop:text-md">%s</p>`, f.profit)
		if f.profitPct != "" {
			fmt.Fprintf(&b, `<div class="laptop:font-semibold text-xs">%s</div>`, f.profitPct)
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}

func pageWith(rows ...string) string {
	return `<html><body><div class="portfolio-container">` +
		strings.Join(rows, "\n") +
		`</div></body></html>`
}

func TestExtractRows(t *testing.T) {
	extractor := NewExtractor()

	t.Run("full row", func(t *testing.T) {
		page := pageWith(rowFixture{
			side:       "Buy",
			name:       "Apple Inc",
			symbol:     "AAPL",
			assetClass: "Stocks",
			volume:     "10",
			openPrice:  "$150.00",
			closePrice: "$160.00",
			openDate:   "01 Mar 2024, 9:30 AM",
			closeDate:  "05 Mar 2024, 3:45 PM",
			profit:     "+$100.00",
			profitPct:  "+6.67%",
		}.html())

		rows, err := extractor.ExtractRows(page)
		require.NoError(t, err)
		require.Len(t, rows, 1)

		require.Equal(t, domain.RawRow{
			domain.FieldSide:       "Buy",
			domain.FieldName:       "Apple Inc",
			domain.FieldSymbol:     "AAPL",
			domain.FieldAssetClass: "Stocks",
			domain.FieldVolume:     "10",
			domain.FieldOpenPrice:  "$150.00",
			domain.FieldClosePrice: "$160.00",
			domain.FieldOpenTime:   "01 Mar 2024, 9:30 AM",
			domain.FieldCloseTime:  "05 Mar 2024, 3:45 PM",
			domain.FieldProfit:     "+$100.00",
			domain.FieldProfitPct:  "+6.67%",
		}, rows[0])
	})

	t.Run("multiple rows keep page order", func(t *testing.T) {
		page := pageWith(
			rowFixture{symbol: "AAPL", closeDate: "05 Mar 2024, 3:45 PM", profit: "+$100.00"}.html(),
			rowFixture{symbol: "TSLA", closeDate: "06 Mar 2024, 1:00 PM", profit: "-$40.00"}.html(),
			rowFixture{symbol: "BTC", closeDate: "07 Mar 2024, 2:15 PM", profit: "+$20.00"}.html(),
		)

		rows, err := extractor.ExtractRows(page)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		require.Equal(t, "AAPL", rows[0][domain.FieldSymbol])
		require.Equal(t, "TSLA", rows[1][domain.FieldSymbol])
		require.Equal(t, "BTC", rows[2][domain.FieldSymbol])
	})

	t.Run("missing cells leave fields absent", func(t *testing.T) {
		page := pageWith(rowFixture{
			symbol:    "TSLA",
			closeDate: "06 Mar 2024, 1:00 PM",
			profit:    "-$40.00",
		}.html())

		rows, err := extractor.ExtractRows(page)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		require.NotContains(t, rows[0], domain.FieldVolume)
		require.NotContains(t, rows[0], domain.FieldOpenTime)
		require.Equal(t, "-$40.00", rows[0][domain.FieldProfit])
	})

	t.Run("entities are decoded and whitespace collapsed", func(t *testing.T) {
		page := pageWith(rowFixture{
			name:      "Procter &amp; Gamble",
			symbol:    "PG",
			closeDate: "06  Mar   2024, 1:00 PM",
			profit:    "+$12.00",
		}.html())

		rows, err := extractor.ExtractRows(page)
		require.NoError(t, err)
		require.Equal(t, "Procter & Gamble", rows[0][domain.FieldName])
		require.Equal(t, "06 Mar 2024, 1:00 PM", rows[0][domain.FieldCloseTime])
	})

	t.Run("class fragment order does not matter", func(t *testing.T) {
		page := pageWith(rowFixture{
			containerClass: "py-2 items-center w-full flex border-b border-grey-300",
			symbol:         "AAPL",
			closeDate:      "05 Mar 2024, 3:45 PM",
			profit:         "+$1.00",
		}.html())

		rows, err := extractor.ExtractRows(page)
		require.NoError(t, err)
		require.Len(t, rows, 1)
	})

	t.Run("chrome containers without known cells are dropped", func(t *testing.T) {
		chrome := `<div class="border-grey-300 flex items-center"><p>Closed positions</p></div>`
		page := pageWith(
			chrome,
			rowFixture{symbol: "AAPL", closeDate: "05 Mar 2024, 3:45 PM", profit: "+$1.00"}.html(),
		)

		rows, err := extractor.ExtractRows(page)
		require.NoError(t, err)
		require.Len(t, rows, 1)
	})

	t.Run("unrelated markup returns ExtractionError", func(t *testing.T) {
		_, err := extractor.ExtractRows(`<html><body><h1>Account settings</h1></body></html>`)
		require.Error(t, err)

		var extractionErr ExtractionError
		require.True(t, errors.As(err, &extractionErr))
	})

	t.Run("only chrome containers returns ExtractionError", func(t *testing.T) {
		_, err := extractor.ExtractRows(pageWith(
			`<div class="border-grey-300 flex items-center"><p>Closed positions</p></div>`,
		))
		require.Error(t, err)

		var extractionErr ExtractionError
		require.True(t, errors.As(err, &extractionErr))
	})
}
