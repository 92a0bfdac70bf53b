package convert

import (
	"testing"

	"github.com/allanboury/ao-trading-dasboard/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func usdTable() *domain.RateTable {
	return &domain.RateTable{
		Base: "USD",
		Rates: map[string]decimal.Decimal{
			"USD": decimal.NewFromInt(1),
			"EUR": decimal.RequireFromString("0.9"),
			"JPY": decimal.RequireFromString("150"),
		},
	}
}

func TestOne(t *testing.T) {
	t.Run("same currency needs no table", func(t *testing.T) {
		converted, err := One(domain.Trade{Currency: "USD", Profit: decimal.NewFromInt(100)}, nil, "USD")
		require.NoError(t, err)
		require.True(t, converted.Converted)
		require.Equal(t, "USD", converted.DisplayCurrency)
		require.Equal(t, "100", converted.DisplayProfit.String())
	})

	t.Run("cross rate through the base", func(t *testing.T) {
		converted, err := One(domain.Trade{Currency: "EUR", Profit: decimal.NewFromInt(90)}, usdTable(), "JPY")
		require.NoError(t, err)
		require.True(t, converted.Converted)
		require.Equal(t, "JPY", converted.DisplayCurrency)
		// 90 EUR -> 100 USD -> 15000 JPY
		require.Equal(t, "15000", converted.DisplayProfit.String())
	})

	t.Run("missing pair keeps the source amount", func(t *testing.T) {
		converted, err := One(domain.Trade{Currency: "GBP", Profit: decimal.NewFromInt(55)}, usdTable(), "USD")
		require.Error(t, err)
		require.IsType(t, RateUnavailableError{}, err)
		require.False(t, converted.Converted)
		require.Equal(t, "GBP", converted.DisplayCurrency)
		require.Equal(t, "55", converted.DisplayProfit.String())
	})

	t.Run("nil table converts nothing but same currency", func(t *testing.T) {
		_, err := One(domain.Trade{Currency: "EUR", Profit: decimal.NewFromInt(1)}, nil, "USD")
		require.Error(t, err)
	})

	t.Run("round trip restores the amount", func(t *testing.T) {
		original := domain.Trade{Currency: "USD", Profit: decimal.RequireFromString("123.45")}

		toEur, err := One(original, usdTable(), "EUR")
		require.NoError(t, err)

		back, err := One(domain.Trade{Currency: "EUR", Profit: toEur.DisplayProfit}, usdTable(), "USD")
		require.NoError(t, err)

		diff := back.DisplayProfit.Sub(original.Profit).Abs()
		require.True(t, diff.LessThan(decimal.RequireFromString("0.000001")),
			"round trip drifted by %s", diff)
	})
}

func TestApply(t *testing.T) {
	trades := []domain.Trade{
		{Symbol: "AAPL", Currency: "USD", Profit: decimal.NewFromInt(100)},
		{Symbol: "SAP", Currency: "EUR", Profit: decimal.NewFromInt(10)},
		{Symbol: "VOD", Currency: "GBP", Profit: decimal.NewFromInt(5)},
	}

	converted, missing := Apply(trades, usdTable(), "USD")
	require.Len(t, converted, 3)
	require.Len(t, missing, 1)
	require.Equal(t, "GBP", missing[0].From)

	require.True(t, converted[0].Converted)
	require.True(t, converted[1].Converted)
	require.False(t, converted[2].Converted)

	// 10 EUR / 0.9 = 11.11... USD
	require.True(t, converted[1].DisplayProfit.Sub(decimal.RequireFromString("11.1111")).Abs().
		LessThan(decimal.RequireFromString("0.001")))
}
