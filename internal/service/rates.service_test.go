package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/allanboury/ao-trading-dasboard/internal/domain"
	mock_repository "github.com/allanboury/ao-trading-dasboard/internal/repository/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSessionRates(t *testing.T) {
	table := &domain.RateTable{
		Base: "USD",
		Rates: map[string]decimal.Decimal{
			"USD": decimal.NewFromInt(1),
			"EUR": decimal.RequireFromString("0.9"),
		},
	}

	t.Run("fetches once per session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ratesRepository := mock_repository.NewMockRatesRepository(ctrl)
		ratesService := NewRatesService(ratesRepository)
		session := domain.NewSession()

		ratesRepository.EXPECT().
			GetLatestRates(gomock.Any(), "USD").
			Return(table, nil).
			Times(1)

		got, err := ratesService.SessionRates(context.Background(), session, "USD")
		require.NoError(t, err)
		require.Same(t, table, got)

		// second call must come from the session cache
		got, err = ratesService.SessionRates(context.Background(), session, "USD")
		require.NoError(t, err)
		require.Same(t, table, got)
	})

	t.Run("failures are cached too", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ratesRepository := mock_repository.NewMockRatesRepository(ctrl)
		ratesService := NewRatesService(ratesRepository)
		session := domain.NewSession()

		ratesRepository.EXPECT().
			GetLatestRates(gomock.Any(), "USD").
			Return(nil, fmt.Errorf("provider down")).
			Times(1)

		_, err := ratesService.SessionRates(context.Background(), session, "USD")
		require.ErrorContains(t, err, "provider down")

		_, err = ratesService.SessionRates(context.Background(), session, "USD")
		require.ErrorContains(t, err, "provider down")
	})

	t.Run("sessions do not share caches", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ratesRepository := mock_repository.NewMockRatesRepository(ctrl)
		ratesService := NewRatesService(ratesRepository)

		ratesRepository.EXPECT().
			GetLatestRates(gomock.Any(), "USD").
			Return(table, nil).
			Times(2)

		_, err := ratesService.SessionRates(context.Background(), domain.NewSession(), "USD")
		require.NoError(t, err)
		_, err = ratesService.SessionRates(context.Background(), domain.NewSession(), "USD")
		require.NoError(t, err)
	})
}
