package repository

import (
	"context"
	"fmt"

	"github.com/allanboury/ao-trading-dasboard/internal/domain"
	"github.com/allanboury/ao-trading-dasboard/pkg/exchangerate"

	"github.com/shopspring/decimal"
)

type RatesRepository interface {
	GetLatestRates(ctx context.Context, base string) (*domain.RateTable, error)
}

func NewRatesRepository(client exchangerate.Client) RatesRepository {
	return ratesRepositoryHandler{Client: client}
}

type ratesRepositoryHandler struct {
	Client exchangerate.Client
}

func (h ratesRepositoryHandler) GetLatestRates(ctx context.Context, base string) (*domain.RateTable, error) {
	response, err := h.Client.GetLatestRates(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch exchange rates: %w", err)
	}
	if len(response.ConversionRates) == 0 {
		return nil, fmt.Errorf("rate provider returned no rates for %s", base)
	}

	rates := make(map[string]decimal.Decimal, len(response.ConversionRates))
	for code, rate := range response.ConversionRates {
		rates[code] = decimal.NewFromFloat(rate)
	}

	tableBase := response.BaseCode
	if tableBase == "" {
		tableBase = base
	}
	return &domain.RateTable{
		Base:  tableBase,
		Rates: rates,
	}, nil
}
