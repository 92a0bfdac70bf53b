package service

import (
	"context"

	"github.com/allanboury/ao-trading-dasboard/internal/domain"
	"github.com/allanboury/ao-trading-dasboard/internal/logger"
	"github.com/allanboury/ao-trading-dasboard/internal/repository"
)

// RatesService hands each session its one rate table. The first caller
// triggers the provider fetch; everyone after gets the cached outcome,
// including a cached failure. A session never retries the provider.
type RatesService interface {
	SessionRates(ctx context.Context, session *domain.Session, base string) (*domain.RateTable, error)
}

type ratesServiceHandler struct {
	RatesRepository repository.RatesRepository
}

func NewRatesService(ratesRepository repository.RatesRepository) RatesService {
	return &ratesServiceHandler{
		RatesRepository: ratesRepository,
	}
}

func (h *ratesServiceHandler) SessionRates(ctx context.Context, session *domain.Session, base string) (*domain.RateTable, error) {
	if table, err, fetched := session.CachedRates(); fetched {
		return table, err
	}

	table, err := h.RatesRepository.GetLatestRates(ctx, base)
	if err != nil {
		logger.Error(err)
	}
	session.CacheRates(table, err)
	return table, err
}
