package convert

import (
	"fmt"

	"github.com/allanboury/ao-trading-dasboard/internal/domain"
	"github.com/allanboury/ao-trading-dasboard/internal/logger"
)

// RateUnavailableError flags one currency pair the rate table cannot
// serve. Trades priced in that pair stay on screen in their source
// currency; conversion failures are never dataset failures.
type RateUnavailableError struct {
	From string
	To   string
}

func (e RateUnavailableError) Error() string {
	return fmt.Sprintf("no exchange rate available for %s->%s", e.From, e.To)
}

// One converts a single trade into the target currency. table may be nil
// when no rate snapshot could be fetched at all; only same-currency trades
// convert then.
func One(t domain.Trade, table *domain.RateTable, target string) (domain.ConvertedTrade, error) {
	out := domain.ConvertedTrade{
		Trade:           t,
		DisplayCurrency: t.Currency,
		DisplayProfit:   t.Profit,
	}

	if t.Currency == target {
		out.DisplayCurrency = target
		out.Converted = true
		return out, nil
	}
	if table == nil {
		return out, RateUnavailableError{From: t.Currency, To: target}
	}
	display, ok := table.Convert(t.Profit, t.Currency, target)
	if !ok {
		return out, RateUnavailableError{From: t.Currency, To: target}
	}

	out.DisplayCurrency = target
	out.DisplayProfit = display
	out.Converted = true
	return out, nil
}

// Apply converts every trade, collecting the pairs that had no rate. The
// returned slice always has one entry per input trade.
func Apply(trades []domain.Trade, table *domain.RateTable, target string) ([]domain.ConvertedTrade, []RateUnavailableError) {
	out := make([]domain.ConvertedTrade, 0, len(trades))
	missing := []RateUnavailableError{}
	for _, t := range trades {
		converted, err := One(t, table, target)
		if err != nil {
			if rateErr, ok := err.(RateUnavailableError); ok {
				missing = append(missing, rateErr)
			} else {
				logger.Error(err)
			}
		}
		out = append(out, converted)
	}
	return out, missing
}
