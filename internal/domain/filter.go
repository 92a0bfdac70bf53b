package domain

import "time"

// FilterCriteria narrows a session's trades before metrics are computed.
// Zero-value criteria match everything. Date bounds are inclusive and
// compared on the close date (day precision, UTC).
type FilterCriteria struct {
	AssetClasses []AssetClass
	StartDate    *time.Time
	EndDate      *time.Time
}

func (f FilterCriteria) Matches(t Trade) bool {
	if len(f.AssetClasses) > 0 {
		found := false
		for _, c := range f.AssetClasses {
			if t.AssetClass == c {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	closeDay := dayOf(t.CloseTime)
	if f.StartDate != nil && closeDay.Before(dayOf(*f.StartDate)) {
		return false
	}
	if f.EndDate != nil && closeDay.After(dayOf(*f.EndDate)) {
		return false
	}
	return true
}

// FilterTrades returns the subset of trades matching f, preserving order.
func FilterTrades(trades []Trade, f FilterCriteria) []Trade {
	out := []Trade{}
	for _, t := range trades {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
