package domain

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is the unit of isolation for the dashboard: one pasted dataset,
// one cached rate lookup, nothing shared across users and nothing written
// to disk. A session dies with its token or with the process, whichever
// comes first.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu          sync.RWMutex
	trades      []Trade
	skippedRows int

	ratesFetched bool
	rateTable    *RateTable
	rateErr      error
}

func NewSession() *Session {
	return &Session{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
	}
}

// SetDataset replaces the session's trades. A re-import starts the session
// over, including the skipped-row count.
func (s *Session) SetDataset(trades []Trade, skippedRows int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trades = trades
	s.skippedRows = skippedRows
}

// Dataset returns a copy of the trade slice so callers can filter and sort
// without holding the session lock.
func (s *Session) Dataset() ([]Trade, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Trade, len(s.trades))
	copy(out, s.trades)
	return out, s.skippedRows
}

// CacheRates records the outcome of the session's one rate fetch. Failures
// are cached too; a session never retries a provider that already failed.
func (s *Session) CacheRates(table *RateTable, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ratesFetched = true
	s.rateTable = table
	s.rateErr = err
}

func (s *Session) CachedRates() (*RateTable, error, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rateTable, s.rateErr, s.ratesFetched
}
