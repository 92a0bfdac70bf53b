package repository

import (
	"fmt"
	"sync"
	"time"

	"github.com/allanboury/ao-trading-dasboard/internal/domain"

	"github.com/google/uuid"
)

// SessionRepository keeps live sessions in process memory. Nothing about a
// session is durable on purpose; restarting the process forgets every
// pasted dataset.
type SessionRepository interface {
	Add() (*domain.Session, error)
	Get(id uuid.UUID) (*domain.Session, error)
	Remove(id uuid.UUID)
}

func NewSessionRepository(ttl time.Duration) SessionRepository {
	return &sessionRepositoryHandler{
		ttl:      ttl,
		sessions: map[uuid.UUID]*domain.Session{},
	}
}

type sessionRepositoryHandler struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[uuid.UUID]*domain.Session
}

func (h *sessionRepositoryHandler) Add() (*domain.Session, error) {
	session := domain.NewSession()

	h.mu.Lock()
	defer h.mu.Unlock()
	// piggyback cleanup on logins instead of running a sweeper goroutine
	h.purgeExpiredLocked()
	h.sessions[session.ID] = session
	return session, nil
}

func (h *sessionRepositoryHandler) Get(id uuid.UUID) (*domain.Session, error) {
	h.mu.RLock()
	session, ok := h.sessions[id]
	h.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("session %s not found", id)
	}
	if h.expired(session) {
		h.Remove(id)
		return nil, fmt.Errorf("session %s expired", id)
	}
	return session, nil
}

func (h *sessionRepositoryHandler) Remove(id uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, id)
}

func (h *sessionRepositoryHandler) expired(s *domain.Session) bool {
	return h.ttl > 0 && time.Since(s.CreatedAt) > h.ttl
}

func (h *sessionRepositoryHandler) purgeExpiredLocked() {
	for id, s := range h.sessions {
		if h.expired(s) {
			delete(h.sessions, id)
		}
	}
}
