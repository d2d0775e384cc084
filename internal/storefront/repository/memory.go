package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tair/lightspace/internal/storefront/domain"
	"github.com/tair/lightspace/pkg/logger"
)

type memoryEntry struct {
	session   *domain.Session
	expiresAt time.Time
}

// MemorySessionRepository keeps sessions in process memory.
// Stored values are never handed out; callers always get a copy.
type MemorySessionRepository struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

// NewMemorySessionRepository creates an in-memory store. A ttl of zero
// keeps sessions until deleted.
func NewMemorySessionRepository(ttl time.Duration) *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (r *MemorySessionRepository) expiry() time.Time {
	if r.ttl <= 0 {
		return time.Time{}
	}
	return r.now().Add(r.ttl)
}

func (r *MemorySessionRepository) expired(e memoryEntry, now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// lookup returns the live entry for id, dropping it if expired. Caller holds mu.
func (r *MemorySessionRepository) lookup(id string) (memoryEntry, bool) {
	e, ok := r.sessions[id]
	if !ok {
		return memoryEntry{}, false
	}
	if r.expired(e, r.now()) {
		delete(r.sessions, id)
		return memoryEntry{}, false
	}
	return e, true
}

// Create stores a new session
func (r *MemorySessionRepository) Create(ctx context.Context, s *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.lookup(s.ID); ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionExists, s.ID)
	}
	r.sessions[s.ID] = memoryEntry{session: s.Clone(), expiresAt: r.expiry()}
	return nil
}

// Get returns a copy of the session
func (r *MemorySessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return e.session.Clone(), nil
}

// Update applies fn to a copy and stores it only if fn succeeds
func (r *MemorySessionRepository) Update(ctx context.Context, id string, fn func(s *domain.Session) error) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}

	s := e.session.Clone()
	if err := fn(s); err != nil {
		return nil, err
	}
	s.UpdatedAt = r.now().UTC()

	r.sessions[id] = memoryEntry{session: s, expiresAt: r.expiry()}
	return s.Clone(), nil
}

// Delete removes the session
func (r *MemorySessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.lookup(id); !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	delete(r.sessions, id)
	return nil
}

// Count returns the number of live sessions
func (r *MemorySessionRepository) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id := range r.sessions {
		if _, ok := r.lookup(id); ok {
			n++
		}
	}
	return n, nil
}

// Sweep removes every expired session and returns how many were dropped
func (r *MemorySessionRepository) Sweep(ctx context.Context) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	n := 0
	for id, e := range r.sessions {
		if r.expired(e, now) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

// RunSweeper sweeps every interval until ctx is done
func (r *MemorySessionRepository) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(ctx); n > 0 {
				logger.Debug(ctx).Int("expired", n).Msg("Swept expired sessions")
			}
		}
	}
}

// Ping always succeeds
func (r *MemorySessionRepository) Ping(ctx context.Context) error {
	return nil
}
