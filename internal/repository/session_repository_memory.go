package repository

import (
	"context"
	"sync"
	"time"

	"outpatient-planner/internal/domain/entity"
	domainRepo "outpatient-planner/internal/domain/repository"

	"github.com/google/uuid"
)

type memorySession struct {
	expiresAt time.Time
	table     *entity.ActivityTable
}

// memorySessionRepository keeps sessions in process. Expired entries are
// dropped when touched and swept whenever a new session is created.
type memorySessionRepository struct {
	mu       sync.Mutex
	now      func() time.Time
	sessions map[uuid.UUID]*memorySession
}

func NewMemorySessionRepository() domainRepo.SessionRepository {
	return newMemorySessionRepository(time.Now)
}

func newMemorySessionRepository(now func() time.Time) *memorySessionRepository {
	return &memorySessionRepository{
		now:      now,
		sessions: make(map[uuid.UUID]*memorySession),
	}
}

func (r *memorySessionRepository) Create(ctx context.Context, session *entity.Session, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for id, s := range r.sessions {
		if !now.Before(s.expiresAt) {
			delete(r.sessions, id)
		}
	}

	r.sessions[session.ID] = &memorySession{expiresAt: now.Add(ttl)}
	return nil
}

func (r *memorySessionRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.live(id) != nil, nil
}

func (r *memorySessionRepository) SaveTable(ctx context.Context, id uuid.UUID, table *entity.ActivityTable) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.live(id)
	if s == nil {
		return domainRepo.ErrSessionExpired
	}
	s.table = table
	return nil
}

func (r *memorySessionRepository) FindTable(ctx context.Context, id uuid.UUID) (*entity.ActivityTable, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.live(id)
	if s == nil {
		return nil, nil
	}
	return s.table, nil
}

func (r *memorySessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	return nil
}

// live returns the session if it exists and has not expired. Callers hold mu.
func (r *memorySessionRepository) live(id uuid.UUID) *memorySession {
	s, ok := r.sessions[id]
	if !ok {
		return nil
	}
	if !r.now().Before(s.expiresAt) {
		delete(r.sessions, id)
		return nil
	}
	return s
}
