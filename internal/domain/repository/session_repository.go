package repository

import (
	"context"
	"errors"
	"time"

	"outpatient-planner/internal/domain/entity"

	"github.com/google/uuid"
)

// SessionRepository keeps issued sessions and the table uploaded in each.
// Entries expire after the ttl given at creation.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session, ttl time.Duration) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	SaveTable(ctx context.Context, id uuid.UUID, table *entity.ActivityTable) error
	// FindTable returns nil, nil when the session has no upload yet.
	FindTable(ctx context.Context, id uuid.UUID) (*entity.ActivityTable, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ErrSessionExpired is returned when writing to a session that no longer
// exists.
var ErrSessionExpired = errors.New("session expired")
