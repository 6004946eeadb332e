package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session scopes one user's uploaded table. It is the only state the
// planner keeps between requests.
type Session struct {
	ID        uuid.UUID
	IssuedAt  time.Time
	ExpiresAt time.Time
}
