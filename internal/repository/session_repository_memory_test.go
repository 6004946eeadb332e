package repository

import (
	"context"
	"testing"
	"time"

	"outpatient-planner/internal/domain/entity"
	domainRepo "outpatient-planner/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func TestMemorySessionRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
	repo := newMemorySessionRepository(clock.now)
	session := &entity.Session{ID: uuid.New(), IssuedAt: clock.t}

	require.NoError(t, repo.Create(ctx, session, time.Hour))

	ok, err := repo.Exists(ctx, session.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	table, err := repo.FindTable(ctx, session.ID)
	require.NoError(t, err)
	assert.Nil(t, table)

	uploaded := &entity.ActivityTable{Columns: []string{"specialty"}, Records: []entity.ActivityRecord{{Specialty: "ENT"}}}
	require.NoError(t, repo.SaveTable(ctx, session.ID, uploaded))

	table, err = repo.FindTable(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, uploaded, table)

	replacement := &entity.ActivityTable{Columns: []string{"specialty"}}
	require.NoError(t, repo.SaveTable(ctx, session.ID, replacement))
	table, err = repo.FindTable(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())

	require.NoError(t, repo.Delete(ctx, session.ID))
	ok, err = repo.Exists(ctx, session.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemorySessionRepositoryExpiry(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
	repo := newMemorySessionRepository(clock.now)
	session := &entity.Session{ID: uuid.New(), IssuedAt: clock.t}
	require.NoError(t, repo.Create(ctx, session, time.Minute))

	clock.t = clock.t.Add(time.Minute)

	ok, err := repo.Exists(ctx, session.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	err = repo.SaveTable(ctx, session.ID, &entity.ActivityTable{})
	assert.ErrorIs(t, err, domainRepo.ErrSessionExpired)
}

func TestMemorySessionRepositoryUnknownSession(t *testing.T) {
	repo := NewMemorySessionRepository()

	table, err := repo.FindTable(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, table)
}

func TestMemorySessionRepositorySweepsOnCreate(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
	repo := newMemorySessionRepository(clock.now)

	old := &entity.Session{ID: uuid.New()}
	require.NoError(t, repo.Create(ctx, old, time.Minute))

	clock.t = clock.t.Add(2 * time.Minute)
	require.NoError(t, repo.Create(ctx, &entity.Session{ID: uuid.New()}, time.Minute))

	assert.Len(t, repo.sessions, 1)
	_, found := repo.sessions[old.ID]
	assert.False(t, found)
}
