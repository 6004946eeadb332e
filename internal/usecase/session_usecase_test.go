package usecase

import (
	"context"
	"testing"

	"outpatient-planner/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	session, err := f.sessions.StartSession(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)

	id, err := f.sessions.ValidateSession(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.SessionID, id.String())

	require.NoError(t, f.sessions.EndSession(ctx, id))

	_, err = f.sessions.ValidateSession(ctx, session.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, []string{entity.AuditActionSessionStart, entity.AuditActionSessionEnd}, f.audit.actions())
}

func TestValidateSessionRejectsGarbage(t *testing.T) {
	f := newFixture(t)

	_, err := f.sessions.ValidateSession(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionsDoNotShareTables(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first := f.startWithUpload(t, activityCSV)

	other, err := f.sessions.StartSession(ctx)
	require.NoError(t, err)
	otherID, err := uuid.Parse(other.SessionID)
	require.NoError(t, err)

	_, err = f.planning.Predict(ctx, otherID, nil)
	assert.ErrorIs(t, err, ErrNoActivityData)

	_, err = f.planning.Predict(ctx, first, nil)
	assert.NoError(t, err)
}
