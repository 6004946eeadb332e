package usecase

import (
	"bytes"
	"context"
	"testing"
	"time"

	"outpatient-planner/config"
	"outpatient-planner/internal/infrastructure/chart"
	"outpatient-planner/internal/repository"
	"outpatient-planner/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG")

func TestChartRender(t *testing.T) {
	ctx := context.Background()
	log := testLogger()
	repo := repository.NewMemorySessionRepository()
	audit := noopAudit()
	sessions := NewSessionUsecase(log, repo, jwt.NewJWTService(config.SessionConfig{Secret: "s", TTL: time.Hour}), audit)
	planning := NewPlanningUsecase(log, planningDefaults, repo, audit)
	charts := NewChartUsecase(log, planningDefaults, repo, chart.NewRenderer())

	session, err := sessions.StartSession(ctx)
	require.NoError(t, err)
	id, err := sessions.ValidateSession(ctx, session.Token)
	require.NoError(t, err)

	_, err = charts.Render(ctx, id, ChartSeasonality, nil)
	assert.ErrorIs(t, err, ErrNoActivityData)

	_, err = planning.Upload(ctx, id, "data.csv", bytes.NewReader([]byte(activityCSV)))
	require.NoError(t, err)

	for _, kind := range []ChartKind{
		ChartLastYearSummary,
		ChartNextYearProjections,
		ChartReferralsOverTime,
		ChartAppointmentsVsDischarges,
		ChartSeasonality,
	} {
		png, err := charts.Render(ctx, id, kind, nil)
		require.NoError(t, err, kind)
		assert.True(t, bytes.HasPrefix(png, pngMagic), kind)
	}

	_, err = charts.Render(ctx, id, ChartKind("pie"), nil)
	assert.ErrorIs(t, err, ErrUnknownChart)
}

func TestChartUnavailableWithoutColumns(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id := f.startWithUpload(t, "specialty,referrals\nENT,10\n")
	charts := NewChartUsecase(testLogger(), planningDefaults, f.repo, chart.NewRenderer())

	for _, kind := range []ChartKind{ChartLastYearSummary, ChartReferralsOverTime, ChartAppointmentsVsDischarges, ChartSeasonality} {
		_, err := charts.Render(ctx, id, kind, nil)
		assert.ErrorIs(t, err, ErrChartUnavailable, kind)
	}
}
