package usecase

import (
	"context"
	"errors"
	"fmt"

	"outpatient-planner/config"
	"outpatient-planner/internal/delivery/dto"
	"outpatient-planner/internal/domain/entity"
	"outpatient-planner/internal/domain/repository"
	"outpatient-planner/internal/infrastructure/chart"
	"outpatient-planner/internal/planning"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ChartKind names a rendered chart.
type ChartKind string

const (
	ChartLastYearSummary          ChartKind = "last-year-summary"
	ChartNextYearProjections      ChartKind = "next-year-projections"
	ChartReferralsOverTime        ChartKind = "referrals-over-time"
	ChartAppointmentsVsDischarges ChartKind = "appointments-vs-discharges"
	ChartSeasonality              ChartKind = "seasonality"
)

var (
	ErrUnknownChart     = errors.New("unknown chart")
	ErrChartUnavailable = errors.New("chart unavailable for the uploaded data")
)

type ChartUsecase interface {
	Render(ctx context.Context, sessionID uuid.UUID, kind ChartKind, q *dto.PlanningQuery) ([]byte, error)
}

type chartUsecase struct {
	log      *logrus.Logger
	selector *selector
	renderer *chart.Renderer
}

func NewChartUsecase(log *logrus.Logger, cfg config.PlanningConfig, sessionRepo repository.SessionRepository, renderer *chart.Renderer) ChartUsecase {
	return &chartUsecase{
		log:      log,
		selector: &selector{sessionRepo: sessionRepo, defaults: cfg},
		renderer: renderer,
	}
}

func (u *chartUsecase) Render(ctx context.Context, sessionID uuid.UUID, kind ChartKind, q *dto.PlanningQuery) ([]byte, error) {
	switch kind {
	case ChartLastYearSummary, ChartNextYearProjections, ChartReferralsOverTime,
		ChartAppointmentsVsDischarges, ChartSeasonality:
	default:
		return nil, ErrUnknownChart
	}

	sel, err := u.selector.load(ctx, sessionID, q)
	if err != nil {
		return nil, err
	}

	png, err := u.render(sel, kind)
	if err != nil {
		var missing *entity.MissingColumnError
		if errors.As(err, &missing) || errors.Is(err, chart.ErrNoData) {
			return nil, fmt.Errorf("%w: %v", ErrChartUnavailable, err)
		}
		u.log.Warnf("Failed to render chart %s: %+v", kind, err)
		return nil, err
	}
	return png, nil
}

func (u *chartUsecase) render(sel *selection, kind ChartKind) ([]byte, error) {
	switch kind {
	case ChartLastYearSummary, ChartNextYearProjections:
		prediction, err := planning.PredictReferrals(sel.filtered, sel.growth)
		if err != nil {
			return nil, err
		}
		summary, err := planning.PlanCapacity(sel.filtered, prediction, sel.backlog)
		if err != nil {
			return nil, err
		}
		if kind == ChartLastYearSummary {
			return u.renderer.Bars("Last Year's Activity", summary.LastYearCategories)
		}
		return u.renderer.Bars("Next Year's Projections", summary.ProjectionCategories)

	case ChartReferralsOverTime:
		points, _, err := planning.ReferralTrend(sel.filtered)
		if err != nil {
			return nil, err
		}
		return u.renderer.ReferralTrend(points)

	case ChartAppointmentsVsDischarges:
		points, err := planning.AppointmentsVsDischarges(sel.filtered)
		if err != nil {
			return nil, err
		}
		return u.renderer.AppointmentsVsDischarges(points)

	default:
		months, _, err := planning.Seasonality(sel.filtered)
		if err != nil {
			return nil, err
		}
		return u.renderer.Seasonality(months)
	}
}
