package usecase

import (
	"context"
	"errors"

	"outpatient-planner/config"
	"outpatient-planner/internal/delivery/dto"
	"outpatient-planner/internal/domain/entity"
	"outpatient-planner/internal/domain/repository"
	"outpatient-planner/internal/planning"

	"github.com/google/uuid"
)

var (
	ErrNoActivityData    = errors.New("no activity data uploaded for this session")
	ErrInvalidParameters = errors.New("growth rate must be 0-50 and backlog target non-negative")
)

// selection is the uploaded table narrowed by the chosen specialty,
// together with the resolved controls.
type selection struct {
	specialty   string
	specialties []string
	filtered    *entity.ActivityTable
	growth      entity.GrowthAssumption
	backlog     entity.BacklogTarget
}

// selector loads a session's table and resolves the dashboard controls.
type selector struct {
	sessionRepo repository.SessionRepository
	defaults    config.PlanningConfig
}

func (s *selector) load(ctx context.Context, sessionID uuid.UUID, q *dto.PlanningQuery) (*selection, error) {
	if q == nil {
		q = &dto.PlanningQuery{}
	}

	growth, backlog, err := s.params(q)
	if err != nil {
		return nil, err
	}

	table, err := s.sessionRepo.FindTable(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, ErrNoActivityData
	}

	sel := &selection{
		specialties: planning.Specialties(table),
		filtered:    table,
		growth:      growth,
		backlog:     backlog,
	}

	// Without a specialty column the filter does not apply.
	if !table.HasColumn(entity.ColumnSpecialty) {
		return sel, nil
	}

	sel.specialty = q.Specialty
	if sel.specialty == "" {
		sel.specialty, _ = planning.DefaultSpecialty(table)
	}
	sel.filtered = planning.FilterBySpecialty(table, sel.specialty)
	return sel, nil
}

func (s *selector) params(q *dto.PlanningQuery) (entity.GrowthAssumption, entity.BacklogTarget, error) {
	growth := entity.GrowthAssumption(s.defaults.DefaultGrowthRate)
	backlog := entity.BacklogTarget(s.defaults.DefaultBacklogTarget)
	if q.GrowthRate != nil {
		growth = entity.GrowthAssumption(*q.GrowthRate)
	}
	if q.BacklogTarget != nil {
		backlog = entity.BacklogTarget(*q.BacklogTarget)
	}
	if !growth.Valid() || !backlog.Valid() {
		return 0, 0, ErrInvalidParameters
	}
	return growth, backlog, nil
}

// skippedFeature turns a missing column error into a skipped feature entry.
func skippedFeature(feature string, err error) (dto.SkippedFeature, bool) {
	var missing *entity.MissingColumnError
	if !errors.As(err, &missing) {
		return dto.SkippedFeature{}, false
	}
	return dto.SkippedFeature{Feature: feature, MissingColumn: missing.Column}, true
}
