package planning

import "outpatient-planner/internal/domain/entity"

// PercentageChange returns (total/baseline - 1) * 100. A zero baseline
// yields ErrDivisionUndefined.
func PercentageChange(total, baseline float64) (float64, error) {
	if baseline == 0 {
		return 0, entity.ErrDivisionUndefined
	}
	return (total/baseline - 1) * 100, nil
}

// PlanCapacity derives the appointments needed next year to absorb the
// predicted referrals and clear the backlog target. The percentage change
// is measured against last year's first appointments only.
func PlanCapacity(table *entity.ActivityTable, prediction entity.ReferralPrediction, backlog entity.BacklogTarget) (*entity.ProjectionSummary, error) {
	if err := table.RequireColumns(
		entity.ColumnFirstAppointments,
		entity.ColumnFollowUpAppointments,
		entity.ColumnDischarges,
	); err != nil {
		return nil, err
	}

	totals := Totals(table)
	totalNeeded := prediction.PredictedReferrals + float64(backlog)

	change := entity.PercentChange{Kind: entity.PercentUndefined}
	if pct, err := PercentageChange(totalNeeded, totals.FirstAppointments); err == nil {
		change = entity.PercentChange{Kind: entity.PercentComputed, Value: pct}
	}

	return &entity.ProjectionSummary{
		PredictedReferrals:      prediction.PredictedReferrals,
		BacklogReduction:        backlog,
		TotalAppointmentsNeeded: totalNeeded,
		PercentageChange:        change,
		LastYear:                totals,
		Lines: []entity.SummaryLine{
			{
				Metric: entity.MetricPredictedReferrals,
				Total:  prediction.PredictedReferrals,
				PercentageChange: entity.PercentChange{
					Kind:  entity.PercentGrowthRate,
					Value: float64(prediction.GrowthRate),
				},
			},
			{
				Metric:           entity.MetricBacklogReduction,
				Total:            float64(backlog),
				PercentageChange: entity.PercentChange{Kind: entity.PercentNotApplicable},
			},
			{
				Metric:           entity.MetricTotalAppointmentsNeeded,
				Total:            totalNeeded,
				PercentageChange: change,
			},
		},
		LastYearCategories: []entity.CategoryValue{
			{Category: entity.CategoryFirstAppointments, Value: totals.FirstAppointments},
			{Category: entity.CategoryFollowUpAppointments, Value: totals.FollowUpAppointments},
			{Category: entity.CategoryDischarges, Value: totals.Discharges},
		},
		ProjectionCategories: []entity.CategoryValue{
			{Category: entity.MetricPredictedReferrals, Value: prediction.PredictedReferrals},
			{Category: entity.MetricBacklogReduction, Value: float64(backlog)},
		},
	}, nil
}
