package planning

import (
	"errors"
	"testing"

	"outpatient-planner/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fullColumns = []string{
	entity.ColumnSpecialty,
	entity.ColumnDate,
	entity.ColumnReferrals,
	entity.ColumnFirstAppointments,
	entity.ColumnFollowUpAppointments,
	entity.ColumnDischarges,
}

func sampleTable() *entity.ActivityTable {
	return &entity.ActivityTable{
		Columns: fullColumns,
		Records: []entity.ActivityRecord{
			{Specialty: "Cardiology", Date: "2023-01-15", Referrals: 100, FirstAppointments: 50, FollowUpAppointments: 80, Discharges: 30},
			{Specialty: "Dermatology", Date: "2023-01-20", Referrals: 40, FirstAppointments: 20, FollowUpAppointments: 10, Discharges: 15},
			{Specialty: "Cardiology", Date: "2023-02-10", Referrals: 200, FirstAppointments: 50, FollowUpAppointments: 60, Discharges: 45},
			{Specialty: "Cardiology", Date: "not a date", Referrals: 7, FirstAppointments: 3, FollowUpAppointments: 2, Discharges: 1},
		},
	}
}

func TestSpecialtiesFirstSeenOrder(t *testing.T) {
	table := sampleTable()
	table.Records = append(table.Records, entity.ActivityRecord{Specialty: ""}, entity.ActivityRecord{Specialty: "Audiology"})

	assert.Equal(t, []string{"Cardiology", "Dermatology", "Audiology"}, Specialties(table))

	def, ok := DefaultSpecialty(table)
	require.True(t, ok)
	assert.Equal(t, "Cardiology", def)
}

func TestDefaultSpecialtyEmptyTable(t *testing.T) {
	_, ok := DefaultSpecialty(&entity.ActivityTable{Columns: fullColumns})
	assert.False(t, ok)
}

func TestFilterBySpecialtyKeepsOrderAndSource(t *testing.T) {
	table := sampleTable()

	filtered := FilterBySpecialty(table, "Cardiology")

	require.Equal(t, 3, filtered.Len())
	assert.Equal(t, []float64{100, 200, 7}, []float64{
		filtered.Records[0].Referrals,
		filtered.Records[1].Referrals,
		filtered.Records[2].Referrals,
	})
	for _, rec := range filtered.Records {
		assert.Equal(t, "Cardiology", rec.Specialty)
	}
	assert.Equal(t, 4, table.Len(), "source table must not change")

	filtered.Columns[0] = "changed"
	assert.Equal(t, entity.ColumnSpecialty, table.Columns[0])
}

func TestFilterBySpecialtyNoMatch(t *testing.T) {
	filtered := FilterBySpecialty(sampleTable(), "Oncology")

	assert.Equal(t, 0, filtered.Len())
	assert.Equal(t, entity.ActivityTotals{}, Totals(filtered))
}

func TestPredictReferrals(t *testing.T) {
	table := &entity.ActivityTable{
		Columns: fullColumns,
		Records: []entity.ActivityRecord{{Referrals: 100}, {Referrals: 200}},
	}

	for _, tc := range []struct {
		growth entity.GrowthAssumption
		want   float64
	}{
		{0, 300},
		{10, 330},
		{50, 450},
	} {
		got, err := PredictReferrals(table, tc.growth)
		require.NoError(t, err)
		assert.InDelta(t, tc.want, got.PredictedReferrals, 1e-9)
		assert.Equal(t, 300.0, got.LastYearReferrals)
		assert.Equal(t, tc.growth, got.GrowthRate)
	}
}

func TestPredictReferralsZeroGrowthIsExact(t *testing.T) {
	table := &entity.ActivityTable{
		Columns: fullColumns,
		Records: []entity.ActivityRecord{{Referrals: 0.1}, {Referrals: 0.2}},
	}

	got, err := PredictReferrals(table, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.1+0.2, got.PredictedReferrals)
}

func TestPredictReferralsMissingColumn(t *testing.T) {
	table := &entity.ActivityTable{Columns: []string{entity.ColumnSpecialty}}

	_, err := PredictReferrals(table, 10)

	var missing *entity.MissingColumnError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, entity.ColumnReferrals, missing.Column)
}

func TestPlanCapacityExample(t *testing.T) {
	table := &entity.ActivityTable{
		Columns: fullColumns,
		Records: []entity.ActivityRecord{
			{Referrals: 100, FirstAppointments: 50, FollowUpAppointments: 5, Discharges: 2},
			{Referrals: 200, FirstAppointments: 50, FollowUpAppointments: 7, Discharges: 3},
		},
	}
	prediction, err := PredictReferrals(table, 10)
	require.NoError(t, err)

	summary, err := PlanCapacity(table, prediction, 20)
	require.NoError(t, err)

	assert.InDelta(t, 330, summary.PredictedReferrals, 1e-9)
	assert.InDelta(t, 350, summary.TotalAppointmentsNeeded, 1e-9)
	assert.Equal(t, 100.0, summary.LastYear.FirstAppointments)
	assert.Equal(t, entity.PercentComputed, summary.PercentageChange.Kind)
	assert.InDelta(t, 250, summary.PercentageChange.Value, 1e-9)

	require.Len(t, summary.Lines, 3)
	assert.Equal(t, entity.MetricPredictedReferrals, summary.Lines[0].Metric)
	assert.Equal(t, entity.PercentGrowthRate, summary.Lines[0].PercentageChange.Kind)
	assert.Equal(t, 10.0, summary.Lines[0].PercentageChange.Value)
	assert.Equal(t, entity.MetricBacklogReduction, summary.Lines[1].Metric)
	assert.Equal(t, entity.PercentNotApplicable, summary.Lines[1].PercentageChange.Kind)
	assert.Equal(t, 20.0, summary.Lines[1].Total)
	assert.Equal(t, entity.MetricTotalAppointmentsNeeded, summary.Lines[2].Metric)

	assert.Equal(t, []entity.CategoryValue{
		{Category: entity.CategoryFirstAppointments, Value: 100},
		{Category: entity.CategoryFollowUpAppointments, Value: 12},
		{Category: entity.CategoryDischarges, Value: 5},
	}, summary.LastYearCategories)
	assert.Len(t, summary.ProjectionCategories, 2)
}

func TestPlanCapacityTotalIsPredictionPlusBacklog(t *testing.T) {
	table := sampleTable()
	prediction := entity.ReferralPrediction{PredictedReferrals: 123.45, GrowthRate: 5}

	for _, backlog := range []entity.BacklogTarget{0, 1, 100, 100000} {
		summary, err := PlanCapacity(table, prediction, backlog)
		require.NoError(t, err)
		assert.Equal(t, 123.45+float64(backlog), summary.TotalAppointmentsNeeded)
	}
}

func TestPlanCapacityZeroFirstAppointments(t *testing.T) {
	empty := FilterBySpecialty(sampleTable(), "Oncology")
	prediction, err := PredictReferrals(empty, 10)
	require.NoError(t, err)

	summary, err := PlanCapacity(empty, prediction, 100)
	require.NoError(t, err)

	assert.Equal(t, entity.PercentUndefined, summary.PercentageChange.Kind)
	assert.False(t, summary.PercentageChange.Defined())
	assert.Equal(t, 100.0, summary.TotalAppointmentsNeeded)
}

func TestPlanCapacityMissingColumn(t *testing.T) {
	table := &entity.ActivityTable{Columns: []string{entity.ColumnReferrals, entity.ColumnFirstAppointments}}

	_, err := PlanCapacity(table, entity.ReferralPrediction{}, 0)

	var missing *entity.MissingColumnError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, entity.ColumnFollowUpAppointments, missing.Column)
}

func TestPercentageChange(t *testing.T) {
	pct, err := PercentageChange(150, 100)
	require.NoError(t, err)
	assert.InDelta(t, 50, pct, 1e-9)

	_, err = PercentageChange(150, 0)
	assert.ErrorIs(t, err, entity.ErrDivisionUndefined)
}
