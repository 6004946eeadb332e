package planning

import "outpatient-planner/internal/domain/entity"

// Totals sums each numeric column over the table. Missing or non-numeric
// cells were read as zero, so an empty table sums to zero everywhere.
func Totals(table *entity.ActivityTable) entity.ActivityTotals {
	var totals entity.ActivityTotals
	if table == nil {
		return totals
	}
	for _, rec := range table.Records {
		totals.Referrals += rec.Referrals
		totals.FirstAppointments += rec.FirstAppointments
		totals.FollowUpAppointments += rec.FollowUpAppointments
		totals.Discharges += rec.Discharges
	}
	return totals
}

// PredictReferrals scales last year's referral total by the growth
// assumption. The result is not rounded.
func PredictReferrals(table *entity.ActivityTable, growth entity.GrowthAssumption) (entity.ReferralPrediction, error) {
	if err := table.RequireColumns(entity.ColumnReferrals); err != nil {
		return entity.ReferralPrediction{}, err
	}

	lastYear := Totals(table).Referrals
	return entity.ReferralPrediction{
		LastYearReferrals:  lastYear,
		PredictedReferrals: lastYear * growth.Multiplier(),
		GrowthRate:         growth,
	}, nil
}
