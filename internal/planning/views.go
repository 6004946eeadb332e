package planning

import (
	"sort"
	"time"

	"outpatient-planner/internal/domain/entity"
)

// Columns each view needs.
var (
	ReferralTrendColumns            = []string{entity.ColumnDate, entity.ColumnReferrals}
	AppointmentsVsDischargesColumns = []string{entity.ColumnFirstAppointments, entity.ColumnDischarges}
	SeasonalityColumns              = []string{
		entity.ColumnDate,
		entity.ColumnReferrals,
		entity.ColumnFirstAppointments,
		entity.ColumnFollowUpAppointments,
	}
)

// BuildViews derives every exploratory view the table's columns allow.
// Views whose columns are missing are left nil.
func BuildViews(table *entity.ActivityTable) *entity.ActivityViews {
	views := &entity.ActivityViews{}

	dates, dateErrs := parseDates(table)
	if table.HasColumn(entity.ColumnDate) {
		views.DateErrors = dateErrs
	}

	if trend, err := referralTrend(table, dates); err == nil {
		views.ReferralTrend = trend
	}
	if scatter, err := AppointmentsVsDischarges(table); err == nil {
		views.AppointmentsVsDischarges = scatter
	}
	if months, err := seasonality(table, dates); err == nil {
		views.Seasonality = months
	}

	return views
}

// ReferralTrend pairs each dated row with its referrals, ordered by date.
// Rows with unparsable dates are reported and left out.
func ReferralTrend(table *entity.ActivityTable) ([]entity.ReferralPoint, []entity.DateParseError, error) {
	dates, dateErrs := parseDates(table)
	trend, err := referralTrend(table, dates)
	if err != nil {
		return nil, nil, err
	}
	return trend, dateErrs, nil
}

// AppointmentsVsDischarges pairs first appointments with discharges per row.
func AppointmentsVsDischarges(table *entity.ActivityTable) ([]entity.AppointmentDischargePoint, error) {
	if err := table.RequireColumns(AppointmentsVsDischargesColumns...); err != nil {
		return nil, err
	}

	points := make([]entity.AppointmentDischargePoint, 0, table.Len())
	for _, rec := range table.Records {
		points = append(points, entity.AppointmentDischargePoint{
			FirstAppointments: rec.FirstAppointments,
			Discharges:        rec.Discharges,
		})
	}
	return points, nil
}

// Seasonality groups dated rows by calendar month and sums referrals, first
// and follow-up appointments. Only months present in the data appear, in
// ascending order.
func Seasonality(table *entity.ActivityTable) ([]entity.MonthlyActivity, []entity.DateParseError, error) {
	dates, dateErrs := parseDates(table)
	months, err := seasonality(table, dates)
	if err != nil {
		return nil, nil, err
	}
	return months, dateErrs, nil
}

// parseDates returns one entry per record; a zero time marks a row whose
// date could not be parsed.
func parseDates(table *entity.ActivityTable) ([]time.Time, []entity.DateParseError) {
	if !table.HasColumn(entity.ColumnDate) {
		return nil, nil
	}

	dates := make([]time.Time, len(table.Records))
	var errs []entity.DateParseError
	for i, rec := range table.Records {
		t, ok := ParseDate(rec.Date)
		if !ok {
			errs = append(errs, entity.DateParseError{Row: i + 1, Value: rec.Date})
			continue
		}
		dates[i] = t
	}
	return dates, errs
}

func referralTrend(table *entity.ActivityTable, dates []time.Time) ([]entity.ReferralPoint, error) {
	if err := table.RequireColumns(ReferralTrendColumns...); err != nil {
		return nil, err
	}

	points := make([]entity.ReferralPoint, 0, table.Len())
	for i, rec := range table.Records {
		if dates[i].IsZero() {
			continue
		}
		points = append(points, entity.ReferralPoint{Date: dates[i], Referrals: rec.Referrals})
	}
	sort.SliceStable(points, func(a, b int) bool {
		return points[a].Date.Before(points[b].Date)
	})
	return points, nil
}

func seasonality(table *entity.ActivityTable, dates []time.Time) ([]entity.MonthlyActivity, error) {
	if err := table.RequireColumns(SeasonalityColumns...); err != nil {
		return nil, err
	}

	var buckets [13]*entity.MonthlyActivity
	for i, rec := range table.Records {
		if dates[i].IsZero() {
			continue
		}
		month := int(dates[i].Month())
		if buckets[month] == nil {
			buckets[month] = &entity.MonthlyActivity{Month: month}
		}
		b := buckets[month]
		b.Referrals += rec.Referrals
		b.FirstAppointments += rec.FirstAppointments
		b.FollowUpAppointments += rec.FollowUpAppointments
	}

	months := []entity.MonthlyActivity{}
	for m := 1; m <= 12; m++ {
		if buckets[m] != nil {
			months = append(months, *buckets[m])
		}
	}
	return months, nil
}
