package entity

import "time"

type ReferralPoint struct {
	Date      time.Time
	Referrals float64
}

type AppointmentDischargePoint struct {
	FirstAppointments float64
	Discharges        float64
}

// MonthlyActivity is one seasonality bucket; Month is 1-12.
type MonthlyActivity struct {
	Month                int
	Referrals            float64
	FirstAppointments    float64
	FollowUpAppointments float64
}

// ActivityViews holds the exploratory views. A nil slice means the view was
// skipped because the table lacks a required column; an empty non-nil slice
// means the view applies but no row contributed.
type ActivityViews struct {
	ReferralTrend            []ReferralPoint
	AppointmentsVsDischarges []AppointmentDischargePoint
	Seasonality              []MonthlyActivity
	DateErrors               []DateParseError
}

func (v *ActivityViews) HasReferralTrend() bool {
	return v.ReferralTrend != nil
}

func (v *ActivityViews) HasAppointmentsVsDischarges() bool {
	return v.AppointmentsVsDischarges != nil
}

func (v *ActivityViews) HasSeasonality() bool {
	return v.Seasonality != nil
}
