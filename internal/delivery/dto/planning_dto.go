package dto

import "time"

// Request DTOs

// PlanningQuery carries the dashboard controls. Nil numeric fields fall
// back to the configured defaults.
type PlanningQuery struct {
	Specialty     string `json:"specialty"`
	GrowthRate    *int   `json:"growth_rate" validate:"omitempty,gte=0,lte=50"`
	BacklogTarget *int   `json:"backlog_target" validate:"omitempty,gte=0"`
}

type ExportQuery struct {
	PlanningQuery
	Format string `json:"format" validate:"required,oneof=csv xlsx"`
}

// Response DTOs

type SessionResponse struct {
	SessionID string    `json:"session_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ActivityRecordResponse struct {
	Specialty            string  `json:"specialty"`
	Date                 string  `json:"date,omitempty"`
	Referrals            float64 `json:"referrals"`
	FirstAppointments    float64 `json:"first_appointments"`
	FollowUpAppointments float64 `json:"follow_up_appointments"`
	Discharges           float64 `json:"discharges"`
}

type UploadResponse struct {
	FileName    string                   `json:"file_name"`
	Rows        int                      `json:"rows"`
	Columns     []string                 `json:"columns"`
	Specialties []string                 `json:"specialties"`
	Preview     []ActivityRecordResponse `json:"preview"`
}

type SpecialtyListResponse struct {
	Specialties []string `json:"specialties"`
	Default     string   `json:"default"`
}

type PredictionResponse struct {
	Specialty                 string                   `json:"specialty"`
	FilteredRows              int                      `json:"filtered_rows"`
	Preview                   []ActivityRecordResponse `json:"preview"`
	GrowthRate                int                      `json:"growth_rate"`
	LastYearReferrals         float64                  `json:"last_year_referrals"`
	PredictedReferrals        float64                  `json:"predicted_referrals"`
	PredictedReferralsDisplay string                   `json:"predicted_referrals_display"`
}

type LastYearSummaryResponse struct {
	FirstAppointments    float64 `json:"first_appointments"`
	FollowUpAppointments float64 `json:"follow_up_appointments"`
	Discharges           float64 `json:"discharges"`
}

type SummaryLineResponse struct {
	Metric           string  `json:"metric"`
	Total            float64 `json:"total"`
	PercentageChange string  `json:"percentage_change"`
}

type CategoryValueResponse struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type PlanResponse struct {
	Prediction                     PredictionResponse      `json:"prediction"`
	LastYear                       LastYearSummaryResponse `json:"last_year"`
	BacklogReduction               int                     `json:"backlog_reduction"`
	TotalAppointmentsNeeded        float64                 `json:"total_appointments_needed"`
	TotalAppointmentsNeededDisplay string                  `json:"total_appointments_needed_display"`
	PercentageChange               *float64                `json:"percentage_change"`
	PercentageChangeDefined        bool                    `json:"percentage_change_defined"`
	SummaryTable                   []SummaryLineResponse   `json:"summary_table"`
	LastYearChart                  []CategoryValueResponse `json:"last_year_chart"`
	ProjectionChart                []CategoryValueResponse `json:"projection_chart"`
}

type ReferralPointResponse struct {
	Date      string  `json:"date"`
	Referrals float64 `json:"referrals"`
}

type AppointmentDischargePointResponse struct {
	FirstAppointments float64 `json:"first_appointments"`
	Discharges        float64 `json:"discharges"`
}

type MonthlyActivityResponse struct {
	Month                int     `json:"month"`
	Referrals            float64 `json:"referrals"`
	FirstAppointments    float64 `json:"first_appointments"`
	FollowUpAppointments float64 `json:"follow_up_appointments"`
}

type DateErrorResponse struct {
	Row   int    `json:"row"`
	Value string `json:"value"`
}

// SkippedFeature names a feature left out because a column is missing.
type SkippedFeature struct {
	Feature       string `json:"feature"`
	MissingColumn string `json:"missing_column"`
}

// VisualizationResponse holds the exploratory views. A view that does not
// apply to the uploaded columns is null.
type VisualizationResponse struct {
	Specialty                string                              `json:"specialty"`
	ReferralTrend            []ReferralPointResponse             `json:"referral_trend"`
	AppointmentsVsDischarges []AppointmentDischargePointResponse `json:"appointments_vs_discharges"`
	Seasonality              []MonthlyActivityResponse           `json:"seasonality"`
	SkippedDateRows          []DateErrorResponse                 `json:"skipped_date_rows"`
	Skipped                  []SkippedFeature                    `json:"skipped"`
}
