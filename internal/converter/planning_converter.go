package converter

import (
	"outpatient-planner/internal/delivery/dto"
	"outpatient-planner/internal/domain/entity"
	"outpatient-planner/internal/exporter"
)

const dateFormat = "2006-01-02"

// ActivityRecordsToResponses converts records to their preview DTOs
func ActivityRecordsToResponses(records []entity.ActivityRecord) []dto.ActivityRecordResponse {
	responses := make([]dto.ActivityRecordResponse, len(records))
	for i, rec := range records {
		responses[i] = dto.ActivityRecordResponse{
			Specialty:            rec.Specialty,
			Date:                 rec.Date,
			Referrals:            rec.Referrals,
			FirstAppointments:    rec.FirstAppointments,
			FollowUpAppointments: rec.FollowUpAppointments,
			Discharges:           rec.Discharges,
		}
	}
	return responses
}

// PredictionToResponse converts a referral prediction for the given filtered table
func PredictionToResponse(specialty string, filtered *entity.ActivityTable, prediction entity.ReferralPrediction, previewRows int) *dto.PredictionResponse {
	return &dto.PredictionResponse{
		Specialty:                 specialty,
		FilteredRows:              filtered.Len(),
		Preview:                   ActivityRecordsToResponses(filtered.Head(previewRows)),
		GrowthRate:                int(prediction.GrowthRate),
		LastYearReferrals:         prediction.LastYearReferrals,
		PredictedReferrals:        prediction.PredictedReferrals,
		PredictedReferralsDisplay: exporter.RoundTotal(prediction.PredictedReferrals),
	}
}

// ProjectionSummaryToResponse converts the capacity plan to its DTO
func ProjectionSummaryToResponse(prediction *dto.PredictionResponse, summary *entity.ProjectionSummary) *dto.PlanResponse {
	resp := &dto.PlanResponse{
		Prediction: *prediction,
		LastYear: dto.LastYearSummaryResponse{
			FirstAppointments:    summary.LastYear.FirstAppointments,
			FollowUpAppointments: summary.LastYear.FollowUpAppointments,
			Discharges:           summary.LastYear.Discharges,
		},
		BacklogReduction:               int(summary.BacklogReduction),
		TotalAppointmentsNeeded:        summary.TotalAppointmentsNeeded,
		TotalAppointmentsNeededDisplay: exporter.RoundTotal(summary.TotalAppointmentsNeeded),
		PercentageChangeDefined:        summary.PercentageChange.Defined(),
		SummaryTable:                   make([]dto.SummaryLineResponse, len(summary.Lines)),
		LastYearChart:                  categoriesToResponses(summary.LastYearCategories),
		ProjectionChart:                categoriesToResponses(summary.ProjectionCategories),
	}
	if summary.PercentageChange.Defined() {
		pct := summary.PercentageChange.Value
		resp.PercentageChange = &pct
	}
	for i, line := range summary.Lines {
		resp.SummaryTable[i] = dto.SummaryLineResponse{
			Metric:           line.Metric,
			Total:            line.Total,
			PercentageChange: exporter.FormatPercentChange(line.PercentageChange),
		}
	}
	return resp
}

func categoriesToResponses(values []entity.CategoryValue) []dto.CategoryValueResponse {
	responses := make([]dto.CategoryValueResponse, len(values))
	for i, v := range values {
		responses[i] = dto.CategoryValueResponse{Category: v.Category, Total: v.Value}
	}
	return responses
}

// ActivityViewsToResponse converts the exploratory views; unavailable views stay nil
func ActivityViewsToResponse(specialty string, views *entity.ActivityViews) *dto.VisualizationResponse {
	resp := &dto.VisualizationResponse{
		Specialty:       specialty,
		SkippedDateRows: make([]dto.DateErrorResponse, len(views.DateErrors)),
		Skipped:         []dto.SkippedFeature{},
	}

	if views.HasReferralTrend() {
		resp.ReferralTrend = make([]dto.ReferralPointResponse, len(views.ReferralTrend))
		for i, p := range views.ReferralTrend {
			resp.ReferralTrend[i] = dto.ReferralPointResponse{Date: p.Date.Format(dateFormat), Referrals: p.Referrals}
		}
	}
	if views.HasAppointmentsVsDischarges() {
		resp.AppointmentsVsDischarges = make([]dto.AppointmentDischargePointResponse, len(views.AppointmentsVsDischarges))
		for i, p := range views.AppointmentsVsDischarges {
			resp.AppointmentsVsDischarges[i] = dto.AppointmentDischargePointResponse{
				FirstAppointments: p.FirstAppointments,
				Discharges:        p.Discharges,
			}
		}
	}
	if views.HasSeasonality() {
		resp.Seasonality = make([]dto.MonthlyActivityResponse, len(views.Seasonality))
		for i, m := range views.Seasonality {
			resp.Seasonality[i] = dto.MonthlyActivityResponse{
				Month:                m.Month,
				Referrals:            m.Referrals,
				FirstAppointments:    m.FirstAppointments,
				FollowUpAppointments: m.FollowUpAppointments,
			}
		}
	}
	for i, e := range views.DateErrors {
		resp.SkippedDateRows[i] = dto.DateErrorResponse{Row: e.Row, Value: e.Value}
	}

	return resp
}
