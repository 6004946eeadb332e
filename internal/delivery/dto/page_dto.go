package dto

import "outpatient-planner/internal/domain/entity"

// PageView is the composed output of one dashboard page. The set of
// implementations is closed: PredictPageView, PlanPageView and
// VisualizePageView.
type PageView interface {
	Page() entity.Page
	isPageView()
}

type PageHeader struct {
	Name        entity.Page      `json:"page"`
	Title       string           `json:"title"`
	Specialty   string           `json:"specialty"`
	Specialties []string         `json:"specialties"`
	Skipped     []SkippedFeature `json:"skipped"`
}

func (h PageHeader) Page() entity.Page { return h.Name }

type PredictPageView struct {
	PageHeader
	Prediction *PredictionResponse `json:"prediction"`
}

type PlanPageView struct {
	PageHeader
	Prediction *PredictionResponse `json:"prediction"`
	Plan       *PlanResponse       `json:"plan"`
}

type VisualizePageView struct {
	PageHeader
	Visualization *VisualizationResponse `json:"visualization"`
}

func (PredictPageView) isPageView()   {}
func (PlanPageView) isPageView()      {}
func (VisualizePageView) isPageView() {}

type PageSummary struct {
	Page  entity.Page `json:"page"`
	Title string      `json:"title"`
}
