package handler

import (
	"net/http"

	"outpatient-planner/internal/delivery/dto"
	"outpatient-planner/internal/domain/entity"
	"outpatient-planner/internal/usecase"
	"outpatient-planner/pkg/response"
	"outpatient-planner/pkg/validator"

	"github.com/gorilla/mux"
)

type PageHandler struct {
	planningUsecase usecase.PlanningUsecase
	validator       *validator.CustomValidator
}

func NewPageHandler(planningUsecase usecase.PlanningUsecase, validator *validator.CustomValidator) *PageHandler {
	return &PageHandler{
		planningUsecase: planningUsecase,
		validator:       validator,
	}
}

// GetPages lists the dashboard pages in navigation order
func (h *PageHandler) GetPages(w http.ResponseWriter, r *http.Request) {
	pages := make([]dto.PageSummary, len(entity.Pages))
	for i, p := range entity.Pages {
		pages[i] = dto.PageSummary{Page: p, Title: p.Title()}
	}

	response.Success(w, http.StatusOK, "Pages retrieved successfully", pages)
}

// GetPage composes a single dashboard page
// @Summary Get a dashboard page
// @Tags Pages
// @Security BearerAuth
// @Produce json
// @Param page path string true "upload-predict, plan-activity or visualize"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /pages/{page} [get]
func (h *PageHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	sessionID, q, ok := planningRequest(w, r, h.validator)
	if !ok {
		return
	}

	page := entity.Page(mux.Vars(r)["page"])
	view, err := h.planningUsecase.Page(r.Context(), sessionID, page, q)
	if err != nil {
		writeError(w, err, "Failed to build page")
		return
	}

	response.Success(w, http.StatusOK, page.Title(), view)
}
