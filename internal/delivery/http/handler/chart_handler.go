package handler

import (
	"net/http"

	"outpatient-planner/internal/usecase"
	"outpatient-planner/pkg/response"
	"outpatient-planner/pkg/validator"

	"github.com/gorilla/mux"
)

const contentTypePNG = "image/png"

type ChartHandler struct {
	chartUsecase usecase.ChartUsecase
	validator    *validator.CustomValidator
}

func NewChartHandler(chartUsecase usecase.ChartUsecase, validator *validator.CustomValidator) *ChartHandler {
	return &ChartHandler{
		chartUsecase: chartUsecase,
		validator:    validator,
	}
}

// GetChart renders one chart as PNG
// @Summary Render a chart
// @Tags Charts
// @Security BearerAuth
// @Produce image/png
// @Param chart path string true "Chart name"
// @Success 200 {file} file
// @Failure 404 {object} response.Response
// @Router /charts/{chart} [get]
func (h *ChartHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	sessionID, q, ok := planningRequest(w, r, h.validator)
	if !ok {
		return
	}

	kind := usecase.ChartKind(mux.Vars(r)["chart"])
	png, err := h.chartUsecase.Render(r.Context(), sessionID, kind, q)
	if err != nil {
		writeError(w, err, "Failed to render chart")
		return
	}

	response.Image(w, contentTypePNG, png)
}
