package handler

import (
	"errors"
	"net/http"

	"outpatient-planner/internal/delivery/dto"
	"outpatient-planner/internal/delivery/http/middleware"
	"outpatient-planner/internal/usecase"
	"outpatient-planner/pkg/response"
	"outpatient-planner/pkg/validator"
)

const uploadField = "file"

type PlanningHandler struct {
	planningUsecase usecase.PlanningUsecase
	validator       *validator.CustomValidator
	maxUploadBytes  int64
}

func NewPlanningHandler(planningUsecase usecase.PlanningUsecase, validator *validator.CustomValidator, maxUploadBytes int64) *PlanningHandler {
	return &PlanningHandler{
		planningUsecase: planningUsecase,
		validator:       validator,
		maxUploadBytes:  maxUploadBytes,
	}
}

// Upload replaces the session's activity table
// @Summary Upload activity data
// @Description Upload a .csv or .xlsx file with a header row
// @Tags Planning
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Activity data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /uploads [post]
func (h *PlanningHandler) Upload(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(w, http.StatusRequestEntityTooLarge, "Upload exceeds the size limit", nil)
			return
		}
		response.Error(w, http.StatusBadRequest, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		response.ValidationError(w, map[string]string{uploadField: uploadField + " is required"})
		return
	}
	defer file.Close()

	upload, err := h.planningUsecase.Upload(r.Context(), sessionID, header.Filename, file)
	if err != nil {
		writeError(w, err, "Failed to upload activity data")
		return
	}

	response.Success(w, http.StatusOK, "Activity data uploaded successfully", upload)
}

// GetSpecialties lists the specialties in the uploaded data
// @Summary List specialties
// @Tags Planning
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /specialties [get]
func (h *PlanningHandler) GetSpecialties(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	specialties, err := h.planningUsecase.GetSpecialties(r.Context(), sessionID)
	if err != nil {
		writeError(w, err, "Failed to get specialties")
		return
	}

	response.Success(w, http.StatusOK, "Specialties retrieved successfully", specialties)
}

// Predict returns the referral prediction
// @Summary Predict next year's referrals
// @Tags Planning
// @Security BearerAuth
// @Produce json
// @Param specialty query string false "Specialty"
// @Param growth_rate query int false "Growth rate 0-50"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /predictions [get]
func (h *PlanningHandler) Predict(w http.ResponseWriter, r *http.Request) {
	sessionID, q, ok := planningRequest(w, r, h.validator)
	if !ok {
		return
	}

	prediction, err := h.planningUsecase.Predict(r.Context(), sessionID, q)
	if err != nil {
		writeError(w, err, "Failed to predict referrals")
		return
	}

	response.Success(w, http.StatusOK, "Prediction computed successfully", prediction)
}

// Plan returns the capacity plan
// @Summary Plan next year's activity
// @Tags Planning
// @Security BearerAuth
// @Produce json
// @Param specialty query string false "Specialty"
// @Param growth_rate query int false "Growth rate 0-50"
// @Param backlog_target query int false "Backlog reduction target"
// @Success 200 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /plans [get]
func (h *PlanningHandler) Plan(w http.ResponseWriter, r *http.Request) {
	sessionID, q, ok := planningRequest(w, r, h.validator)
	if !ok {
		return
	}

	plan, err := h.planningUsecase.Plan(r.Context(), sessionID, q)
	if err != nil {
		writeError(w, err, "Failed to plan activity")
		return
	}

	response.Success(w, http.StatusOK, "Plan computed successfully", plan)
}

// Export downloads the projection summary
// @Summary Export projection summary
// @Tags Planning
// @Security BearerAuth
// @Produce text/csv
// @Param format query string false "csv or xlsx"
// @Success 200 {file} file
// @Router /plans/export [get]
func (h *PlanningHandler) Export(w http.ResponseWriter, r *http.Request) {
	sessionID, q, ok := planningRequest(w, r, h.validator)
	if !ok {
		return
	}

	req := &dto.ExportQuery{PlanningQuery: *q, Format: r.URL.Query().Get("format")}
	if req.Format == "" {
		req.Format = "csv"
	}
	if err := h.validator.Validate(req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	file, err := h.planningUsecase.Export(r.Context(), sessionID, req)
	if err != nil {
		writeError(w, err, "Failed to export projection summary")
		return
	}

	response.Attachment(w, file.Name, file.ContentType, file.Content)
}

// Visualize returns the exploratory views
// @Summary Visualize activity data
// @Tags Planning
// @Security BearerAuth
// @Produce json
// @Param specialty query string false "Specialty"
// @Success 200 {object} response.Response
// @Router /visualizations [get]
func (h *PlanningHandler) Visualize(w http.ResponseWriter, r *http.Request) {
	sessionID, q, ok := planningRequest(w, r, h.validator)
	if !ok {
		return
	}

	views, err := h.planningUsecase.Visualize(r.Context(), sessionID, q)
	if err != nil {
		writeError(w, err, "Failed to build visualizations")
		return
	}

	response.Success(w, http.StatusOK, "Visualizations built successfully", views)
}
