package handler

import (
	"net/http"

	"outpatient-planner/internal/delivery/http/middleware"
	"outpatient-planner/internal/usecase"
	"outpatient-planner/pkg/response"
)

type SessionHandler struct {
	sessionUsecase usecase.SessionUsecase
}

func NewSessionHandler(sessionUsecase usecase.SessionUsecase) *SessionHandler {
	return &SessionHandler{
		sessionUsecase: sessionUsecase,
	}
}

// StartSession opens a planning session
// @Summary Start a planning session
// @Tags Session
// @Produce json
// @Success 201 {object} response.Response
// @Router /sessions [post]
func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionUsecase.StartSession(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to start session")
		return
	}

	response.Success(w, http.StatusCreated, "Session started", session)
}

// EndSession discards the session and its uploaded data
// @Summary End a planning session
// @Tags Session
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /sessions [delete]
func (h *SessionHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	if err := h.sessionUsecase.EndSession(r.Context(), sessionID); err != nil {
		response.InternalServerError(w, "Failed to end session")
		return
	}

	response.Success(w, http.StatusOK, "Session ended", nil)
}
