package handler

import (
	"net/http"
	"strconv"
	"strings"

	"outpatient-planner/internal/delivery/dto"
	"outpatient-planner/internal/delivery/http/middleware"
	"outpatient-planner/pkg/response"
	"outpatient-planner/pkg/validator"

	"github.com/google/uuid"
)

// parsePlanningQuery reads the dashboard controls from the query string.
// Malformed numbers are reported per field.
func parsePlanningQuery(r *http.Request) (*dto.PlanningQuery, map[string]string) {
	values := r.URL.Query()
	q := &dto.PlanningQuery{
		Specialty: strings.TrimSpace(values.Get("specialty")),
	}
	errs := make(map[string]string)

	if raw := values.Get("growth_rate"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			errs["growth_rate"] = "growth_rate must be a whole number"
		} else {
			q.GrowthRate = &v
		}
	}
	if raw := values.Get("backlog_target"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			errs["backlog_target"] = "backlog_target must be a whole number"
		} else {
			q.BacklogTarget = &v
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return q, nil
}

// planningRequest resolves the session and the validated controls. It writes
// the error response itself and returns false when either is unusable.
func planningRequest(w http.ResponseWriter, r *http.Request, v *validator.CustomValidator) (uuid.UUID, *dto.PlanningQuery, bool) {
	sessionID, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return uuid.Nil, nil, false
	}

	q, errs := parsePlanningQuery(r)
	if errs != nil {
		response.ValidationError(w, errs)
		return uuid.Nil, nil, false
	}
	if err := v.Validate(q); err != nil {
		response.ValidationError(w, v.FormatValidationErrors(err))
		return uuid.Nil, nil, false
	}

	return sessionID, q, true
}
