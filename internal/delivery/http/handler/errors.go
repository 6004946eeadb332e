package handler

import (
	"errors"
	"net/http"

	"outpatient-planner/internal/domain/entity"
	"outpatient-planner/internal/parser"
	"outpatient-planner/internal/usecase"
	"outpatient-planner/pkg/response"
)

// writeError maps usecase and domain errors onto HTTP responses. Anything
// unrecognised becomes a 500 carrying fallback as its message.
func writeError(w http.ResponseWriter, err error, fallback string) {
	var parseErr *entity.ParseError
	var missing *entity.MissingColumnError

	switch {
	case errors.Is(err, usecase.ErrSessionNotFound):
		response.Unauthorized(w, "Invalid or expired session")
	case errors.Is(err, usecase.ErrNoActivityData):
		response.NotFound(w, "No activity data uploaded for this session")
	case errors.Is(err, usecase.ErrInvalidParameters):
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, parser.ErrUnsupportedFormat):
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	case errors.As(err, &parseErr):
		response.Error(w, http.StatusBadRequest, "Could not read activity data", parseErr.Error())
	case errors.As(err, &missing):
		response.UnprocessableEntity(w, "Required column missing", map[string]string{
			"missing_column": missing.Column,
		})
	case errors.Is(err, usecase.ErrUnknownPage):
		response.NotFound(w, "Page not found")
	case errors.Is(err, usecase.ErrUnknownChart):
		response.NotFound(w, "Chart not found")
	case errors.Is(err, usecase.ErrChartUnavailable):
		response.NotFound(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
