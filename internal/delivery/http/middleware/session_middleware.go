package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"outpatient-planner/internal/usecase"
	"outpatient-planner/pkg/response"

	"github.com/google/uuid"
)

type contextKey string

const (
	SessionIDKey contextKey = "session_id"
)

type SessionMiddleware struct {
	sessionUsecase usecase.SessionUsecase
}

func NewSessionMiddleware(sessionUsecase usecase.SessionUsecase) *SessionMiddleware {
	return &SessionMiddleware{
		sessionUsecase: sessionUsecase,
	}
}

func (m *SessionMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		sessionID, err := m.sessionUsecase.ValidateSession(r.Context(), parts[1])
		if err != nil {
			if errors.Is(err, usecase.ErrSessionNotFound) {
				response.Unauthorized(w, "Invalid or expired session")
				return
			}
			response.InternalServerError(w, "Failed to validate session")
			return
		}

		ctx := context.WithValue(r.Context(), SessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionIDFromContext extracts the planning session ID from context
func GetSessionIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	sessionID, ok := ctx.Value(SessionIDKey).(uuid.UUID)
	return sessionID, ok
}
