package dto

import (
	"time"

	"outpatient-planner/internal/domain/entity"
)

// Response DTOs

type AuditLogResponse struct {
	ID        int64       `json:"id"`
	SessionID string      `json:"session_id"`
	Action    string      `json:"action"`
	Metadata  entity.JSON `json:"metadata"`
	CreatedAt time.Time   `json:"created_at"`
}

type AuditLogListResponse struct {
	Enabled bool               `json:"enabled"`
	Logs    []AuditLogResponse `json:"logs"`
	Total   int                `json:"total"`
}
