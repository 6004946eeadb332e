package repository

import (
	"outpatient-planner/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(db *gorm.DB, log *entity.AuditLog) error
	FindBySessionID(db *gorm.DB, sessionID uuid.UUID) ([]entity.AuditLog, error)
}
