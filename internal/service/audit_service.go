package service

import (
	"context"

	"outpatient-planner/internal/domain/entity"
	"outpatient-planner/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService records what happened in a planning session. Recording is
// best effort: failures are logged and never reach the caller.
type AuditService interface {
	Record(ctx context.Context, sessionID uuid.UUID, action string, metadata entity.JSON)
	FindBySession(ctx context.Context, sessionID uuid.UUID) ([]entity.AuditLog, error)
	Enabled() bool
}

type auditService struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(db *gorm.DB, log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) Record(ctx context.Context, sessionID uuid.UUID, action string, metadata entity.JSON) {
	auditLog := &entity.AuditLog{
		SessionID: sessionID,
		Action:    action,
		Metadata:  metadata,
	}

	if err := s.auditRepo.Create(s.db.WithContext(ctx), auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
	}
}

func (s *auditService) FindBySession(ctx context.Context, sessionID uuid.UUID) ([]entity.AuditLog, error) {
	return s.auditRepo.FindBySessionID(s.db.WithContext(ctx), sessionID)
}

func (s *auditService) Enabled() bool {
	return true
}

// noopAuditService is used when no database is configured.
type noopAuditService struct {
	log *logrus.Logger
}

func NewNoopAuditService(log *logrus.Logger) AuditService {
	return &noopAuditService{log: log}
}

func (s *noopAuditService) Record(ctx context.Context, sessionID uuid.UUID, action string, metadata entity.JSON) {
	s.log.WithFields(logrus.Fields{
		"session_id": sessionID.String(),
		"action":     action,
	}).Debug("Audit event")
}

func (s *noopAuditService) FindBySession(ctx context.Context, sessionID uuid.UUID) ([]entity.AuditLog, error) {
	return []entity.AuditLog{}, nil
}

func (s *noopAuditService) Enabled() bool {
	return false
}
