package usecase

import (
	"context"

	"outpatient-planner/internal/converter"
	"outpatient-planner/internal/delivery/dto"
	"outpatient-planner/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type AuditLogUsecase interface {
	GetSessionAuditLogs(ctx context.Context, sessionID uuid.UUID) (*dto.AuditLogListResponse, error)
}

type auditLogUsecase struct {
	log          *logrus.Logger
	auditService service.AuditService
}

func NewAuditLogUsecase(
	log *logrus.Logger,
	auditService service.AuditService,
) AuditLogUsecase {
	return &auditLogUsecase{
		log:          log,
		auditService: auditService,
	}
}

func (u *auditLogUsecase) GetSessionAuditLogs(ctx context.Context, sessionID uuid.UUID) (*dto.AuditLogListResponse, error) {
	logs, err := u.auditService.FindBySession(ctx, sessionID)
	if err != nil {
		u.log.Warnf("Failed to find audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Enabled: u.auditService.Enabled(),
		Logs:    converter.AuditLogsToResponses(logs),
		Total:   len(logs),
	}, nil
}
