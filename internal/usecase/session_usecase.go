package usecase

import (
	"context"
	"errors"
	"time"

	"outpatient-planner/internal/delivery/dto"
	"outpatient-planner/internal/domain/entity"
	"outpatient-planner/internal/domain/repository"
	"outpatient-planner/internal/service"
	"outpatient-planner/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrSessionNotFound = errors.New("session not found or expired")
)

type SessionUsecase interface {
	StartSession(ctx context.Context) (*dto.SessionResponse, error)
	ValidateSession(ctx context.Context, token string) (uuid.UUID, error)
	EndSession(ctx context.Context, sessionID uuid.UUID) error
}

type sessionUsecase struct {
	log          *logrus.Logger
	sessionRepo  repository.SessionRepository
	jwtService   *jwt.JWTService
	auditService service.AuditService
}

func NewSessionUsecase(
	log *logrus.Logger,
	sessionRepo repository.SessionRepository,
	jwtService *jwt.JWTService,
	auditService service.AuditService,
) SessionUsecase {
	return &sessionUsecase{
		log:          log,
		sessionRepo:  sessionRepo,
		jwtService:   jwtService,
		auditService: auditService,
	}
}

func (u *sessionUsecase) StartSession(ctx context.Context) (*dto.SessionResponse, error) {
	session := &entity.Session{
		ID:       uuid.New(),
		IssuedAt: time.Now(),
	}

	token, expiresAt, err := u.jwtService.GenerateSessionToken(session.ID)
	if err != nil {
		u.log.Warnf("Failed to sign session token: %+v", err)
		return nil, err
	}
	session.ExpiresAt = expiresAt

	if err := u.sessionRepo.Create(ctx, session, u.jwtService.GetSessionTTL()); err != nil {
		u.log.Warnf("Failed to store session: %+v", err)
		return nil, err
	}

	u.auditService.Record(ctx, session.ID, entity.AuditActionSessionStart, nil)

	return &dto.SessionResponse{
		SessionID: session.ID.String(),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (u *sessionUsecase) ValidateSession(ctx context.Context, token string) (uuid.UUID, error) {
	claims, err := u.jwtService.ValidateToken(token)
	if err != nil {
		return uuid.Nil, ErrSessionNotFound
	}

	exists, err := u.sessionRepo.Exists(ctx, claims.SessionID)
	if err != nil {
		u.log.Warnf("Failed to look up session: %+v", err)
		return uuid.Nil, err
	}
	if !exists {
		return uuid.Nil, ErrSessionNotFound
	}

	return claims.SessionID, nil
}

func (u *sessionUsecase) EndSession(ctx context.Context, sessionID uuid.UUID) error {
	if err := u.sessionRepo.Delete(ctx, sessionID); err != nil {
		u.log.Warnf("Failed to delete session: %+v", err)
		return err
	}

	u.auditService.Record(ctx, sessionID, entity.AuditActionSessionEnd, nil)
	return nil
}
