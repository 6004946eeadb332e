package usecase

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"outpatient-planner/config"
	"outpatient-planner/internal/domain/entity"
	domainRepo "outpatient-planner/internal/domain/repository"
	"outpatient-planner/internal/repository"
	"outpatient-planner/internal/service"
	"outpatient-planner/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

const activityCSV = `specialty,date,referrals,first_appointments,follow_up_appointments,discharges
Cardiology,2023-01-15,100,50,80,30
Dermatology,2023-01-20,40,20,10,15
Cardiology,2023-02-10,200,50,60,45
`

var planningDefaults = config.PlanningConfig{DefaultGrowthRate: 10, DefaultBacklogTarget: 100}

type recordedEvent struct {
	sessionID uuid.UUID
	action    string
	metadata  entity.JSON
}

// recordingAuditService keeps events in memory.
type recordingAuditService struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (s *recordingAuditService) Record(ctx context.Context, sessionID uuid.UUID, action string, metadata entity.JSON) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, recordedEvent{sessionID: sessionID, action: action, metadata: metadata})
}

func (s *recordingAuditService) FindBySession(ctx context.Context, sessionID uuid.UUID) ([]entity.AuditLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	logs := []entity.AuditLog{}
	for i, e := range s.events {
		if e.sessionID == sessionID {
			logs = append(logs, entity.AuditLog{ID: int64(i + 1), SessionID: e.sessionID, Action: e.action, Metadata: e.metadata})
		}
	}
	return logs, nil
}

func (s *recordingAuditService) Enabled() bool { return true }

func (s *recordingAuditService) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	actions := make([]string, len(s.events))
	for i, e := range s.events {
		actions[i] = e.action
	}
	return actions
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fixture struct {
	repo     domainRepo.SessionRepository
	sessions SessionUsecase
	planning PlanningUsecase
	audit    *recordingAuditService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := testLogger()
	repo := repository.NewMemorySessionRepository()
	audit := &recordingAuditService{}
	jwtService := jwt.NewJWTService(config.SessionConfig{Secret: "test-secret", TTL: time.Hour})

	return &fixture{
		repo:     repo,
		sessions: NewSessionUsecase(log, repo, jwtService, audit),
		planning: NewPlanningUsecase(log, planningDefaults, repo, audit),
		audit:    audit,
	}
}

// startWithUpload opens a session and uploads body as data.csv.
func (f *fixture) startWithUpload(t *testing.T, body string) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	session, err := f.sessions.StartSession(ctx)
	require.NoError(t, err)
	id, err := f.sessions.ValidateSession(ctx, session.Token)
	require.NoError(t, err)

	_, err = f.planning.Upload(ctx, id, "data.csv", strings.NewReader(body))
	require.NoError(t, err)
	return id
}

func intPtr(v int) *int { return &v }

// noopAudit is the audit service used when the database is disabled.
func noopAudit() service.AuditService {
	return service.NewNoopAuditService(testLogger())
}
