package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"outpatient-planner/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithoutBackingServices(t *testing.T) {
	cfg := &config.Config{
		App:      config.AppConfig{Port: "0", Env: "test", MaxUploadBytes: 1 << 20},
		Session:  config.SessionConfig{Secret: "secret", TTL: time.Hour},
		Planning: config.PlanningConfig{DefaultGrowthRate: 10, DefaultBacklogTarget: 100},
	}

	app, err := New(cfg)
	require.NoError(t, err)
	defer app.Close()

	assert.Nil(t, app.DB)
	assert.Nil(t, app.RedisClient)
	assert.Equal(t, ":0", app.Server.Addr)

	rec := httptest.NewRecorder()
	app.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)
}
