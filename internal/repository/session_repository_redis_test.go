package repository

import (
	"context"
	"encoding/json"
	"testing"

	"outpatient-planner/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGetHook answers GET commands with a fixed payload without a server.
// A command issued under a cancelled context fails the way the real
// client would.
type stubGetHook struct {
	payload string
	keys    []string
}

func (h *stubGetHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h *stubGetHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		if err := ctx.Err(); err != nil {
			cmd.SetErr(err)
			return err
		}
		get, ok := cmd.(*redis.StringCmd)
		if !ok {
			return next(ctx, cmd)
		}
		h.keys = append(h.keys, get.Args()[1].(string))
		get.SetVal(h.payload)
		return nil
	}
}

func (h *stubGetHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func newStubRedisRepository(t *testing.T, table *entity.ActivityTable) (*redisSessionRepository, *stubGetHook) {
	t.Helper()
	payload, err := json.Marshal(table)
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	t.Cleanup(func() { _ = client.Close() })
	hook := &stubGetHook{payload: string(payload)}
	client.AddHook(hook)

	return NewRedisSessionRepository(client).(*redisSessionRepository), hook
}

func TestRedisFindTableDecodesStoredTable(t *testing.T) {
	stored := &entity.ActivityTable{
		Columns: []string{"specialty", "referrals"},
		Records: []entity.ActivityRecord{{Specialty: "ENT", Referrals: 12}},
	}
	repo, hook := newStubRedisRepository(t, stored)
	id := uuid.New()

	table, err := repo.FindTable(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, table)
	assert.Equal(t, stored.Columns, table.Columns)
	assert.Equal(t, stored.Records, table.Records)
	assert.Equal(t, []string{tableKey(id)}, hook.keys)
}

func TestRedisFindTableIgnoresCallerCancellation(t *testing.T) {
	stored := &entity.ActivityTable{
		Columns: []string{"specialty"},
		Records: []entity.ActivityRecord{{Specialty: "Cardiology"}},
	}
	repo, _ := newStubRedisRepository(t, stored)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	table, err := repo.FindTable(ctx, uuid.New())
	require.NoError(t, err)
	require.NotNil(t, table)
	assert.Equal(t, "Cardiology", table.Records[0].Specialty)
}
