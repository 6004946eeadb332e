package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"outpatient-planner/internal/domain/entity"
	domainRepo "outpatient-planner/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const (
	RedisSessionKeyPrefix = "planner:session:"
	redisTableKeySuffix   = ":table"
)

// redisSessionRepository stores the session marker and the uploaded table
// as two keys sharing one expiry. Concurrent reads of the same table are
// coalesced into a single GET and decode.
type redisSessionRepository struct {
	client *redis.Client
	group  singleflight.Group
}

func NewRedisSessionRepository(client *redis.Client) domainRepo.SessionRepository {
	return &redisSessionRepository{client: client}
}

func sessionKey(id uuid.UUID) string {
	return RedisSessionKeyPrefix + id.String()
}

func tableKey(id uuid.UUID) string {
	return sessionKey(id) + redisTableKeySuffix
}

func (r *redisSessionRepository) Create(ctx context.Context, session *entity.Session, ttl time.Duration) error {
	return r.client.Set(ctx, sessionKey(session.ID), session.IssuedAt.Unix(), ttl).Err()
}

func (r *redisSessionRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := r.client.Exists(ctx, sessionKey(id)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *redisSessionRepository) SaveTable(ctx context.Context, id uuid.UUID, table *entity.ActivityTable) error {
	ttl, err := r.client.PTTL(ctx, sessionKey(id)).Result()
	if err != nil {
		return err
	}
	// PTTL reports -2 for a missing key and -1 for a key without expiry.
	switch {
	case ttl == -2:
		return domainRepo.ErrSessionExpired
	case ttl < 0:
		ttl = 0
	}

	payload, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("encode activity table: %w", err)
	}

	return r.client.Set(ctx, tableKey(id), payload, ttl).Err()
}

func (r *redisSessionRepository) FindTable(ctx context.Context, id uuid.UUID) (*entity.ActivityTable, error) {
	// The read is shared by every waiting caller, so one caller cancelling
	// must not fail the others.
	gctx := context.WithoutCancel(ctx)
	v, err, _ := r.group.Do(id.String(), func() (interface{}, error) {
		payload, err := r.client.Get(gctx, tableKey(id)).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return nil, nil
			}
			return nil, err
		}

		var table entity.ActivityTable
		if err := json.Unmarshal(payload, &table); err != nil {
			return nil, fmt.Errorf("decode activity table: %w", err)
		}
		return &table, nil
	})
	if err != nil || v == nil {
		return nil, err
	}

	// Callers share the decoded table; each gets its own copy of the rows.
	shared := v.(*entity.ActivityTable)
	records := make([]entity.ActivityRecord, len(shared.Records))
	copy(records, shared.Records)
	return shared.WithRecords(records), nil
}

func (r *redisSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.client.Del(ctx, sessionKey(id), tableKey(id)).Err()
}
