package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pp-platform/exercise-engine/internal/models"
	"github.com/pp-platform/exercise-engine/internal/utils"
)

type redisStore struct {
	client *redis.Client
	logger utils.Logger
}

// NewRedisStore returns a SnapshotStore backed by redis. Snapshots are
// stored as JSON under the shared key scheme.
func NewRedisStore(client *redis.Client, logger utils.Logger) SnapshotStore {
	return &redisStore{
		client: client,
		logger: logger,
	}
}

func (r *redisStore) Save(ctx context.Context, sessionID string, state *models.SessionState, ttl time.Duration) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal session snapshot: %w", err)
	}
	if err := r.client.Set(ctx, Key(sessionID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session snapshot: %w", err)
	}
	return nil
}

func (r *redisStore) Load(ctx context.Context, sessionID string) (*models.SessionState, error) {
	data, err := r.client.Get(ctx, Key(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session snapshot: %w", err)
	}

	var state models.SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		// A snapshot that no longer parses is treated as absent, the same
		// as a snapshot written for an older definition.
		r.logger.Warn("discarding corrupt session snapshot", "session_id", sessionID, "error", err)
		return nil, ErrSnapshotNotFound
	}
	if state.Responses == nil {
		state.Responses = make(map[string]models.Result)
	}
	return &state, nil
}

func (r *redisStore) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, Key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session snapshot: %w", err)
	}
	return nil
}
