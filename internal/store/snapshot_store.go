package store

import (
	"context"
	"errors"
	"time"

	"github.com/pp-platform/exercise-engine/internal/models"
)

// ErrSnapshotNotFound is returned by Load when no snapshot exists for the key.
var ErrSnapshotNotFound = errors.New("session snapshot not found")

// SnapshotStore persists session state between page loads. Persistence is
// best effort: grading never depends on a store round trip, and a failed
// Save only costs the learner resumability.
type SnapshotStore interface {
	Save(ctx context.Context, sessionID string, state *models.SessionState, ttl time.Duration) error
	Load(ctx context.Context, sessionID string) (*models.SessionState, error)
	Delete(ctx context.Context, sessionID string) error
}

// Key builds the storage key for an exercise session. The prefix matches the
// browser-side key scheme so exports and debugging line up across tiers.
func Key(exerciseID string) string {
	return "pp-ex-" + exerciseID
}
