package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/pp-platform/exercise-engine/internal/models"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryStore returns an in-process SnapshotStore. Used in tests and in
// deployments that run without redis; snapshots do not survive a restart.
func NewMemoryStore() SnapshotStore {
	return &memoryStore{entries: make(map[string]memoryEntry)}
}

func (m *memoryStore) Save(ctx context.Context, sessionID string, state *models.SessionState, ttl time.Duration) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}

	entry := memoryEntry{data: data}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[Key(sessionID)] = entry
	return nil
}

func (m *memoryStore) Load(ctx context.Context, sessionID string) (*models.SessionState, error) {
	m.mu.RLock()
	entry, ok := m.entries[Key(sessionID)]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrSnapshotNotFound
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, Key(sessionID))
		m.mu.Unlock()
		return nil, ErrSnapshotNotFound
	}

	var state models.SessionState
	if err := json.Unmarshal(entry.data, &state); err != nil {
		return nil, ErrSnapshotNotFound
	}
	if state.Responses == nil {
		state.Responses = make(map[string]models.Result)
	}
	return &state, nil
}

func (m *memoryStore) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, Key(sessionID))
	return nil
}
