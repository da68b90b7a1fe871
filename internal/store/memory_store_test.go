package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pp-platform/exercise-engine/internal/models"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	state := models.NewSessionState("ex-42")
	state.Index = 2
	state.Correct = 1
	state.Responses["i1"] = models.Result{ItemID: "i1", Type: models.TrueFalse, Correct: true, Checked: true}

	require.NoError(t, s.Save(ctx, "ex-42", state, 0))

	loaded, err := s.Load(ctx, "ex-42")
	require.NoError(t, err)
	assert.Equal(t, "ex-42", loaded.ExerciseID)
	assert.Equal(t, 2, loaded.Index)
	assert.Equal(t, 1, loaded.Correct)
	assert.True(t, loaded.Responses["i1"].Correct)
}

func TestMemoryStoreMissing(t *testing.T) {
	_, err := NewMemoryStore().Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Save(ctx, "ex-1", models.NewSessionState("ex-1"), time.Nanosecond))
	time.Sleep(5 * time.Millisecond)

	_, err := s.Load(ctx, "ex-1")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Save(ctx, "ex-1", models.NewSessionState("ex-1"), 0))
	require.NoError(t, s.Delete(ctx, "ex-1"))

	_, err := s.Load(ctx, "ex-1")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestKeyScheme(t *testing.T) {
	assert.Equal(t, "pp-ex-abc", Key("abc"))
}
