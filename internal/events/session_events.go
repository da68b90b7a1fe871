package events

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"

	"github.com/pp-platform/exercise-engine/internal/models"
)

// EventType names the events the engine emits.
type EventType string

const (
	// Session events
	EventSessionStarted   EventType = "session.started"
	EventSessionCompleted EventType = "session.completed"
	EventSessionReset     EventType = "session.reset"

	// Exercise lifecycle events
	EventExercisePublished EventType = "exercise.published"
)

// SessionEvent is the envelope for every emitted event.
type SessionEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

const eventSource = "exercise-engine"

// SessionStartedEvent is emitted when a learner opens an exercise with no
// resumable snapshot.
type SessionStartedEvent struct {
	ExerciseID string              `json:"exercise_id"`
	Title      string              `json:"title"`
	Type       models.ExerciseType `json:"exercise_type"`
	ItemCount  int                 `json:"item_count"`
	StartedAt  time.Time           `json:"started_at"`
}

// SessionCompletedEvent carries the final summary so downstream consumers
// never need to re-grade.
type SessionCompletedEvent struct {
	ExerciseID  string    `json:"exercise_id"`
	Title       string    `json:"title"`
	Score       int       `json:"score"`
	Total       int       `json:"total"`
	Percent     int       `json:"percent"`
	Passed      bool      `json:"passed"`
	CompletedAt time.Time `json:"completed_at"`
}

// SessionResetEvent is emitted when a learner restarts an exercise.
type SessionResetEvent struct {
	ExerciseID string    `json:"exercise_id"`
	ResetAt    time.Time `json:"reset_at"`
}

// ExercisePublishedEvent is emitted when a new definition version is saved.
type ExercisePublishedEvent struct {
	ExerciseID string              `json:"exercise_id"`
	Title      string              `json:"title"`
	Type       models.ExerciseType `json:"exercise_type"`
	Version    int                 `json:"version"`
}

func newEvent(eventType EventType, data interface{}) *SessionEvent {
	return &SessionEvent{
		ID:        watermill.NewUUID(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   "1.0",
		Data:      data,
	}
}

func NewSessionStartedEvent(exercise *models.Exercise, startedAt time.Time) *SessionEvent {
	return newEvent(EventSessionStarted, SessionStartedEvent{
		ExerciseID: exercise.ID,
		Title:      exercise.Title,
		Type:       exercise.Type,
		ItemCount:  len(exercise.Items),
		StartedAt:  startedAt,
	})
}

func NewSessionCompletedEvent(summary *models.Summary) *SessionEvent {
	return newEvent(EventSessionCompleted, SessionCompletedEvent{
		ExerciseID:  summary.ExerciseID,
		Title:       summary.Title,
		Score:       summary.Score,
		Total:       summary.Total,
		Percent:     summary.Percent,
		Passed:      summary.Passed,
		CompletedAt: summary.CompletedAt,
	})
}

func NewSessionResetEvent(exerciseID string) *SessionEvent {
	return newEvent(EventSessionReset, SessionResetEvent{
		ExerciseID: exerciseID,
		ResetAt:    time.Now().UTC(),
	})
}

func NewExercisePublishedEvent(exercise *models.Exercise) *SessionEvent {
	return newEvent(EventExercisePublished, ExercisePublishedEvent{
		ExerciseID: exercise.ID,
		Title:      exercise.Title,
		Type:       exercise.Type,
		Version:    exercise.Version,
	})
}
