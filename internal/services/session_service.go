package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pp-platform/exercise-engine/internal/events"
	"github.com/pp-platform/exercise-engine/internal/grading"
	"github.com/pp-platform/exercise-engine/internal/models"
	"github.com/pp-platform/exercise-engine/internal/repositories"
	"github.com/pp-platform/exercise-engine/internal/store"
)

// SessionService runs a learner's pass through an exercise: opening or
// resuming a session, grading answers, navigating, and building the final
// summary. One session exists per exercise, mirroring the per-exercise
// snapshot key the browser uses.
type SessionService interface {
	Open(ctx context.Context, exerciseID string) (*SessionView, error)
	Answer(ctx context.Context, exerciseID, itemID string, resp grading.Response) (*AnswerResult, error)
	Next(ctx context.Context, exerciseID string) (*SessionView, error)
	Prev(ctx context.Context, exerciseID string) (*SessionView, error)
	JumpTo(ctx context.Context, exerciseID string, index int) (*SessionView, error)
	Retry(ctx context.Context, exerciseID string) (*SessionView, error)
	Summary(ctx context.Context, exerciseID string) (*models.Summary, error)
}

// SessionView is what the rendering layer needs for the current carousel
// position. The recorded result, when present, lets an answered item render
// in its locked state.
type SessionView struct {
	ExerciseID string              `json:"exercise_id"`
	Title      string              `json:"title"`
	Type       models.ExerciseType `json:"type"`
	Index      int                 `json:"index"`
	Total      int                 `json:"total"`
	Correct    int                 `json:"correct"`
	Answered   int                 `json:"answered"`
	Completed  bool                `json:"completed"`
	Item       *models.Item        `json:"item,omitempty"`
	Result     *models.Result      `json:"result,omitempty"`
}

// AnswerResult is the grading outcome plus the session counters the client
// needs to update its header without a second round trip.
type AnswerResult struct {
	Result   models.Result `json:"result"`
	Correct  int           `json:"correct"`
	Answered int           `json:"answered"`
	Total    int           `json:"total"`
}

type sessionService struct {
	repo      repositories.ExerciseRepository
	snapshots store.SnapshotStore
	publisher events.EventPublisher
	logger    *slog.Logger
	ttl       time.Duration
}

func NewSessionService(
	repo repositories.ExerciseRepository,
	snapshots store.SnapshotStore,
	publisher events.EventPublisher,
	logger *slog.Logger,
	ttl time.Duration,
) SessionService {
	return &sessionService{
		repo:      repo,
		snapshots: snapshots,
		publisher: publisher,
		logger:    logger,
		ttl:       ttl,
	}
}

// Open loads the exercise and resumes the stored session when one exists.
// A missing or corrupt snapshot starts a fresh session; opening never fails
// because of the snapshot tier.
func (s *sessionService) Open(ctx context.Context, exerciseID string) (*SessionView, error) {
	exercise, err := s.getExercise(ctx, exerciseID)
	if err != nil {
		return nil, err
	}

	state, err := s.snapshots.Load(ctx, exerciseID)
	if err != nil {
		if !errors.Is(err, store.ErrSnapshotNotFound) {
			s.logger.Warn("failed to load session snapshot, starting fresh",
				"exercise_id", exerciseID, "error", err)
		}
		state = models.NewSessionState(exerciseID)
		s.saveSnapshot(ctx, state)
		s.publish(ctx, events.NewSessionStartedEvent(exercise, state.StartedAt))
	}

	s.reconcile(exercise, state)
	return s.view(exercise, state), nil
}

// Answer grades one item and folds the judgment into the session. Whether a
// second submission is allowed depends on the item type: true/false items
// may be re-answered, drag and drop boards are re-graded wholesale, and the
// remaining types lock after the first judgment.
func (s *sessionService) Answer(ctx context.Context, exerciseID, itemID string, resp grading.Response) (*AnswerResult, error) {
	exercise, state, err := s.load(ctx, exerciseID)
	if err != nil {
		return nil, err
	}

	item := exercise.ItemByID(itemID)
	if item == nil {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}

	if state.Answered(itemID) && locksAfterGrading(item.Type) {
		return nil, fmt.Errorf("%w: %s", ErrItemLocked, itemID)
	}

	if item.Type == models.DragDropText && item.DragDrop != nil && !exercise.Settings.AllowPartialSubmit {
		if !grading.AllPlaced(item.DragDrop, resp.Placements) {
			return nil, ErrSubmissionGated
		}
	}

	result, err := grading.Grade(item, exercise.Settings, resp)
	if err != nil {
		return nil, err
	}

	state.Apply(result)
	s.saveSnapshot(ctx, state)

	s.logger.Info("Graded answer",
		"exercise_id", exerciseID,
		"item_id", itemID,
		"item_type", item.Type,
		"correct", result.Correct,
		"score", state.Correct)

	return &AnswerResult{
		Result:   result,
		Correct:  state.Correct,
		Answered: len(state.Responses),
		Total:    len(exercise.Items),
	}, nil
}

// Next advances the carousel. The current item must be answered first.
func (s *sessionService) Next(ctx context.Context, exerciseID string) (*SessionView, error) {
	exercise, state, err := s.load(ctx, exerciseID)
	if err != nil {
		return nil, err
	}

	if state.Index >= len(exercise.Items)-1 {
		return nil, ErrIndexOutOfRange
	}
	current := exercise.Items[state.Index]
	if !state.Answered(current.ID) {
		return nil, ErrNavigationBlocked
	}

	state.Index++
	state.UpdatedAt = time.Now().UTC()
	s.saveSnapshot(ctx, state)
	return s.view(exercise, state), nil
}

// Prev moves back one item; at the first item it is a no-op.
func (s *sessionService) Prev(ctx context.Context, exerciseID string) (*SessionView, error) {
	exercise, state, err := s.load(ctx, exerciseID)
	if err != nil {
		return nil, err
	}

	if state.Index > 0 {
		state.Index--
		state.UpdatedAt = time.Now().UTC()
		s.saveSnapshot(ctx, state)
	}
	return s.view(exercise, state), nil
}

// JumpTo moves directly to an item. Backward jumps are always allowed;
// forward jumps must not skip an unanswered item.
func (s *sessionService) JumpTo(ctx context.Context, exerciseID string, index int) (*SessionView, error) {
	exercise, state, err := s.load(ctx, exerciseID)
	if err != nil {
		return nil, err
	}

	if index < 0 || index >= len(exercise.Items) {
		return nil, ErrIndexOutOfRange
	}
	for i := 0; i < index; i++ {
		if !state.Answered(exercise.Items[i].ID) {
			return nil, ErrNavigationBlocked
		}
	}

	state.Index = index
	state.UpdatedAt = time.Now().UTC()
	s.saveSnapshot(ctx, state)
	return s.view(exercise, state), nil
}

// Retry wipes the session and starts over at the first item.
func (s *sessionService) Retry(ctx context.Context, exerciseID string) (*SessionView, error) {
	exercise, state, err := s.load(ctx, exerciseID)
	if err != nil {
		return nil, err
	}

	state.Reset()
	s.saveSnapshot(ctx, state)
	s.publish(ctx, events.NewSessionResetEvent(exerciseID))

	return s.view(exercise, state), nil
}

// Summary builds the end-of-exercise report from the recorded responses.
// Every item must be answered. The completion event fires exactly once per
// session, on the first successful build.
func (s *sessionService) Summary(ctx context.Context, exerciseID string) (*models.Summary, error) {
	exercise, state, err := s.load(ctx, exerciseID)
	if err != nil {
		return nil, err
	}

	for _, item := range exercise.Items {
		if !state.Answered(item.ID) {
			return nil, fmt.Errorf("%w: item %s not answered", ErrNavigationBlocked, item.ID)
		}
	}

	first := state.CompletedAt == nil
	if first {
		now := time.Now().UTC()
		state.CompletedAt = &now
		state.UpdatedAt = now
		s.saveSnapshot(ctx, state)
	}

	summary := buildSummary(exercise, state)
	if first {
		s.publish(ctx, events.NewSessionCompletedEvent(summary))
	}

	return summary, nil
}

// load fetches the exercise and the existing session together; a session
// must already exist for every operation except Open.
func (s *sessionService) load(ctx context.Context, exerciseID string) (*models.Exercise, *models.SessionState, error) {
	exercise, err := s.getExercise(ctx, exerciseID)
	if err != nil {
		return nil, nil, err
	}

	state, err := s.snapshots.Load(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, store.ErrSnapshotNotFound) {
			return nil, nil, fmt.Errorf("%w: %s", ErrSessionNotFound, exerciseID)
		}
		return nil, nil, fmt.Errorf("failed to load session: %w", err)
	}

	s.reconcile(exercise, state)
	return exercise, state, nil
}

func (s *sessionService) getExercise(ctx context.Context, exerciseID string) (*models.Exercise, error) {
	exercise, err := s.repo.GetCurrent(ctx, exerciseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", ErrExerciseNotFound, exerciseID)
		}
		return nil, fmt.Errorf("failed to get exercise: %w", err)
	}
	return exercise, nil
}

// saveSnapshot persists best effort: a failed save costs resumability, not
// the current answer.
func (s *sessionService) saveSnapshot(ctx context.Context, state *models.SessionState) {
	if err := s.snapshots.Save(ctx, state.ExerciseID, state, s.ttl); err != nil {
		s.logger.Warn("failed to save session snapshot",
			"exercise_id", state.ExerciseID, "error", err)
	}
}

func (s *sessionService) publish(ctx context.Context, event *events.SessionEvent) {
	if err := s.publisher.PublishSessionEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish session event",
			"event_type", event.Type, "error", err)
	}
}
