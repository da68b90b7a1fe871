package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pp-platform/exercise-engine/internal/events"
	"github.com/pp-platform/exercise-engine/internal/models"
	"github.com/pp-platform/exercise-engine/internal/repositories"
)

// ExerciseService covers the authoring side: publishing definition
// versions and reading them back.
type ExerciseService interface {
	Publish(ctx context.Context, exercise *models.Exercise, pin bool) (int, error)
	Get(ctx context.Context, id string) (*models.Exercise, error)
	GetVersion(ctx context.Context, id string, version int) (*models.Exercise, error)
	List(ctx context.Context, filters repositories.ExerciseFilters) ([]repositories.ExerciseMeta, error)
	ListVersions(ctx context.Context, id string) ([]repositories.VersionInfo, error)
	Pin(ctx context.Context, id string, version int) error
	Delete(ctx context.Context, id string) error
}

type exerciseService struct {
	repo      repositories.ExerciseRepository
	validator ValidationService
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewExerciseService(
	repo repositories.ExerciseRepository,
	validator ValidationService,
	publisher events.EventPublisher,
	logger *slog.Logger,
) ExerciseService {
	return &exerciseService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		logger:    logger,
	}
}

// Publish validates the definition and appends it as a new version.
func (s *exerciseService) Publish(ctx context.Context, exercise *models.Exercise, pin bool) (int, error) {
	if errs := s.validator.ValidateExercise(exercise); len(errs) > 0 {
		return 0, errs
	}

	version, err := s.repo.SaveVersion(ctx, exercise, pin)
	if err != nil {
		return 0, fmt.Errorf("failed to save exercise version: %w", err)
	}

	s.logger.Info("Published exercise version",
		"exercise_id", exercise.ID,
		"version", version,
		"pinned", pin)

	if err := s.publisher.PublishSessionEvent(ctx, events.NewExercisePublishedEvent(exercise)); err != nil {
		s.logger.Warn("failed to publish exercise event",
			"exercise_id", exercise.ID, "error", err)
	}

	return version, nil
}

func (s *exerciseService) Get(ctx context.Context, id string) (*models.Exercise, error) {
	exercise, err := s.repo.GetCurrent(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", ErrExerciseNotFound, id)
		}
		return nil, fmt.Errorf("failed to get exercise: %w", err)
	}
	return exercise, nil
}

func (s *exerciseService) GetVersion(ctx context.Context, id string, version int) (*models.Exercise, error) {
	exercise, err := s.repo.GetVersion(ctx, id, version)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s v%d", ErrVersionNotFound, id, version)
		}
		return nil, fmt.Errorf("failed to get exercise version: %w", err)
	}
	return exercise, nil
}

func (s *exerciseService) List(ctx context.Context, filters repositories.ExerciseFilters) ([]repositories.ExerciseMeta, error) {
	metas, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	return metas, nil
}

func (s *exerciseService) ListVersions(ctx context.Context, id string) ([]repositories.VersionInfo, error) {
	versions, err := s.repo.ListVersions(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercise versions: %w", err)
	}
	if len(versions) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrExerciseNotFound, id)
	}
	return versions, nil
}

func (s *exerciseService) Pin(ctx context.Context, id string, version int) error {
	if err := s.repo.Pin(ctx, id, version); err != nil {
		if repositories.IsNotFoundError(err) {
			return fmt.Errorf("%w: %s v%d", ErrVersionNotFound, id, version)
		}
		return fmt.Errorf("failed to pin exercise version: %w", err)
	}
	return nil
}

func (s *exerciseService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return fmt.Errorf("%w: %s", ErrExerciseNotFound, id)
		}
		return fmt.Errorf("failed to delete exercise: %w", err)
	}
	return nil
}
