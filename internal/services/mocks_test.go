package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/pp-platform/exercise-engine/internal/models"
	"github.com/pp-platform/exercise-engine/internal/repositories"
)

// errNotFoundFromStorage stands in for the storage layer's missing-record
// error in mock expectations.
func errNotFoundFromStorage() error { return gorm.ErrRecordNotFound }

type mockExerciseRepository struct {
	mock.Mock
}

func (m *mockExerciseRepository) SaveVersion(ctx context.Context, exercise *models.Exercise, pin bool) (int, error) {
	args := m.Called(ctx, exercise, pin)
	return args.Int(0), args.Error(1)
}

func (m *mockExerciseRepository) GetCurrent(ctx context.Context, id string) (*models.Exercise, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Exercise), args.Error(1)
}

func (m *mockExerciseRepository) GetVersion(ctx context.Context, id string, version int) (*models.Exercise, error) {
	args := m.Called(ctx, id, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Exercise), args.Error(1)
}

func (m *mockExerciseRepository) GetMeta(ctx context.Context, id string) (*repositories.ExerciseMeta, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.ExerciseMeta), args.Error(1)
}

func (m *mockExerciseRepository) ListVersions(ctx context.Context, id string) ([]repositories.VersionInfo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.VersionInfo), args.Error(1)
}

func (m *mockExerciseRepository) List(ctx context.Context, filters repositories.ExerciseFilters) ([]repositories.ExerciseMeta, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.ExerciseMeta), args.Error(1)
}

func (m *mockExerciseRepository) Pin(ctx context.Context, id string, version int) error {
	args := m.Called(ctx, id, version)
	return args.Error(0)
}

func (m *mockExerciseRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
