package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/pp-platform/exercise-engine/internal/models"
)

// ExerciseMeta is the listing view of a stored exercise: identity and
// version bookkeeping without the definition payload.
type ExerciseMeta struct {
	ID            string              `json:"id"`
	Title         string              `json:"title"`
	Type          models.ExerciseType `json:"type"`
	LatestVersion int                 `json:"latest_version"`
	PinnedVersion *int                `json:"pinned_version"`
	CreatedAt     time.Time           `json:"created"`
	UpdatedAt     time.Time           `json:"updated"`
}

// VersionInfo describes one stored definition version.
type VersionInfo struct {
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created"`
}

// ExerciseFilters narrows List results.
type ExerciseFilters struct {
	Type   *models.ExerciseType `json:"type"`
	Limit  int                  `json:"limit"`
	Offset int                  `json:"offset"`
}

// ExerciseRepository stores versioned exercise definitions. Every save
// appends a new immutable version; the served definition is the pinned
// version when one is set, otherwise the latest.
type ExerciseRepository interface {
	SaveVersion(ctx context.Context, exercise *models.Exercise, pin bool) (int, error)
	GetCurrent(ctx context.Context, id string) (*models.Exercise, error)
	GetVersion(ctx context.Context, id string, version int) (*models.Exercise, error)
	GetMeta(ctx context.Context, id string) (*ExerciseMeta, error)
	ListVersions(ctx context.Context, id string) ([]VersionInfo, error)
	List(ctx context.Context, filters ExerciseFilters) ([]ExerciseMeta, error)
	Pin(ctx context.Context, id string, version int) error
	Delete(ctx context.Context, id string) error
}

// IsNotFoundError reports whether err is a storage-level missing-record
// error, letting services translate it to their own sentinels.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
