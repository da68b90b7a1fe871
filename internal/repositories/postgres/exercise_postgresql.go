package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pp-platform/exercise-engine/internal/models"
	"github.com/pp-platform/exercise-engine/internal/repositories"
)

// exerciseRow is the catalog record: one row per exercise carrying the
// metadata and a copy of the currently served definition.
type exerciseRow struct {
	ID            string              `gorm:"primaryKey;size:64"`
	Title         string              `gorm:"size:255"`
	Type          models.ExerciseType `gorm:"size:32;index"`
	LatestVersion int
	PinnedVersion *int
	Current       datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (exerciseRow) TableName() string { return "exercises" }

// exerciseVersionRow is one immutable definition version.
type exerciseVersionRow struct {
	ExerciseID string         `gorm:"primaryKey;size:64"`
	Version    int            `gorm:"primaryKey"`
	Definition datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt  time.Time
}

func (exerciseVersionRow) TableName() string { return "exercise_versions" }

type ExercisePostgreSQL struct {
	db *gorm.DB
}

func NewExercisePostgreSQL(db *gorm.DB) repositories.ExerciseRepository {
	return &ExercisePostgreSQL{db: db}
}

// Migrate creates the exercise tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&exerciseRow{}, &exerciseVersionRow{})
}

// SaveVersion appends the next version for the exercise and refreshes the
// catalog row. When pin is true (or nothing was pinned yet) the new version
// becomes the served one. Returns the version number written.
func (r *ExercisePostgreSQL) SaveVersion(ctx context.Context, exercise *models.Exercise, pin bool) (int, error) {
	payload, err := json.Marshal(exercise)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal exercise definition: %w", err)
	}

	var version int
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row exerciseRow
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&row, "id = ?", exercise.ID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			version = 1
			row = exerciseRow{
				ID:            exercise.ID,
				Title:         exercise.Title,
				Type:          exercise.Type,
				LatestVersion: version,
				Current:       datatypes.JSON(payload),
			}
			if pin {
				row.PinnedVersion = &version
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to create exercise: %w", err)
			}
		case err != nil:
			return fmt.Errorf("failed to load exercise: %w", err)
		default:
			version = row.LatestVersion + 1
			row.Title = exercise.Title
			row.Type = exercise.Type
			row.LatestVersion = version
			row.Current = datatypes.JSON(payload)
			if pin || row.PinnedVersion == nil {
				row.PinnedVersion = &version
			}
			if err := tx.Save(&row).Error; err != nil {
				return fmt.Errorf("failed to update exercise: %w", err)
			}
		}

		versionRow := exerciseVersionRow{
			ExerciseID: exercise.ID,
			Version:    version,
			Definition: datatypes.JSON(payload),
		}
		if err := tx.Create(&versionRow).Error; err != nil {
			return fmt.Errorf("failed to create exercise version: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	exercise.Version = version
	return version, nil
}

// GetCurrent returns the served definition: the pinned version when set,
// otherwise the copy kept on the catalog row.
func (r *ExercisePostgreSQL) GetCurrent(ctx context.Context, id string) (*models.Exercise, error) {
	var row exerciseRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}

	if row.PinnedVersion != nil && *row.PinnedVersion != row.LatestVersion {
		return r.GetVersion(ctx, id, *row.PinnedVersion)
	}
	return decodeDefinition(row.Current, row.LatestVersion)
}

func (r *ExercisePostgreSQL) GetVersion(ctx context.Context, id string, version int) (*models.Exercise, error) {
	var row exerciseVersionRow
	err := r.db.WithContext(ctx).
		First(&row, "exercise_id = ? AND version = ?", id, version).Error
	if err != nil {
		return nil, err
	}
	return decodeDefinition(row.Definition, row.Version)
}

func (r *ExercisePostgreSQL) GetMeta(ctx context.Context, id string) (*repositories.ExerciseMeta, error) {
	var row exerciseRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	meta := metaFromRow(row)
	return &meta, nil
}

func (r *ExercisePostgreSQL) ListVersions(ctx context.Context, id string) ([]repositories.VersionInfo, error) {
	var rows []exerciseVersionRow
	err := r.db.WithContext(ctx).
		Where("exercise_id = ?", id).
		Order("version ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	infos := make([]repositories.VersionInfo, 0, len(rows))
	for _, row := range rows {
		infos = append(infos, repositories.VersionInfo{Version: row.Version, CreatedAt: row.CreatedAt})
	}
	return infos, nil
}

func (r *ExercisePostgreSQL) List(ctx context.Context, filters repositories.ExerciseFilters) ([]repositories.ExerciseMeta, error) {
	query := r.db.WithContext(ctx).Model(&exerciseRow{}).Order("updated_at DESC")
	if filters.Type != nil {
		query = query.Where("type = ?", *filters.Type)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var rows []exerciseRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	metas := make([]repositories.ExerciseMeta, 0, len(rows))
	for _, row := range rows {
		metas = append(metas, metaFromRow(row))
	}
	return metas, nil
}

// Pin marks an existing version as the served one.
func (r *ExercisePostgreSQL) Pin(ctx context.Context, id string, version int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var versionRow exerciseVersionRow
		err := tx.First(&versionRow, "exercise_id = ? AND version = ?", id, version).Error
		if err != nil {
			return err
		}

		result := tx.Model(&exerciseRow{}).
			Where("id = ?", id).
			Update("pinned_version", version)
		if result.Error != nil {
			return fmt.Errorf("failed to pin version: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *ExercisePostgreSQL) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&exerciseVersionRow{}, "exercise_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete exercise versions: %w", err)
		}
		result := tx.Delete(&exerciseRow{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete exercise: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func metaFromRow(row exerciseRow) repositories.ExerciseMeta {
	return repositories.ExerciseMeta{
		ID:            row.ID,
		Title:         row.Title,
		Type:          row.Type,
		LatestVersion: row.LatestVersion,
		PinnedVersion: row.PinnedVersion,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func decodeDefinition(data datatypes.JSON, version int) (*models.Exercise, error) {
	var exercise models.Exercise
	if err := json.Unmarshal(data, &exercise); err != nil {
		return nil, fmt.Errorf("failed to decode exercise definition: %w", err)
	}
	exercise.Version = version
	return &exercise, nil
}
