package repositories

import (
	"context"
	"fmt"

	"placement-experiment/praxis/internal/constants"
	gormModels "placement-experiment/praxis/internal/models/gorm"

	"gorm.io/gorm"
)

type ActivityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new GORM-based activity repository
func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, activity *gormModels.Activity) error {
	if err := r.db.WithContext(ctx).Create(activity).Error; err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

func (r *ActivityRepository) GetByID(ctx context.Context, id string) (*gormModels.Activity, error) {
	var activity gormModels.Activity

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&activity).Error

	if err != nil {
		return nil, err
	}

	return &activity, nil
}

func (r *ActivityRepository) ListByStudent(ctx context.Context, studentID string) ([]gormModels.Activity, error) {
	var activities []gormModels.Activity

	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&activities).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	return activities, nil
}

// ListByStudents returns the activities of any of the given students,
// used for a mentor's roster view
func (r *ActivityRepository) ListByStudents(ctx context.Context, studentIDs []string) ([]gormModels.Activity, error) {
	var activities []gormModels.Activity

	if len(studentIDs) == 0 {
		return activities, nil
	}

	err := r.db.WithContext(ctx).
		Where("student_id IN ?", studentIDs).
		Order("created_at DESC").
		Find(&activities).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	return activities, nil
}

func (r *ActivityRepository) ListAll(ctx context.Context, status constants.ItemStatus) ([]gormModels.Activity, error) {
	var activities []gormModels.Activity

	q := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	if err := q.Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	return activities, nil
}

func (r *ActivityRepository) Save(ctx context.Context, activity *gormModels.Activity) error {
	if err := r.db.WithContext(ctx).Save(activity).Error; err != nil {
		return fmt.Errorf("failed to save activity: %w", err)
	}
	return nil
}

// SetStatus is the only write path for activity status; it belongs to
// the verification workflow
func (r *ActivityRepository) SetStatus(ctx context.Context, id string, status constants.ItemStatus) error {
	res := r.db.WithContext(ctx).
		Model(&gormModels.Activity{}).
		Where("id = ?", id).
		Update("status", status)

	if res.Error != nil {
		return fmt.Errorf("failed to set activity status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ActivityRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&gormModels.Activity{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete activity: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
