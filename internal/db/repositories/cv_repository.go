package repositories

import (
	"context"
	"fmt"

	gormModels "placement-experiment/praxis/internal/models/gorm"

	"gorm.io/gorm"
)

type CVRepository struct {
	db *gorm.DB
}

// NewCVRepository creates a new GORM-based CV repository
func NewCVRepository(db *gorm.DB) *CVRepository {
	return &CVRepository{db: db}
}

func (r *CVRepository) GetByStudent(ctx context.Context, studentID string) (*gormModels.CV, error) {
	var cv gormModels.CV

	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		First(&cv).Error

	if err != nil {
		return nil, err
	}

	return &cv, nil
}

// Upsert creates the student's CV row or updates the existing one
func (r *CVRepository) Upsert(ctx context.Context, cv *gormModels.CV) error {
	existing, err := r.GetByStudent(ctx, cv.StudentID)
	if err == nil {
		existing.Summary = cv.Summary
		existing.CVURL = cv.CVURL
		*cv = *existing
		if err := r.db.WithContext(ctx).Save(existing).Error; err != nil {
			return fmt.Errorf("failed to update cv: %w", err)
		}
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return fmt.Errorf("failed to look up cv: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(cv).Error; err != nil {
		return fmt.Errorf("failed to create cv: %w", err)
	}
	return nil
}
