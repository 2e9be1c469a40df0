package repositories

import (
	"context"
	"fmt"

	"placement-experiment/praxis/internal/constants"
	gormModels "placement-experiment/praxis/internal/models/gorm"

	"gorm.io/gorm"
)

type QualificationRepository struct {
	db *gorm.DB
}

// NewQualificationRepository creates a new GORM-based qualification repository
func NewQualificationRepository(db *gorm.DB) *QualificationRepository {
	return &QualificationRepository{db: db}
}

func (r *QualificationRepository) Create(ctx context.Context, qualification *gormModels.Qualification) error {
	if err := r.db.WithContext(ctx).Create(qualification).Error; err != nil {
		return fmt.Errorf("failed to create qualification: %w", err)
	}
	return nil
}

func (r *QualificationRepository) GetByID(ctx context.Context, id string) (*gormModels.Qualification, error) {
	var qualification gormModels.Qualification

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&qualification).Error

	if err != nil {
		return nil, err
	}

	return &qualification, nil
}

func (r *QualificationRepository) ListByStudent(ctx context.Context, studentID string) ([]gormModels.Qualification, error) {
	var qualifications []gormModels.Qualification

	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&qualifications).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list qualifications: %w", err)
	}

	return qualifications, nil
}

func (r *QualificationRepository) ListByStudents(ctx context.Context, studentIDs []string) ([]gormModels.Qualification, error) {
	var qualifications []gormModels.Qualification

	if len(studentIDs) == 0 {
		return qualifications, nil
	}

	err := r.db.WithContext(ctx).
		Where("student_id IN ?", studentIDs).
		Order("created_at DESC").
		Find(&qualifications).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list qualifications: %w", err)
	}

	return qualifications, nil
}

func (r *QualificationRepository) ListAll(ctx context.Context, status constants.ItemStatus) ([]gormModels.Qualification, error) {
	var qualifications []gormModels.Qualification

	q := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	if err := q.Find(&qualifications).Error; err != nil {
		return nil, fmt.Errorf("failed to list qualifications: %w", err)
	}

	return qualifications, nil
}

func (r *QualificationRepository) Save(ctx context.Context, qualification *gormModels.Qualification) error {
	if err := r.db.WithContext(ctx).Save(qualification).Error; err != nil {
		return fmt.Errorf("failed to save qualification: %w", err)
	}
	return nil
}

func (r *QualificationRepository) SetStatus(ctx context.Context, id string, status constants.ItemStatus) error {
	res := r.db.WithContext(ctx).
		Model(&gormModels.Qualification{}).
		Where("id = ?", id).
		Update("status", status)

	if res.Error != nil {
		return fmt.Errorf("failed to set qualification status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *QualificationRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&gormModels.Qualification{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete qualification: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
