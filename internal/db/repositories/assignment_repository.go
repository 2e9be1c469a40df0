package repositories

import (
	"context"
	"fmt"

	gormModels "placement-experiment/praxis/internal/models/gorm"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a new GORM-based assignment repository
func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// Replace removes any existing assignment for the student and inserts
// the new one inside a single transaction, so the at-most-one-mentor
// invariant holds even when two reassignments interleave.
func (r *AssignmentRepository) Replace(ctx context.Context, assignment *gormModels.Assignment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", assignment.StudentID).
			Delete(&gormModels.Assignment{}).Error; err != nil {
			return fmt.Errorf("failed to clear previous assignment: %w", err)
		}

		if err := tx.Create(assignment).Error; err != nil {
			return fmt.Errorf("failed to create assignment: %w", err)
		}

		return nil
	})
}

// DeleteByStudent removes the student's assignment, reporting how many
// rows went away so callers can distinguish a no-op
func (r *AssignmentRepository) DeleteByStudent(ctx context.Context, studentID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Delete(&gormModels.Assignment{})

	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete assignment: %w", res.Error)
	}

	return res.RowsAffected, nil
}

func (r *AssignmentRepository) GetByStudent(ctx context.Context, studentID string) (*gormModels.Assignment, error) {
	var assignment gormModels.Assignment

	err := r.db.WithContext(ctx).
		Preload("Mentor").
		Where("student_id = ?", studentID).
		First(&assignment).Error

	if err != nil {
		return nil, err
	}

	return &assignment, nil
}

func (r *AssignmentRepository) ListByMentor(ctx context.Context, mentorID string) ([]gormModels.Assignment, error) {
	var assignments []gormModels.Assignment

	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("mentor_id = ?", mentorID).
		Order("assigned_date DESC").
		Find(&assignments).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	return assignments, nil
}

// IsAssigned reports whether the mentor currently owns the student
func (r *AssignmentRepository) IsAssigned(ctx context.Context, mentorID, studentID string) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&gormModels.Assignment{}).
		Where("mentor_id = ? AND student_id = ?", mentorID, studentID).
		Count(&count).Error

	if err != nil {
		return false, fmt.Errorf("failed to check assignment: %w", err)
	}

	return count > 0, nil
}

func (r *AssignmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&gormModels.Assignment{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count assignments: %w", err)
	}
	return count, nil
}
