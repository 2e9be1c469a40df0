package repositories

import (
	"context"
	"fmt"

	"placement-experiment/praxis/internal/constants"
	gormModels "placement-experiment/praxis/internal/models/gorm"

	"gorm.io/gorm"
)

type SessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new GORM-based mentoring session repository
func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session *gormModels.MentoringSession) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id string) (*gormModels.MentoringSession, error) {
	var session gormModels.MentoringSession

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&session).Error

	if err != nil {
		return nil, err
	}

	return &session, nil
}

func (r *SessionRepository) ListByStudent(ctx context.Context, studentID string) ([]gormModels.MentoringSession, error) {
	var sessions []gormModels.MentoringSession

	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&sessions).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	return sessions, nil
}

func (r *SessionRepository) ListByStudents(ctx context.Context, studentIDs []string) ([]gormModels.MentoringSession, error) {
	var sessions []gormModels.MentoringSession

	if len(studentIDs) == 0 {
		return sessions, nil
	}

	err := r.db.WithContext(ctx).
		Where("student_id IN ?", studentIDs).
		Order("created_at DESC").
		Find(&sessions).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	return sessions, nil
}

func (r *SessionRepository) ListAll(ctx context.Context, status constants.ItemStatus) ([]gormModels.MentoringSession, error) {
	var sessions []gormModels.MentoringSession

	q := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	if err := q.Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	return sessions, nil
}

func (r *SessionRepository) Save(ctx context.Context, session *gormModels.MentoringSession) error {
	if err := r.db.WithContext(ctx).Save(session).Error; err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// SetStatus updates lifecycle state; a rejection reason may accompany a
// rejected verdict
func (r *SessionRepository) SetStatus(ctx context.Context, id string, status constants.ItemStatus, rejectionReason *string) error {
	updates := map[string]interface{}{"status": status}
	if rejectionReason != nil {
		updates["rejection_reason"] = *rejectionReason
	} else if status != constants.ItemRejected {
		updates["rejection_reason"] = nil
	}

	res := r.db.WithContext(ctx).
		Model(&gormModels.MentoringSession{}).
		Where("id = ?", id).
		Updates(updates)

	if res.Error != nil {
		return fmt.Errorf("failed to set session status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&gormModels.MentoringSession{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
