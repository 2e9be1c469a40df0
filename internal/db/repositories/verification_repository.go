package repositories

import (
	"context"
	"fmt"

	"placement-experiment/praxis/internal/constants"
	gormModels "placement-experiment/praxis/internal/models/gorm"

	"gorm.io/gorm"
)

type VerificationRepository struct {
	db *gorm.DB
}

// NewVerificationRepository creates a new GORM-based verification repository
func NewVerificationRepository(db *gorm.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

func (r *VerificationRepository) GetByItem(ctx context.Context, kind constants.ItemKind, itemID string) (*gormModels.Verification, error) {
	var verification gormModels.Verification

	err := r.db.WithContext(ctx).
		Where("item_kind = ? AND item_id = ?", kind, itemID).
		First(&verification).Error

	if err != nil {
		return nil, err
	}

	return &verification, nil
}

func (r *VerificationRepository) Create(ctx context.Context, verification *gormModels.Verification) error {
	if err := r.db.WithContext(ctx).Create(verification).Error; err != nil {
		return fmt.Errorf("failed to create verification: %w", err)
	}
	return nil
}

func (r *VerificationRepository) Save(ctx context.Context, verification *gormModels.Verification) error {
	if err := r.db.WithContext(ctx).Save(verification).Error; err != nil {
		return fmt.Errorf("failed to save verification: %w", err)
	}
	return nil
}

func (r *VerificationRepository) DeleteByItem(ctx context.Context, kind constants.ItemKind, itemID string) error {
	err := r.db.WithContext(ctx).
		Where("item_kind = ? AND item_id = ?", kind, itemID).
		Delete(&gormModels.Verification{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete verification: %w", err)
	}
	return nil
}
