package gorm

import (
	"time"

	"placement-experiment/praxis/internal/constants"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Verification is the one-to-one verdict row for an item. The composite
// unique index makes the upsert safe under concurrent verdicts.
type Verification struct {
	ID         string                       `gorm:"column:id;primaryKey;type:uuid"`
	ItemKind   constants.ItemKind           `gorm:"column:item_kind;type:varchar(20);not null;uniqueIndex:idx_verifications_item"`
	ItemID     string                       `gorm:"column:item_id;type:uuid;not null;uniqueIndex:idx_verifications_item"`
	Status     constants.VerificationStatus `gorm:"column:status;type:varchar(20);not null;default:pending;index"`
	Feedback   *string                      `gorm:"column:feedback;type:text"`
	VerifiedBy *string                      `gorm:"column:verified_by;type:uuid"`
	CreatedAt  time.Time                    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time                    `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Verification) TableName() string {
	return "verifications"
}

func (v *Verification) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
