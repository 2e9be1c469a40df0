package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CV holds the single curriculum vitae record per student.
type CV struct {
	ID        string    `gorm:"column:id;primaryKey;type:uuid"`
	StudentID string    `gorm:"column:student_id;type:uuid;not null;uniqueIndex"`
	Summary   string    `gorm:"column:summary;type:text"`
	CVURL     string    `gorm:"column:cv_url;type:text"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (CV) TableName() string {
	return "cvs"
}

func (c *CV) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
