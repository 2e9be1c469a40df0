package gorm

import (
	"time"

	"placement-experiment/praxis/internal/constants"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MentoringSession records a mentoring meeting between a student and
// their mentor. RejectionReason is filled by the verification workflow
// when the verdict is rejected.
type MentoringSession struct {
	ID              string               `gorm:"column:id;primaryKey;type:uuid"`
	StudentID       string               `gorm:"column:student_id;type:uuid;not null;index"`
	Title           string               `gorm:"column:title;type:varchar(255);not null"`
	SessionDate     *time.Time           `gorm:"column:session_date"`
	DurationMinutes int                  `gorm:"column:duration_minutes"`
	Notes           string               `gorm:"column:notes;type:text"`
	Status          constants.ItemStatus `gorm:"column:status;type:varchar(20);not null;default:pending;index"`
	RejectionReason *string              `gorm:"column:rejection_reason;type:text"`
	AssignedBy      string               `gorm:"column:assigned_by;type:uuid;not null"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time            `gorm:"column:updated_at;autoUpdateTime"`

	Student *User `gorm:"foreignKey:StudentID"`
}

// TableName specifies the table name for GORM
func (MentoringSession) TableName() string {
	return "mentoring_sessions"
}

func (s *MentoringSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
