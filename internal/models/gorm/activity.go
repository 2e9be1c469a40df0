package gorm

import (
	"time"

	"placement-experiment/praxis/internal/constants"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity is a student-submitted evidence item (work placement task,
// project, volunteering). Status is owned by the verification workflow.
type Activity struct {
	ID              string               `gorm:"column:id;primaryKey;type:uuid"`
	StudentID       string               `gorm:"column:student_id;type:uuid;not null;index"`
	Title           string               `gorm:"column:title;type:varchar(255);not null"`
	ActivityType    string               `gorm:"column:activity_type;type:varchar(100)"`
	DateCompleted   *time.Time           `gorm:"column:date_completed"`
	DurationMinutes int                  `gorm:"column:duration_minutes"`
	EvidenceURL     string               `gorm:"column:evidence_url;type:text"`
	Status          constants.ItemStatus `gorm:"column:status;type:varchar(20);not null;default:pending;index"`
	AssignedBy      string               `gorm:"column:assigned_by;type:uuid;not null"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time            `gorm:"column:updated_at;autoUpdateTime"`

	Student *User `gorm:"foreignKey:StudentID"`
}

// TableName specifies the table name for GORM
func (Activity) TableName() string {
	return "activities"
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
