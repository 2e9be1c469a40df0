package gorm

import (
	"time"

	"placement-experiment/praxis/internal/constants"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Qualification is a certificate or award claimed by a student.
type Qualification struct {
	ID                  string               `gorm:"column:id;primaryKey;type:uuid"`
	StudentID           string               `gorm:"column:student_id;type:uuid;not null;index"`
	Title               string               `gorm:"column:title;type:varchar(255);not null"`
	IssuingOrganization string               `gorm:"column:issuing_organization;type:varchar(255)"`
	IssueDate           *time.Time           `gorm:"column:issue_date"`
	ExpiryDate          *time.Time           `gorm:"column:expiry_date"`
	CertificateURL      string               `gorm:"column:certificate_url;type:text"`
	Status              constants.ItemStatus `gorm:"column:status;type:varchar(20);not null;default:pending;index"`
	AssignedBy          string               `gorm:"column:assigned_by;type:uuid;not null"`
	CreatedAt           time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time            `gorm:"column:updated_at;autoUpdateTime"`

	Student *User `gorm:"foreignKey:StudentID"`
}

// TableName specifies the table name for GORM
func (Qualification) TableName() string {
	return "qualifications"
}

func (q *Qualification) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}
