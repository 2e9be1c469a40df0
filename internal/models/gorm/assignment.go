package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Assignment pairs one mentor with one student. The unique index on
// student_id enforces the at-most-one-mentor invariant at the schema
// level; reassignment replaces the row inside a transaction.
type Assignment struct {
	ID           string    `gorm:"column:id;primaryKey;type:uuid"`
	MentorID     string    `gorm:"column:mentor_id;type:uuid;not null;index"`
	StudentID    string    `gorm:"column:student_id;type:uuid;not null;uniqueIndex"`
	Notes        string    `gorm:"column:notes;type:text"`
	AssignedDate time.Time `gorm:"column:assigned_date;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`

	Mentor  *User `gorm:"foreignKey:MentorID"`
	Student *User `gorm:"foreignKey:StudentID"`
}

// TableName specifies the table name for GORM
func (Assignment) TableName() string {
	return "assignments"
}

func (a *Assignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
