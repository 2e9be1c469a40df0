package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Skill is a catalogue entry managed by admins.
type Skill struct {
	ID        string    `gorm:"column:id;primaryKey;type:uuid"`
	Name      string    `gorm:"column:name;type:varchar(255);not null;uniqueIndex"`
	Category  string    `gorm:"column:category;type:varchar(100);index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Skill) TableName() string {
	return "skills"
}

func (s *Skill) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// StudentSkill is a student's self-reported proficiency, optionally
// endorsed by their mentor or an admin.
type StudentSkill struct {
	ID         string    `gorm:"column:id;primaryKey;type:uuid"`
	StudentID  string    `gorm:"column:student_id;type:uuid;not null;uniqueIndex:idx_student_skill"`
	SkillID    string    `gorm:"column:skill_id;type:uuid;not null;uniqueIndex:idx_student_skill"`
	Level      int       `gorm:"column:level;not null"`
	EndorsedBy *string   `gorm:"column:endorsed_by;type:uuid"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Skill *Skill `gorm:"foreignKey:SkillID"`
}

// TableName specifies the table name for GORM
func (StudentSkill) TableName() string {
	return "student_skills"
}

func (s *StudentSkill) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
