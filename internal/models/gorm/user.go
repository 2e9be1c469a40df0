package gorm

import (
	"time"

	"placement-experiment/praxis/internal/constants"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account in the placement tracker. Role decides which route
// groups the account may reach; Status gates login.
type User struct {
	ID           string               `gorm:"column:id;primaryKey;type:uuid"`
	Name         string               `gorm:"column:name;type:varchar(255);not null"`
	Email        string               `gorm:"column:email;type:varchar(255);not null;uniqueIndex"`
	PasswordHash string               `gorm:"column:password_hash;type:varchar(255);not null"`
	Role         constants.Role       `gorm:"column:role;type:varchar(20);not null;index"`
	Status       constants.UserStatus `gorm:"column:status;type:varchar(20);not null;default:active"`
	CreatedAt    time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
