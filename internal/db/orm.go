package db

import (
	"fmt"

	gormModels "placement-experiment/praxis/internal/models/gorm"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var PgDB *gorm.DB

func InitPostgresORM(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	PgDB = db
	return db, nil
}

// AutoMigrate creates or updates the schema for every tracked entity
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&gormModels.User{},
		&gormModels.Assignment{},
		&gormModels.Activity{},
		&gormModels.MentoringSession{},
		&gormModels.Qualification{},
		&gormModels.Verification{},
		&gormModels.Message{},
		&gormModels.Skill{},
		&gormModels.StudentSkill{},
		&gormModels.CV{},
	)
}
