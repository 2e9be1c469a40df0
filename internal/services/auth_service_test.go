package services

import (
	"context"
	"errors"
	"testing"

	"placement-experiment/praxis/internal/constants"
	"placement-experiment/praxis/internal/db/repositories"
	gormModels "placement-experiment/praxis/internal/models/gorm"
)

func TestAuthService_LoginRejections(t *testing.T) {
	db := setupTestDB(t)
	userRepo := repositories.NewUserRepository(db)
	// token and session backends are never reached on the failure paths
	svc := NewAuthService(userRepo, nil, nil)
	ctx := context.Background()

	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	active := gormModels.User{
		Name:         "Active",
		Email:        "active@praxis.test",
		PasswordHash: hash,
		Role:         constants.RoleStudent,
		Status:       constants.UserActive,
	}
	if err := db.Create(&active).Error; err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	inactive := gormModels.User{
		Name:         "Inactive",
		Email:        "inactive@praxis.test",
		PasswordHash: hash,
		Role:         constants.RoleStudent,
		Status:       constants.UserInactive,
	}
	if err := db.Create(&inactive).Error; err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	// unknown email and wrong password fail the same way
	_, _, err = svc.Login(ctx, "nobody@praxis.test", "correct horse")
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized for unknown email, got %v", err)
	}
	unknownMsg := err.Error()

	_, _, err = svc.Login(ctx, "active@praxis.test", "wrong password")
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized for wrong password, got %v", err)
	}
	if err.Error() != unknownMsg {
		t.Errorf("Expected identical error text for both failures, got %q vs %q", unknownMsg, err.Error())
	}

	_, _, err = svc.Login(ctx, "inactive@praxis.test", "correct horse")
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("Expected ErrForbidden for inactive account, got %v", err)
	}

	_, _, err = svc.Login(ctx, "", "")
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid for empty credentials, got %v", err)
	}
}
