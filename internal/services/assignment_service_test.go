package services

import (
	"context"
	"errors"
	"testing"

	"placement-experiment/praxis/internal/common"
	"placement-experiment/praxis/internal/constants"
	"placement-experiment/praxis/internal/db/repositories"
	gormModels "placement-experiment/praxis/internal/models/gorm"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Setup test database
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
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
	if err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string, role constants.Role) *gormModels.User {
	t.Helper()

	user := gormModels.User{
		Name:         name,
		Email:        name + "@praxis.test",
		PasswordHash: "not-a-real-hash",
		Role:         role,
		Status:       constants.UserActive,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to seed user %s: %v", name, err)
	}
	return &user
}

func newAssignmentService(db *gorm.DB) (*AssignmentService, *AuthzService) {
	assignmentRepo := repositories.NewAssignmentRepository(db)
	userRepo := repositories.NewUserRepository(db)
	authz := NewAuthzService(assignmentRepo, common.NewCacheService(60, 600))
	return NewAssignmentService(assignmentRepo, userRepo, authz, nil), authz
}

func TestAssignmentService_Assign_ReplacesExistingMentor(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newAssignmentService(db)
	ctx := context.Background()

	mentor1 := seedUser(t, db, "mentor1", constants.RoleMentor)
	mentor2 := seedUser(t, db, "mentor2", constants.RoleMentor)
	student := seedUser(t, db, "student1", constants.RoleStudent)

	if _, err := svc.Assign(ctx, mentor1.ID, student.ID, "first pairing"); err != nil {
		t.Fatalf("First assign failed: %v", err)
	}
	if _, err := svc.Assign(ctx, mentor2.ID, student.ID, "reassigned"); err != nil {
		t.Fatalf("Reassign failed: %v", err)
	}

	current, err := svc.GetMentorOf(ctx, student.ID)
	if err != nil {
		t.Fatalf("GetMentorOf failed: %v", err)
	}
	if current.MentorID != mentor2.ID {
		t.Errorf("Expected mentor %s, got %s", mentor2.ID, current.MentorID)
	}

	// the student must never hold two assignment rows
	var count int64
	if err := db.Model(&gormModels.Assignment{}).Where("student_id = ?", student.ID).Count(&count).Error; err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 assignment row, got %d", count)
	}

	roster, err := svc.ListForMentor(ctx, mentor1.ID)
	if err != nil {
		t.Fatalf("ListForMentor failed: %v", err)
	}
	if len(roster) != 0 {
		t.Errorf("Expected empty roster for replaced mentor, got %d entries", len(roster))
	}
}

func TestAssignmentService_Assign_RejectsWrongRoles(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newAssignmentService(db)
	ctx := context.Background()

	mentor := seedUser(t, db, "mentor", constants.RoleMentor)
	student := seedUser(t, db, "student", constants.RoleStudent)

	if _, err := svc.Assign(ctx, student.ID, student.ID, ""); !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid for student as mentor, got %v", err)
	}
	if _, err := svc.Assign(ctx, mentor.ID, mentor.ID, ""); !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid for mentor as student, got %v", err)
	}
	if _, err := svc.Assign(ctx, "missing-id", student.ID, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown mentor, got %v", err)
	}
}

func TestAssignmentService_Unassign(t *testing.T) {
	db := setupTestDB(t)
	svc, authz := newAssignmentService(db)
	ctx := context.Background()

	mentor := seedUser(t, db, "mentor", constants.RoleMentor)
	student := seedUser(t, db, "student", constants.RoleStudent)

	if _, err := svc.Assign(ctx, mentor.ID, student.ID, ""); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	if err := svc.Unassign(ctx, student.ID); err != nil {
		t.Fatalf("Unassign failed: %v", err)
	}

	owns, err := authz.MentorOwnsLive(ctx, mentor.ID, student.ID)
	if err != nil {
		t.Fatalf("MentorOwnsLive failed: %v", err)
	}
	if owns {
		t.Error("Expected mentor to lose the student after unassign")
	}

	if err := svc.Unassign(ctx, student.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for second unassign, got %v", err)
	}
}

func TestAuthzService_CacheInvalidatedOnReassign(t *testing.T) {
	db := setupTestDB(t)
	svc, authz := newAssignmentService(db)
	ctx := context.Background()

	mentor1 := seedUser(t, db, "mentor1", constants.RoleMentor)
	mentor2 := seedUser(t, db, "mentor2", constants.RoleMentor)
	student := seedUser(t, db, "student", constants.RoleStudent)

	if _, err := svc.Assign(ctx, mentor1.ID, student.ID, ""); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	// warm the cache
	owns, err := authz.MentorOwns(ctx, mentor1.ID, student.ID)
	if err != nil || !owns {
		t.Fatalf("Expected mentor1 to own student, got owns=%v err=%v", owns, err)
	}

	if _, err := svc.Assign(ctx, mentor2.ID, student.ID, ""); err != nil {
		t.Fatalf("Reassign failed: %v", err)
	}

	owns, err = authz.MentorOwns(ctx, mentor1.ID, student.ID)
	if err != nil {
		t.Fatalf("MentorOwns failed: %v", err)
	}
	if owns {
		t.Error("Expected cached ownership to be invalidated after reassign")
	}

	owns, err = authz.MentorOwns(ctx, mentor2.ID, student.ID)
	if err != nil || !owns {
		t.Errorf("Expected mentor2 to own student, got owns=%v err=%v", owns, err)
	}
}
