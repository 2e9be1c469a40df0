package services

import (
	"context"
	"errors"
	"testing"

	"placement-experiment/praxis/internal/common"
	"placement-experiment/praxis/internal/constants"
	"placement-experiment/praxis/internal/db/repositories"
	"placement-experiment/praxis/internal/models/dtos"
	gormModels "placement-experiment/praxis/internal/models/gorm"
)

func TestCVService_UpsertAndVisibility(t *testing.T) {
	db := setupTestDB(t)
	assignmentRepo := repositories.NewAssignmentRepository(db)
	userRepo := repositories.NewUserRepository(db)
	authz := NewAuthzService(assignmentRepo, common.NewCacheService(60, 600))
	assignments := NewAssignmentService(assignmentRepo, userRepo, authz, nil)
	svc := NewCVService(repositories.NewCVRepository(db), authz)
	ctx := context.Background()

	mentor := seedUser(t, db, "mentor", constants.RoleMentor)
	student := seedUser(t, db, "student", constants.RoleStudent)
	otherStudent := seedUser(t, db, "student2", constants.RoleStudent)
	if _, err := assignments.Assign(ctx, mentor.ID, student.ID, ""); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	if _, err := svc.Upsert(ctx, claimsFor(mentor), dtos.UpsertCVReq{Summary: "x"}); !errors.Is(err, ErrForbidden) {
		t.Errorf("Expected ErrForbidden for mentor upsert, got %v", err)
	}
	if _, err := svc.Upsert(ctx, claimsFor(student), dtos.UpsertCVReq{}); !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid for empty upsert, got %v", err)
	}

	first, err := svc.Upsert(ctx, claimsFor(student), dtos.UpsertCVReq{Summary: "v1"})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	second, err := svc.Upsert(ctx, claimsFor(student), dtos.UpsertCVReq{Summary: "v2", CVURL: "https://cv.example/s"})
	if err != nil {
		t.Fatalf("Second upsert failed: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("Expected the same CV row to be updated, got %s vs %s", first.ID, second.ID)
	}

	var count int64
	if err := db.Model(&gormModels.CV{}).Where("student_id = ?", student.ID).Count(&count).Error; err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 CV row, got %d", count)
	}

	// mentor of the student may read, a stranger may not
	cv, err := svc.Get(ctx, claimsFor(mentor), student.ID)
	if err != nil {
		t.Fatalf("Mentor read failed: %v", err)
	}
	if cv.Summary != "v2" {
		t.Errorf("Expected latest summary, got %s", cv.Summary)
	}
	if _, err := svc.Get(ctx, claimsFor(otherStudent), student.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("Expected ErrForbidden for stranger read, got %v", err)
	}
	if _, err := svc.Get(ctx, claimsFor(mentor), otherStudent.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("Expected ErrForbidden for unassigned mentor read, got %v", err)
	}
}
