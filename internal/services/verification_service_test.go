package services

import (
	"context"
	"errors"
	"testing"

	"placement-experiment/praxis/internal/auth"
	"placement-experiment/praxis/internal/common"
	"placement-experiment/praxis/internal/constants"
	"placement-experiment/praxis/internal/db/repositories"
	"placement-experiment/praxis/internal/models/dtos"
	gormModels "placement-experiment/praxis/internal/models/gorm"

	"gorm.io/gorm"
)

type serviceSet struct {
	assignments   *AssignmentService
	items         *ItemService
	verifications *VerificationService
	messages      *MessageService
	authz         *AuthzService
}

func newServiceSet(db *gorm.DB) *serviceSet {
	assignmentRepo := repositories.NewAssignmentRepository(db)
	userRepo := repositories.NewUserRepository(db)
	activityRepo := repositories.NewActivityRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	qualRepo := repositories.NewQualificationRepository(db)
	verificationRepo := repositories.NewVerificationRepository(db)
	messageRepo := repositories.NewMessageRepository(db)

	authz := NewAuthzService(assignmentRepo, common.NewCacheService(60, 600))
	assignments := NewAssignmentService(assignmentRepo, userRepo, authz, nil)

	return &serviceSet{
		assignments:   assignments,
		items:         NewItemService(activityRepo, sessionRepo, qualRepo, userRepo, assignments, authz),
		verifications: NewVerificationService(verificationRepo, activityRepo, sessionRepo, qualRepo, authz, nil),
		messages:      NewMessageService(messageRepo, userRepo, authz, nil),
		authz:         authz,
	}
}

func claimsFor(user *gormModels.User) auth.UserClaims {
	return &auth.JWTClaims{
		UserUUID:  user.ID,
		RoleValue: user.Role,
	}
}

func TestVerificationService_VerifiedCompletesItem(t *testing.T) {
	db := setupTestDB(t)
	svcs := newServiceSet(db)
	ctx := context.Background()

	mentor := seedUser(t, db, "mentor", constants.RoleMentor)
	student := seedUser(t, db, "student", constants.RoleStudent)
	if _, err := svcs.assignments.Assign(ctx, mentor.ID, student.ID, ""); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	activity, err := svcs.items.CreateActivity(ctx, claimsFor(student), dtos.CreateActivityReq{Title: "Warehouse shift"})
	if err != nil {
		t.Fatalf("CreateActivity failed: %v", err)
	}
	if activity.Status != constants.ItemPending {
		t.Fatalf("Expected pending initial status, got %s", activity.Status)
	}

	verification, err := svcs.verifications.Verify(ctx, claimsFor(mentor), dtos.VerifyReq{
		ItemKind: "activity",
		ItemID:   activity.ID,
		Verdict:  "verified",
	})
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if verification.Status != "verified" {
		t.Errorf("Expected verified status, got %s", verification.Status)
	}

	reloaded, err := svcs.items.GetActivity(ctx, claimsFor(mentor), activity.ID)
	if err != nil {
		t.Fatalf("GetActivity failed: %v", err)
	}
	if reloaded.Status != constants.ItemCompleted {
		t.Errorf("Expected completed item, got %s", reloaded.Status)
	}
}

func TestVerificationService_RejectionRequiresFeedback(t *testing.T) {
	db := setupTestDB(t)
	svcs := newServiceSet(db)
	ctx := context.Background()

	mentor := seedUser(t, db, "mentor", constants.RoleMentor)
	student := seedUser(t, db, "student", constants.RoleStudent)
	if _, err := svcs.assignments.Assign(ctx, mentor.ID, student.ID, ""); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	session, err := svcs.items.CreateSession(ctx, claimsFor(mentor), dtos.CreateSessionReq{
		StudentID: student.ID,
		Title:     "Progress review",
	})
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	_, err = svcs.verifications.Verify(ctx, claimsFor(mentor), dtos.VerifyReq{
		ItemKind: "session",
		ItemID:   session.ID,
		Verdict:  "rejected",
	})
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("Expected ErrInvalid without feedback, got %v", err)
	}

	_, err = svcs.verifications.Verify(ctx, claimsFor(mentor), dtos.VerifyReq{
		ItemKind: "session",
		ItemID:   session.ID,
		Verdict:  "rejected",
		Feedback: "notes are missing",
	})
	if err != nil {
		t.Fatalf("Verify with feedback failed: %v", err)
	}

	var reloaded gormModels.MentoringSession
	if err := db.First(&reloaded, "id = ?", session.ID).Error; err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if reloaded.Status != constants.ItemRejected {
		t.Errorf("Expected rejected item, got %s", reloaded.Status)
	}
	if reloaded.RejectionReason == nil || *reloaded.RejectionReason != "notes are missing" {
		t.Errorf("Expected rejection reason to carry the feedback, got %v", reloaded.RejectionReason)
	}
}

func TestVerificationService_TerminalVerdictAndReopen(t *testing.T) {
	db := setupTestDB(t)
	svcs := newServiceSet(db)
	ctx := context.Background()

	admin := seedUser(t, db, "admin", constants.RoleAdmin)
	mentor := seedUser(t, db, "mentor", constants.RoleMentor)
	student := seedUser(t, db, "student", constants.RoleStudent)
	if _, err := svcs.assignments.Assign(ctx, mentor.ID, student.ID, ""); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	qualification, err := svcs.items.CreateQualification(ctx, claimsFor(student), dtos.CreateQualificationReq{Title: "First aid"})
	if err != nil {
		t.Fatalf("CreateQualification failed: %v", err)
	}

	req := dtos.VerifyReq{ItemKind: "qualification", ItemID: qualification.ID, Verdict: "verified"}
	if _, err := svcs.verifications.Verify(ctx, claimsFor(mentor), req); err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	// a second verdict on a terminal row is refused, even for an admin
	if _, err := svcs.verifications.Verify(ctx, claimsFor(admin), req); !errors.Is(err, ErrConflict) {
		t.Fatalf("Expected ErrConflict on terminal row, got %v", err)
	}

	reopened, err := svcs.verifications.Reopen(ctx, claimsFor(admin), dtos.ReopenReq{
		ItemKind: "qualification",
		ItemID:   qualification.ID,
	})
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	if reopened.Status != "pending" {
		t.Errorf("Expected pending verification after reopen, got %s", reopened.Status)
	}

	var reloaded gormModels.Qualification
	if err := db.First(&reloaded, "id = ?", qualification.ID).Error; err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if reloaded.Status != constants.ItemSubmitted {
		t.Errorf("Expected submitted item after reopen, got %s", reloaded.Status)
	}

	if _, err := svcs.verifications.Verify(ctx, claimsFor(mentor), req); err != nil {
		t.Errorf("Expected verdict after reopen to succeed, got %v", err)
	}
}

func TestVerificationService_UnassignedMentorForbidden(t *testing.T) {
	db := setupTestDB(t)
	svcs := newServiceSet(db)
	ctx := context.Background()

	mentor := seedUser(t, db, "mentor", constants.RoleMentor)
	other := seedUser(t, db, "other-mentor", constants.RoleMentor)
	student := seedUser(t, db, "student", constants.RoleStudent)
	if _, err := svcs.assignments.Assign(ctx, mentor.ID, student.ID, ""); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	activity, err := svcs.items.CreateActivity(ctx, claimsFor(student), dtos.CreateActivityReq{Title: "Shift"})
	if err != nil {
		t.Fatalf("CreateActivity failed: %v", err)
	}

	_, err = svcs.verifications.Verify(ctx, claimsFor(other), dtos.VerifyReq{
		ItemKind: "activity",
		ItemID:   activity.ID,
		Verdict:  "verified",
	})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("Expected ErrForbidden for unassigned mentor, got %v", err)
	}

	// reassignment strips the old mentor's capability immediately
	if _, err := svcs.assignments.Assign(ctx, other.ID, student.ID, ""); err != nil {
		t.Fatalf("Reassign failed: %v", err)
	}
	_, err = svcs.verifications.Verify(ctx, claimsFor(mentor), dtos.VerifyReq{
		ItemKind: "activity",
		ItemID:   activity.ID,
		Verdict:  "verified",
	})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("Expected ErrForbidden for replaced mentor, got %v", err)
	}
}
