package services

import (
	"context"
	"fmt"

	"placement-experiment/praxis/internal/auth"
	"placement-experiment/praxis/internal/constants"
	"placement-experiment/praxis/internal/db/repositories"
	"placement-experiment/praxis/internal/logging"
	"placement-experiment/praxis/internal/metrics"
	"placement-experiment/praxis/internal/models/dtos"
	gormModels "placement-experiment/praxis/internal/models/gorm"

	"gorm.io/gorm"
)

// VerificationService is the single write path for item status beyond
// creation. A verdict lands on the verification row and its parent item
// in the same call; verified and rejected rows are terminal until an
// explicit reopen.
type VerificationService struct {
	verificationRepo *repositories.VerificationRepository
	activityRepo     *repositories.ActivityRepository
	sessionRepo      *repositories.SessionRepository
	qualRepo         *repositories.QualificationRepository
	authz            *AuthzService
	metricsReg       *metrics.MetricsRegistry
}

func NewVerificationService(verificationRepo *repositories.VerificationRepository,
	activityRepo *repositories.ActivityRepository, sessionRepo *repositories.SessionRepository,
	qualRepo *repositories.QualificationRepository, authz *AuthzService,
	metricsReg *metrics.MetricsRegistry) *VerificationService {
	return &VerificationService{
		verificationRepo: verificationRepo,
		activityRepo:     activityRepo,
		sessionRepo:      sessionRepo,
		qualRepo:         qualRepo,
		authz:            authz,
		metricsReg:       metricsReg,
	}
}

func verificationResponse(v *gormModels.Verification) dtos.VerificationResponse {
	return dtos.VerificationResponse{
		ID:         v.ID,
		ItemKind:   string(v.ItemKind),
		ItemID:     v.ItemID,
		Status:     string(v.Status),
		Feedback:   v.Feedback,
		VerifiedBy: v.VerifiedBy,
	}
}

// itemOwner resolves the student an item belongs to
func (s *VerificationService) itemOwner(ctx context.Context, kind constants.ItemKind, itemID string) (string, error) {
	var studentID string
	var err error

	switch kind {
	case constants.KindActivity:
		var activity *gormModels.Activity
		if activity, err = s.activityRepo.GetByID(ctx, itemID); err == nil {
			studentID = activity.StudentID
		}
	case constants.KindSession:
		var session *gormModels.MentoringSession
		if session, err = s.sessionRepo.GetByID(ctx, itemID); err == nil {
			studentID = session.StudentID
		}
	case constants.KindQualification:
		var qualification *gormModels.Qualification
		if qualification, err = s.qualRepo.GetByID(ctx, itemID); err == nil {
			studentID = qualification.StudentID
		}
	}

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", fmt.Errorf("%w: %s", ErrNotFound, constants.MsgItemNotFound)
		}
		return "", fmt.Errorf("failed to fetch item: %w", err)
	}
	return studentID, nil
}

// setItemStatus writes the parent item's status; rejections carry the
// feedback into a session's rejection_reason
func (s *VerificationService) setItemStatus(ctx context.Context, kind constants.ItemKind, itemID string, status constants.ItemStatus, feedback *string) error {
	switch kind {
	case constants.KindActivity:
		return s.activityRepo.SetStatus(ctx, itemID, status)
	case constants.KindSession:
		var reason *string
		if status == constants.ItemRejected {
			reason = feedback
		}
		return s.sessionRepo.SetStatus(ctx, itemID, status, reason)
	case constants.KindQualification:
		return s.qualRepo.SetStatus(ctx, itemID, status)
	}
	return fmt.Errorf("%w: unknown item kind %q", ErrInvalid, kind)
}

// requireVerifier checks that the actor may record a verdict on the
// item: admins always, mentors only for students on their live roster.
// The live query means an unassigned mentor loses the capability the
// moment the registry changes.
func (s *VerificationService) requireVerifier(ctx context.Context, claims auth.UserClaims, studentID string) error {
	switch constants.Role(claims.Role()) {
	case constants.RoleAdmin:
		return nil
	case constants.RoleMentor:
		owns, err := s.authz.MentorOwnsLive(ctx, claims.UserID(), studentID)
		if err != nil {
			return err
		}
		if !owns {
			return fmt.Errorf("%w: %s", ErrForbidden, constants.MsgNotAssigned)
		}
		return nil
	}
	return fmt.Errorf("%w: only mentors and admins may verify", ErrForbidden)
}

// Verify records a verdict. The verification row is upserted, the
// parent item status follows the verdict, and a second verdict on a
// terminal row is rejected outright.
func (s *VerificationService) Verify(ctx context.Context, claims auth.UserClaims, req dtos.VerifyReq) (*dtos.VerificationResponse, error) {
	kind := constants.ItemKind(req.ItemKind)
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown item kind %q", ErrInvalid, req.ItemKind)
	}
	verdict := constants.Verdict(req.Verdict)
	if !verdict.IsValid() {
		return nil, fmt.Errorf("%w: verdict must be %q or %q", ErrInvalid, constants.VerdictVerified, constants.VerdictRejected)
	}
	if verdict == constants.VerdictRejected && req.Feedback == "" {
		return nil, fmt.Errorf("%w: feedback is required when rejecting", ErrInvalid)
	}

	studentID, err := s.itemOwner(ctx, kind, req.ItemID)
	if err != nil {
		return nil, err
	}
	if err := s.requireVerifier(ctx, claims, studentID); err != nil {
		return nil, err
	}

	verification, err := s.verificationRepo.GetByItem(ctx, kind, req.ItemID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to fetch verification: %w", err)
	}

	if verification != nil && verification.Status.Terminal() {
		return nil, fmt.Errorf("%w: item already %s, reopen it first", ErrConflict, verification.Status)
	}

	verifierID := claims.UserID()
	var feedback *string
	if req.Feedback != "" {
		feedback = &req.Feedback
	}

	if verification == nil {
		verification = &gormModels.Verification{
			ItemKind: kind,
			ItemID:   req.ItemID,
		}
	}
	verification.Status = constants.VerificationStatus(verdict)
	verification.Feedback = feedback
	verification.VerifiedBy = &verifierID

	if verification.ID == "" {
		err = s.verificationRepo.Create(ctx, verification)
	} else {
		err = s.verificationRepo.Save(ctx, verification)
	}
	if err != nil {
		return nil, err
	}

	itemStatus := constants.ItemCompleted
	if verdict == constants.VerdictRejected {
		itemStatus = constants.ItemRejected
	}
	if err := s.setItemStatus(ctx, kind, req.ItemID, itemStatus, feedback); err != nil {
		return nil, err
	}

	if s.metricsReg != nil {
		s.metricsReg.VerificationsTotal.WithLabelValues(string(kind), string(verdict)).Inc()
	}

	logging.Info("Verdict recorded",
		"item_kind", kind,
		"item_id", req.ItemID,
		"verdict", verdict,
		"verified_by", verifierID,
	)

	resp := verificationResponse(verification)
	return &resp, nil
}

// Reopen moves a terminal verification back to pending and the parent
// item back to submitted so a fresh verdict can be recorded
func (s *VerificationService) Reopen(ctx context.Context, claims auth.UserClaims, req dtos.ReopenReq) (*dtos.VerificationResponse, error) {
	kind := constants.ItemKind(req.ItemKind)
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown item kind %q", ErrInvalid, req.ItemKind)
	}

	studentID, err := s.itemOwner(ctx, kind, req.ItemID)
	if err != nil {
		return nil, err
	}
	if err := s.requireVerifier(ctx, claims, studentID); err != nil {
		return nil, err
	}

	verification, err := s.verificationRepo.GetByItem(ctx, kind, req.ItemID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: no verdict recorded for this item", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch verification: %w", err)
	}
	if !verification.Status.Terminal() {
		return nil, fmt.Errorf("%w: verification is still pending", ErrConflict)
	}

	verification.Status = constants.VerificationPending
	verification.Feedback = nil
	verification.VerifiedBy = nil

	if err := s.verificationRepo.Save(ctx, verification); err != nil {
		return nil, err
	}
	if err := s.setItemStatus(ctx, kind, req.ItemID, constants.ItemSubmitted, nil); err != nil {
		return nil, err
	}

	logging.Info("Verification reopened",
		"item_kind", kind,
		"item_id", req.ItemID,
		"reopened_by", claims.UserID(),
	)

	resp := verificationResponse(verification)
	return &resp, nil
}

// Status returns the verification row for an item, subject to the same
// visibility rules as the item itself
func (s *VerificationService) Status(ctx context.Context, claims auth.UserClaims, kind constants.ItemKind, itemID string) (*dtos.VerificationResponse, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown item kind %q", ErrInvalid, kind)
	}

	studentID, err := s.itemOwner(ctx, kind, itemID)
	if err != nil {
		return nil, err
	}

	ok, err := s.authz.CanAccessStudent(ctx, claims, studentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no access to this student", ErrForbidden)
	}

	verification, err := s.verificationRepo.GetByItem(ctx, kind, itemID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: no verdict recorded for this item", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch verification: %w", err)
	}

	resp := verificationResponse(verification)
	return &resp, nil
}
