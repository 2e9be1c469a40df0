package services

import (
	"context"
	"fmt"
	"time"

	"placement-experiment/praxis/internal/auth"
	"placement-experiment/praxis/internal/constants"
	"placement-experiment/praxis/internal/db/repositories"
	"placement-experiment/praxis/internal/models/dtos"
	gormModels "placement-experiment/praxis/internal/models/gorm"

	"gorm.io/gorm"
)

// ItemService owns the lifecycle of activities, mentoring sessions and
// qualifications. Status is not writable here beyond the creator-based
// initial value; verdicts go through the verification workflow.
type ItemService struct {
	activityRepo *repositories.ActivityRepository
	sessionRepo  *repositories.SessionRepository
	qualRepo     *repositories.QualificationRepository
	userRepo     *repositories.UserRepository
	assignments  *AssignmentService
	authz        *AuthzService
}

func NewItemService(activityRepo *repositories.ActivityRepository, sessionRepo *repositories.SessionRepository,
	qualRepo *repositories.QualificationRepository, userRepo *repositories.UserRepository,
	assignments *AssignmentService, authz *AuthzService) *ItemService {
	return &ItemService{
		activityRepo: activityRepo,
		sessionRepo:  sessionRepo,
		qualRepo:     qualRepo,
		userRepo:     userRepo,
		assignments:  assignments,
		authz:        authz,
	}
}

// initialStatus is decided by who creates the record: admin entries are
// trusted outright, mentor entries have been seen by a mentor, student
// entries await review.
func initialStatus(role constants.Role) constants.ItemStatus {
	switch role {
	case constants.RoleAdmin:
		return constants.ItemCompleted
	case constants.RoleMentor:
		return constants.ItemSubmitted
	default:
		return constants.ItemPending
	}
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrInvalid, value)
	}
	return &t, nil
}

// resolveStudent decides which student a new item belongs to and
// whether the actor may write records for them
func (s *ItemService) resolveStudent(ctx context.Context, claims auth.UserClaims, studentID string) (string, error) {
	role := constants.Role(claims.Role())

	if role == constants.RoleStudent {
		if studentID != "" && studentID != claims.UserID() {
			return "", fmt.Errorf("%w: students may only submit their own records", ErrForbidden)
		}
		return claims.UserID(), nil
	}

	if studentID == "" {
		return "", fmt.Errorf("%w: student_id is required", ErrInvalid)
	}

	student, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", fmt.Errorf("%w: %s", ErrNotFound, constants.MsgStudentNotFound)
		}
		return "", fmt.Errorf("failed to fetch student: %w", err)
	}
	if student.Role != constants.RoleStudent {
		return "", fmt.Errorf("%w: user %s is not a student", ErrInvalid, studentID)
	}

	if role == constants.RoleMentor {
		owns, err := s.authz.MentorOwns(ctx, claims.UserID(), studentID)
		if err != nil {
			return "", err
		}
		if !owns {
			return "", fmt.Errorf("%w: %s", ErrForbidden, constants.MsgNotAssigned)
		}
	}

	return studentID, nil
}

func (s *ItemService) requireStudentAccess(ctx context.Context, claims auth.UserClaims, studentID string) error {
	ok, err := s.authz.CanAccessStudent(ctx, claims, studentID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: no access to this student", ErrForbidden)
	}
	return nil
}

func canEdit(claims auth.UserClaims, assignedBy string) bool {
	return claims.IsAdmin() || claims.UserID() == assignedBy
}

/* ---------- Activities ---------- */

func (s *ItemService) CreateActivity(ctx context.Context, claims auth.UserClaims, req dtos.CreateActivityReq) (*gormModels.Activity, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalid)
	}

	studentID, err := s.resolveStudent(ctx, claims, req.StudentID)
	if err != nil {
		return nil, err
	}

	dateCompleted, err := parseDate(req.DateCompleted)
	if err != nil {
		return nil, err
	}

	activity := gormModels.Activity{
		StudentID:       studentID,
		Title:           req.Title,
		ActivityType:    req.ActivityType,
		DateCompleted:   dateCompleted,
		DurationMinutes: req.DurationMinutes,
		EvidenceURL:     req.EvidenceURL,
		Status:          initialStatus(constants.Role(claims.Role())),
		AssignedBy:      claims.UserID(),
	}

	if err := s.activityRepo.Create(ctx, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

func (s *ItemService) GetActivity(ctx context.Context, claims auth.UserClaims, id string) (*gormModels.Activity, error) {
	activity, err := s.activityRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, constants.MsgItemNotFound)
		}
		return nil, fmt.Errorf("failed to fetch activity: %w", err)
	}

	if err := s.requireStudentAccess(ctx, claims, activity.StudentID); err != nil {
		return nil, err
	}
	return activity, nil
}

// ListActivities scopes the result to what the actor may see: admins
// everything, mentors their roster, students themselves
func (s *ItemService) ListActivities(ctx context.Context, claims auth.UserClaims, studentID string, status constants.ItemStatus) ([]gormModels.Activity, error) {
	if studentID != "" {
		if err := s.requireStudentAccess(ctx, claims, studentID); err != nil {
			return nil, err
		}
		return s.activityRepo.ListByStudent(ctx, studentID)
	}

	switch constants.Role(claims.Role()) {
	case constants.RoleAdmin:
		return s.activityRepo.ListAll(ctx, status)
	case constants.RoleMentor:
		roster, err := s.assignments.StudentIDsForMentor(ctx, claims.UserID())
		if err != nil {
			return nil, err
		}
		return s.activityRepo.ListByStudents(ctx, roster)
	default:
		return s.activityRepo.ListByStudent(ctx, claims.UserID())
	}
}

func (s *ItemService) UpdateActivity(ctx context.Context, claims auth.UserClaims, id string, req dtos.UpdateActivityReq) (*gormModels.Activity, error) {
	activity, err := s.GetActivity(ctx, claims, id)
	if err != nil {
		return nil, err
	}
	if !canEdit(claims, activity.AssignedBy) {
		return nil, fmt.Errorf("%w: only the creator or an admin may edit this record", ErrForbidden)
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrInvalid)
		}
		activity.Title = *req.Title
	}
	if req.ActivityType != nil {
		activity.ActivityType = *req.ActivityType
	}
	if req.DateCompleted != nil {
		date, err := parseDate(*req.DateCompleted)
		if err != nil {
			return nil, err
		}
		activity.DateCompleted = date
	}
	if req.DurationMinutes != nil {
		activity.DurationMinutes = *req.DurationMinutes
	}
	if req.EvidenceURL != nil {
		activity.EvidenceURL = *req.EvidenceURL
	}

	if err := s.activityRepo.Save(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *ItemService) DeleteActivity(ctx context.Context, claims auth.UserClaims, id string) error {
	activity, err := s.GetActivity(ctx, claims, id)
	if err != nil {
		return err
	}
	if !canEdit(claims, activity.AssignedBy) {
		return fmt.Errorf("%w: only the creator or an admin may delete this record", ErrForbidden)
	}
	return s.activityRepo.Delete(ctx, id)
}

/* ---------- Mentoring sessions ---------- */

func (s *ItemService) CreateSession(ctx context.Context, claims auth.UserClaims, req dtos.CreateSessionReq) (*gormModels.MentoringSession, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalid)
	}

	studentID, err := s.resolveStudent(ctx, claims, req.StudentID)
	if err != nil {
		return nil, err
	}

	sessionDate, err := parseDate(req.SessionDate)
	if err != nil {
		return nil, err
	}

	session := gormModels.MentoringSession{
		StudentID:       studentID,
		Title:           req.Title,
		SessionDate:     sessionDate,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
		Status:          initialStatus(constants.Role(claims.Role())),
		AssignedBy:      claims.UserID(),
	}

	if err := s.sessionRepo.Create(ctx, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *ItemService) GetSession(ctx context.Context, claims auth.UserClaims, id string) (*gormModels.MentoringSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, constants.MsgItemNotFound)
		}
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}

	if err := s.requireStudentAccess(ctx, claims, session.StudentID); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *ItemService) ListSessions(ctx context.Context, claims auth.UserClaims, studentID string, status constants.ItemStatus) ([]gormModels.MentoringSession, error) {
	if studentID != "" {
		if err := s.requireStudentAccess(ctx, claims, studentID); err != nil {
			return nil, err
		}
		return s.sessionRepo.ListByStudent(ctx, studentID)
	}

	switch constants.Role(claims.Role()) {
	case constants.RoleAdmin:
		return s.sessionRepo.ListAll(ctx, status)
	case constants.RoleMentor:
		roster, err := s.assignments.StudentIDsForMentor(ctx, claims.UserID())
		if err != nil {
			return nil, err
		}
		return s.sessionRepo.ListByStudents(ctx, roster)
	default:
		return s.sessionRepo.ListByStudent(ctx, claims.UserID())
	}
}

func (s *ItemService) UpdateSession(ctx context.Context, claims auth.UserClaims, id string, req dtos.UpdateSessionReq) (*gormModels.MentoringSession, error) {
	session, err := s.GetSession(ctx, claims, id)
	if err != nil {
		return nil, err
	}
	if !canEdit(claims, session.AssignedBy) {
		return nil, fmt.Errorf("%w: only the creator or an admin may edit this record", ErrForbidden)
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrInvalid)
		}
		session.Title = *req.Title
	}
	if req.SessionDate != nil {
		date, err := parseDate(*req.SessionDate)
		if err != nil {
			return nil, err
		}
		session.SessionDate = date
	}
	if req.DurationMinutes != nil {
		session.DurationMinutes = *req.DurationMinutes
	}
	if req.Notes != nil {
		session.Notes = *req.Notes
	}

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *ItemService) DeleteSession(ctx context.Context, claims auth.UserClaims, id string) error {
	session, err := s.GetSession(ctx, claims, id)
	if err != nil {
		return err
	}
	if !canEdit(claims, session.AssignedBy) {
		return fmt.Errorf("%w: only the creator or an admin may delete this record", ErrForbidden)
	}
	return s.sessionRepo.Delete(ctx, id)
}

/* ---------- Qualifications ---------- */

func (s *ItemService) CreateQualification(ctx context.Context, claims auth.UserClaims, req dtos.CreateQualificationReq) (*gormModels.Qualification, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalid)
	}

	studentID, err := s.resolveStudent(ctx, claims, req.StudentID)
	if err != nil {
		return nil, err
	}

	issueDate, err := parseDate(req.IssueDate)
	if err != nil {
		return nil, err
	}
	expiryDate, err := parseDate(req.ExpiryDate)
	if err != nil {
		return nil, err
	}

	qualification := gormModels.Qualification{
		StudentID:           studentID,
		Title:               req.Title,
		IssuingOrganization: req.IssuingOrganization,
		IssueDate:           issueDate,
		ExpiryDate:          expiryDate,
		CertificateURL:      req.CertificateURL,
		Status:              initialStatus(constants.Role(claims.Role())),
		AssignedBy:          claims.UserID(),
	}

	if err := s.qualRepo.Create(ctx, &qualification); err != nil {
		return nil, err
	}
	return &qualification, nil
}

func (s *ItemService) GetQualification(ctx context.Context, claims auth.UserClaims, id string) (*gormModels.Qualification, error) {
	qualification, err := s.qualRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, constants.MsgItemNotFound)
		}
		return nil, fmt.Errorf("failed to fetch qualification: %w", err)
	}

	if err := s.requireStudentAccess(ctx, claims, qualification.StudentID); err != nil {
		return nil, err
	}
	return qualification, nil
}

func (s *ItemService) ListQualifications(ctx context.Context, claims auth.UserClaims, studentID string, status constants.ItemStatus) ([]gormModels.Qualification, error) {
	if studentID != "" {
		if err := s.requireStudentAccess(ctx, claims, studentID); err != nil {
			return nil, err
		}
		return s.qualRepo.ListByStudent(ctx, studentID)
	}

	switch constants.Role(claims.Role()) {
	case constants.RoleAdmin:
		return s.qualRepo.ListAll(ctx, status)
	case constants.RoleMentor:
		roster, err := s.assignments.StudentIDsForMentor(ctx, claims.UserID())
		if err != nil {
			return nil, err
		}
		return s.qualRepo.ListByStudents(ctx, roster)
	default:
		return s.qualRepo.ListByStudent(ctx, claims.UserID())
	}
}

func (s *ItemService) UpdateQualification(ctx context.Context, claims auth.UserClaims, id string, req dtos.UpdateQualificationReq) (*gormModels.Qualification, error) {
	qualification, err := s.GetQualification(ctx, claims, id)
	if err != nil {
		return nil, err
	}
	if !canEdit(claims, qualification.AssignedBy) {
		return nil, fmt.Errorf("%w: only the creator or an admin may edit this record", ErrForbidden)
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrInvalid)
		}
		qualification.Title = *req.Title
	}
	if req.IssuingOrganization != nil {
		qualification.IssuingOrganization = *req.IssuingOrganization
	}
	if req.IssueDate != nil {
		date, err := parseDate(*req.IssueDate)
		if err != nil {
			return nil, err
		}
		qualification.IssueDate = date
	}
	if req.ExpiryDate != nil {
		date, err := parseDate(*req.ExpiryDate)
		if err != nil {
			return nil, err
		}
		qualification.ExpiryDate = date
	}
	if req.CertificateURL != nil {
		qualification.CertificateURL = *req.CertificateURL
	}

	if err := s.qualRepo.Save(ctx, qualification); err != nil {
		return nil, err
	}
	return qualification, nil
}

func (s *ItemService) DeleteQualification(ctx context.Context, claims auth.UserClaims, id string) error {
	qualification, err := s.GetQualification(ctx, claims, id)
	if err != nil {
		return err
	}
	if !canEdit(claims, qualification.AssignedBy) {
		return fmt.Errorf("%w: only the creator or an admin may delete this record", ErrForbidden)
	}
	return s.qualRepo.Delete(ctx, id)
}
