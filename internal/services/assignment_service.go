package services

import (
	"context"
	"fmt"
	"time"

	"placement-experiment/praxis/internal/constants"
	"placement-experiment/praxis/internal/db/repositories"
	"placement-experiment/praxis/internal/logging"
	"placement-experiment/praxis/internal/metrics"
	"placement-experiment/praxis/internal/models/dtos"
	gormModels "placement-experiment/praxis/internal/models/gorm"

	"gorm.io/gorm"
)

// AssignmentService is the mentor-student pairing registry. All
// authorization decisions elsewhere join through it.
type AssignmentService struct {
	assignmentRepo *repositories.AssignmentRepository
	userRepo       *repositories.UserRepository
	authz          *AuthzService
	metricsReg     *metrics.MetricsRegistry
}

func NewAssignmentService(assignmentRepo *repositories.AssignmentRepository, userRepo *repositories.UserRepository,
	authz *AuthzService, metricsReg *metrics.MetricsRegistry) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		userRepo:       userRepo,
		authz:          authz,
		metricsReg:     metricsReg,
	}
}

func (s *AssignmentService) assignmentResponse(a *gormModels.Assignment) dtos.AssignmentResponse {
	resp := dtos.AssignmentResponse{
		ID:           a.ID,
		MentorID:     a.MentorID,
		StudentID:    a.StudentID,
		Notes:        a.Notes,
		AssignedDate: a.AssignedDate,
	}
	if a.Mentor != nil {
		m := UserSummary(a.Mentor)
		resp.Mentor = &m
	}
	if a.Student != nil {
		st := UserSummary(a.Student)
		resp.Student = &st
	}
	return resp
}

// requireRole loads a user and checks that they hold the expected role
// and are active
func (s *AssignmentService) requireRole(ctx context.Context, id string, role constants.Role, missing string) (*gormModels.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, missing)
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user.Role != role {
		return nil, fmt.Errorf("%w: user %s is not a %s", ErrInvalid, id, role)
	}
	if user.Status != constants.UserActive {
		return nil, fmt.Errorf("%w: user %s is inactive", ErrInvalid, id)
	}
	return user, nil
}

// Assign pairs the mentor with the student, replacing any previous
// mentor in the same transaction
func (s *AssignmentService) Assign(ctx context.Context, mentorID, studentID, notes string) (*dtos.AssignmentResponse, error) {
	if mentorID == "" || studentID == "" {
		return nil, fmt.Errorf("%w: mentor_id and student_id are required", ErrInvalid)
	}

	if _, err := s.requireRole(ctx, mentorID, constants.RoleMentor, constants.MsgMentorNotFound); err != nil {
		return nil, err
	}
	if _, err := s.requireRole(ctx, studentID, constants.RoleStudent, constants.MsgStudentNotFound); err != nil {
		return nil, err
	}

	assignment := gormModels.Assignment{
		MentorID:     mentorID,
		StudentID:    studentID,
		Notes:        notes,
		AssignedDate: time.Now(),
	}

	if err := s.assignmentRepo.Replace(ctx, &assignment); err != nil {
		return nil, err
	}

	s.authz.InvalidateStudent(studentID)
	s.updateActiveGauge(ctx)

	logging.Info("Assignment created",
		"assignment_id", assignment.ID,
		"mentor_id", mentorID,
		"student_id", studentID,
	)

	resp := s.assignmentResponse(&assignment)
	return &resp, nil
}

// Unassign removes the student's current assignment
func (s *AssignmentService) Unassign(ctx context.Context, studentID string) error {
	rows, err := s.assignmentRepo.DeleteByStudent(ctx, studentID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: no assignment for student %s", ErrNotFound, studentID)
	}

	s.authz.InvalidateStudent(studentID)
	s.updateActiveGauge(ctx)

	logging.Info("Assignment removed", "student_id", studentID)
	return nil
}

// GetMentorOf returns the student's current mentor
func (s *AssignmentService) GetMentorOf(ctx context.Context, studentID string) (*dtos.AssignmentResponse, error) {
	assignment, err := s.assignmentRepo.GetByStudent(ctx, studentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: no assignment for student %s", ErrNotFound, studentID)
		}
		return nil, fmt.Errorf("failed to fetch assignment: %w", err)
	}

	resp := s.assignmentResponse(assignment)
	return &resp, nil
}

// ListForMentor returns the mentor's roster with student summaries
func (s *AssignmentService) ListForMentor(ctx context.Context, mentorID string) ([]dtos.AssignmentResponse, error) {
	assignments, err := s.assignmentRepo.ListByMentor(ctx, mentorID)
	if err != nil {
		return nil, err
	}

	responses := make([]dtos.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		responses = append(responses, s.assignmentResponse(&assignments[i]))
	}
	return responses, nil
}

// StudentIDsForMentor returns just the roster ids, used by item reads
func (s *AssignmentService) StudentIDsForMentor(ctx context.Context, mentorID string) ([]string, error) {
	assignments, err := s.assignmentRepo.ListByMentor(ctx, mentorID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(assignments))
	for _, a := range assignments {
		ids = append(ids, a.StudentID)
	}
	return ids, nil
}

func (s *AssignmentService) updateActiveGauge(ctx context.Context) {
	if s.metricsReg == nil {
		return
	}
	if count, err := s.assignmentRepo.Count(ctx); err == nil {
		s.metricsReg.AssignmentsActive.Set(float64(count))
	}
}
