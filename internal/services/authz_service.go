package services

import (
	"context"
	"time"

	"placement-experiment/praxis/internal/auth"
	"placement-experiment/praxis/internal/common"
	"placement-experiment/praxis/internal/constants"
	"placement-experiment/praxis/internal/db/repositories"

	"gorm.io/gorm"
)

const assignmentCacheTTL = 30 * time.Second

// AuthzService is the single capability check used by every handler,
// replacing the per-endpoint assignment re-derivations the old
// admin/mentor/student handler variants each carried.
type AuthzService struct {
	assignmentRepo *repositories.AssignmentRepository
	cache          common.CacheInterface
}

func NewAuthzService(assignmentRepo *repositories.AssignmentRepository, cache common.CacheInterface) *AuthzService {
	return &AuthzService{
		assignmentRepo: assignmentRepo,
		cache:          cache,
	}
}

// MentorOwns reports whether the mentor is currently assigned to the
// student. The student's current mentor id is cached briefly; callers
// that must see the live registry (messaging, verification) use
// MentorOwnsLive.
func (s *AuthzService) MentorOwns(ctx context.Context, mentorID, studentID string) (bool, error) {
	key := string(constants.CachePrefixMentorOf) + studentID

	val, err := s.cache.GetOrSet(key, assignmentCacheTTL, func() (any, error) {
		assignment, err := s.assignmentRepo.GetByStudent(ctx, studentID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return "", nil
			}
			return nil, err
		}
		return assignment.MentorID, nil
	})
	if err != nil {
		return false, err
	}

	owner, _ := val.(string)
	return owner == mentorID, nil
}

// MentorOwnsLive always queries the assignment registry.
func (s *AuthzService) MentorOwnsLive(ctx context.Context, mentorID, studentID string) (bool, error) {
	return s.assignmentRepo.IsAssigned(ctx, mentorID, studentID)
}

// CanAccessStudent decides whether the actor may read or write records
// belonging to the given student: admins always, students only their
// own, mentors only for assigned students.
func (s *AuthzService) CanAccessStudent(ctx context.Context, claims auth.UserClaims, studentID string) (bool, error) {
	if claims == nil {
		return false, nil
	}

	switch constants.Role(claims.Role()) {
	case constants.RoleAdmin:
		return true, nil
	case constants.RoleStudent:
		return claims.UserID() == studentID, nil
	case constants.RoleMentor:
		return s.MentorOwns(ctx, claims.UserID(), studentID)
	}
	return false, nil
}

// InvalidateStudent drops the cached assignment lookup after the
// registry changes.
func (s *AuthzService) InvalidateStudent(studentID string) {
	s.cache.Delete(string(constants.CachePrefixMentorOf) + studentID)
}
