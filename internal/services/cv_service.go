package services

import (
	"context"
	"fmt"

	"placement-experiment/praxis/internal/auth"
	"placement-experiment/praxis/internal/constants"
	"placement-experiment/praxis/internal/db/repositories"
	"placement-experiment/praxis/internal/models/dtos"
	gormModels "placement-experiment/praxis/internal/models/gorm"

	"gorm.io/gorm"
)

// CVService holds the one-per-student CV record.
type CVService struct {
	cvRepo *repositories.CVRepository
	authz  *AuthzService
}

func NewCVService(cvRepo *repositories.CVRepository, authz *AuthzService) *CVService {
	return &CVService{
		cvRepo: cvRepo,
		authz:  authz,
	}
}

// Upsert writes the caller's own CV, creating the row on first use
func (s *CVService) Upsert(ctx context.Context, claims auth.UserClaims, req dtos.UpsertCVReq) (*gormModels.CV, error) {
	if constants.Role(claims.Role()) != constants.RoleStudent {
		return nil, fmt.Errorf("%w: only students keep a CV", ErrForbidden)
	}
	if req.Summary == "" && req.CVURL == "" {
		return nil, fmt.Errorf("%w: summary or cv_url is required", ErrInvalid)
	}

	cv := gormModels.CV{
		StudentID: claims.UserID(),
		Summary:   req.Summary,
		CVURL:     req.CVURL,
	}
	if err := s.cvRepo.Upsert(ctx, &cv); err != nil {
		return nil, err
	}
	return &cv, nil
}

// Get returns a student's CV, visible to the student, their mentor and
// admins
func (s *CVService) Get(ctx context.Context, claims auth.UserClaims, studentID string) (*gormModels.CV, error) {
	ok, err := s.authz.CanAccessStudent(ctx, claims, studentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no access to this student", ErrForbidden)
	}

	cv, err := s.cvRepo.GetByStudent(ctx, studentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: no CV on record for this student", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch cv: %w", err)
	}
	return cv, nil
}
