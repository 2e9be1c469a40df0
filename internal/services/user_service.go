package services

import (
	"context"
	"fmt"
	"strings"

	"placement-experiment/praxis/internal/auth"
	"placement-experiment/praxis/internal/constants"
	"placement-experiment/praxis/internal/db/repositories"
	"placement-experiment/praxis/internal/models/dtos"
	gormModels "placement-experiment/praxis/internal/models/gorm"

	"gorm.io/gorm"
)

type UserService struct {
	userRepo *repositories.UserRepository
}

func NewUserService(userRepo *repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UserSummary converts an entity into the wire representation; the
// password hash never leaves the service layer
func UserSummary(u *gormModels.User) dtos.UserSummary {
	return dtos.UserSummary{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   string(u.Role),
		Status: string(u.Status),
	}
}

func (s *UserService) Create(ctx context.Context, req dtos.CreateUserReq) (*dtos.UserSummary, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrInvalid)
	}
	role := constants.Role(req.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalid, req.Role)
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrConflict, constants.MsgDuplicateEmail)
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := gormModels.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		Status:       constants.UserActive,
	}

	if err := s.userRepo.Create(ctx, &user); err != nil {
		return nil, err
	}

	summary := UserSummary(&user)
	return &summary, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*dtos.UserSummary, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, constants.MsgUserNotFound)
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	summary := UserSummary(user)
	return &summary, nil
}

func (s *UserService) List(ctx context.Context, role constants.Role, status constants.UserStatus) ([]dtos.UserSummary, error) {
	if role != "" && !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalid, role)
	}

	users, err := s.userRepo.List(ctx, role, status)
	if err != nil {
		return nil, err
	}

	summaries := make([]dtos.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, UserSummary(&users[i]))
	}
	return summaries, nil
}

// Update applies admin edits; role changes are deliberately excluded,
// an account keeps its role for life
func (s *UserService) Update(ctx context.Context, id string, req dtos.UpdateUserReq) (*dtos.UserSummary, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, constants.MsgUserNotFound)
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*req.Email))
		if email != user.Email {
			exists, err := s.userRepo.EmailExists(ctx, email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, fmt.Errorf("%w: %s", ErrConflict, constants.MsgDuplicateEmail)
			}
			user.Email = email
		}
	}
	if req.Status != nil {
		status := constants.UserStatus(*req.Status)
		if status != constants.UserActive && status != constants.UserInactive {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalid, *req.Status)
		}
		user.Status = status
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	summary := UserSummary(user)
	return &summary, nil
}

// UpdateProfile lets a user edit their own name, email or password
func (s *UserService) UpdateProfile(ctx context.Context, claims auth.UserClaims, req dtos.UpdateProfileReq) (*dtos.UserSummary, error) {
	user, err := s.userRepo.GetByID(ctx, claims.UserID())
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, constants.MsgUserNotFound)
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*req.Email))
		if email != user.Email {
			exists, err := s.userRepo.EmailExists(ctx, email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, fmt.Errorf("%w: %s", ErrConflict, constants.MsgDuplicateEmail)
			}
			user.Email = email
		}
	}
	if req.Password != nil {
		if len(*req.Password) < 8 {
			return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrInvalid)
		}
		hash, err := HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	summary := UserSummary(user)
	return &summary, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: %s", ErrNotFound, constants.MsgUserNotFound)
		}
		return err
	}
	return nil
}
