package services

import (
	"context"
	"fmt"

	"placement-experiment/praxis/internal/auth"
	"placement-experiment/praxis/internal/common"
	"placement-experiment/praxis/internal/constants"
	"placement-experiment/praxis/internal/db/repositories"
	"placement-experiment/praxis/internal/logging"
	"placement-experiment/praxis/internal/models/dtos"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService owns login, refresh and logout. Identity only ever comes
// from verified credentials; there is no header-asserted fallback.
type AuthService struct {
	userRepo *repositories.UserRepository
	tokens   *auth.TokenService
	sessions *common.SessionService
}

func NewAuthService(userRepo *repositories.UserRepository, tokens *auth.TokenService, sessions *common.SessionService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		sessions: sessions,
	}
}

// Login verifies credentials, issues a bearer token and opens a cookie
// session. The same generic error covers unknown email and wrong
// password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*dtos.LoginResponse, string, error) {
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", ErrInvalid)
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, "", fmt.Errorf("%w: %s", ErrUnauthorized, constants.MsgInvalidCredentials)
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("%w: %s", ErrUnauthorized, constants.MsgInvalidCredentials)
	}

	if user.Status != constants.UserActive {
		return nil, "", fmt.Errorf("%w: %s", ErrForbidden, constants.MsgAccountInactive)
	}

	token, expiresAt, err := s.tokens.IssueToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	sessionID, err := s.sessions.CreateSession(ctx, user.ID, user.Role, user.Name, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create session: %w", err)
	}

	logging.Info("User logged in", "user_id", user.ID, "role", user.Role)

	return &dtos.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      UserSummary(user),
	}, sessionID, nil
}

// Refresh re-issues a token for an already-authenticated identity
func (s *AuthService) Refresh(ctx context.Context, claims auth.UserClaims) (*dtos.LoginResponse, error) {
	user, err := s.userRepo.GetByID(ctx, claims.UserID())
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: %s", ErrUnauthorized, constants.MsgUserNotFound)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user.Status != constants.UserActive {
		return nil, fmt.Errorf("%w: %s", ErrForbidden, constants.MsgAccountInactive)
	}

	token, expiresAt, err := s.tokens.IssueToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &dtos.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      UserSummary(user),
	}, nil
}

// Logout revokes the bearer token (when one was used) and deletes the
// cookie session (when one exists)
func (s *AuthService) Logout(ctx context.Context, claims auth.UserClaims) error {
	switch c := claims.(type) {
	case *auth.JWTClaims:
		if err := s.tokens.RevokeToken(ctx, c.TokenID, c.ExpiresAt); err != nil {
			return fmt.Errorf("failed to revoke token: %w", err)
		}
	case *auth.SessionClaims:
		if err := s.sessions.DeleteSession(ctx, c.SessionID); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
	}

	logging.Info("User logged out", "user_id", claims.UserID())
	return nil
}

// HashPassword wraps bcrypt with the default cost
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
