package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"placement-experiment/praxis/internal/constants"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TokenService issues and validates HS256 JWTs. Revoked token ids live
// in Redis until the token would have expired anyway.
type TokenService struct {
	secretKey []byte
	redis     *redis.Client
}

// NewTokenService creates a new token service
func NewTokenService(secretKey []byte, redis *redis.Client) *TokenService {
	return &TokenService{
		secretKey: secretKey,
		redis:     redis,
	}
}

// IssueToken signs a token for the given user with a 24h expiry
func (s *TokenService) IssueToken(userID string, role constants.Role) (string, time.Time, error) {
	tokenID := uuid.New().String()
	expiresAt := time.Now().Add(constants.TokenTTLHours * time.Hour)

	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"jti":     tokenID,
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// ValidateToken verifies the signature and expiry of a bearer token and
// rejects revoked token ids
func (s *TokenService) ValidateToken(ctx context.Context, tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	userID, ok := (*claims)["user_id"].(string)
	if !ok {
		return nil, errors.New("missing or invalid user_id claim")
	}

	role, ok := (*claims)["role"].(string)
	if !ok || !constants.Role(role).IsValid() {
		return nil, errors.New("missing or invalid role claim")
	}

	tokenID, ok := (*claims)["jti"].(string)
	if !ok {
		return nil, errors.New("missing or invalid jti claim")
	}

	expFloat, ok := (*claims)["exp"].(float64)
	if !ok {
		return nil, errors.New("missing or invalid exp claim")
	}
	expiresAt := time.Unix(int64(expFloat), 0)

	if time.Now().After(expiresAt) {
		return nil, errors.New("token expired")
	}

	revoked, err := s.IsTokenRevoked(ctx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return nil, errors.New("token revoked")
	}

	return &JWTClaims{
		UserUUID:  userID,
		RoleValue: constants.Role(role),
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
	}, nil
}

// RevokeToken marks a token id as revoked until its natural expiry
func (s *TokenService) RevokeToken(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	err := s.redis.Set(ctx, "revoked_token:"+tokenID, "1", ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

// IsTokenRevoked checks the revocation set
func (s *TokenService) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	result, err := s.redis.Get(ctx, "revoked_token:"+tokenID).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return result == "1", nil
}
