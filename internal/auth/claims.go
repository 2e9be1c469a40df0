package auth

import (
	"time"

	"placement-experiment/praxis/internal/constants"
)

// UserClaims is the resolved identity attached to every authenticated
// request, regardless of whether it arrived as a bearer token or a
// session cookie.
type UserClaims interface {
	UserID() string
	Role() string
	Source() string
	IsAdmin() bool
}

type JWTClaims struct {
	UserUUID  string
	RoleValue constants.Role
	TokenID   string
	ExpiresAt time.Time
}

func (c *JWTClaims) UserID() string { return c.UserUUID }
func (c *JWTClaims) Role() string   { return string(c.RoleValue) }
func (c *JWTClaims) Source() string { return "JWT" }
func (c *JWTClaims) IsAdmin() bool  { return c.RoleValue == constants.RoleAdmin }

type SessionClaims struct {
	UserUUID  string
	RoleValue constants.Role
	SessionID string
}

func (c *SessionClaims) UserID() string { return c.UserUUID }
func (c *SessionClaims) Role() string   { return string(c.RoleValue) }
func (c *SessionClaims) Source() string { return "SESSION" }
func (c *SessionClaims) IsAdmin() bool  { return c.RoleValue == constants.RoleAdmin }
