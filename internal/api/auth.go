package api

import (
	"encoding/json"
	"net/http"
	"time"

	"placement-experiment/praxis/internal/auth"
	"placement-experiment/praxis/internal/common"
	"placement-experiment/praxis/internal/constants"
	"placement-experiment/praxis/internal/models/dtos"
)

// LoginHandler handles POST /api/v1/auth/login
//
// Issues a bearer token and sets the session cookie in one go; clients
// pick whichever credential suits them.
func LoginHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.LoginReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, "Invalid request body", http.StatusBadRequest)
			return
		}

		loginResp, sessionID, err := deps.Services.Auth.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     constants.SessionCookieName,
			Value:    sessionID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			Expires:  loginResp.ExpiresAt,
		})

		common.RespondSuccess(w, initTime, "Login successful", loginResp)
	}
}

// RefreshHandler handles POST /api/v1/auth/refresh
func RefreshHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		loginResp, err := deps.Services.Auth.Refresh(r.Context(), claims)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Token refreshed", loginResp)
	}
}

// LogoutHandler handles POST /api/v1/auth/logout
func LogoutHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		if err := deps.Services.Auth.Logout(r.Context(), claims); err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		// expire the cookie regardless of which credential was used
		http.SetCookie(w, &http.Cookie{
			Name:     constants.SessionCookieName,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		})

		common.RespondSuccess(w, initTime, "Logged out", nil)
	}
}
