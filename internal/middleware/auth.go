package middleware

import (
	"net/http"
	"strings"

	"placement-experiment/praxis/internal/auth"
	"placement-experiment/praxis/internal/common"
	"placement-experiment/praxis/internal/constants"
	"placement-experiment/praxis/internal/logging"
)

// AuthMiddleware resolves the caller's identity from a bearer token or
// the session cookie and attaches claims to the request context. There
// is no other way in; identity is never taken from plain headers.
func AuthMiddleware(tokens *auth.TokenService, sessions *common.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var claims auth.UserClaims

			authHeader := r.Header.Get("Authorization")

			switch {
			case strings.HasPrefix(authHeader, "Bearer "):
				tokenString := strings.TrimPrefix(authHeader, "Bearer ")

				jwtClaims, err := tokens.ValidateToken(r.Context(), tokenString)
				if err != nil {
					logging.Debug("Token rejected", "error", err)
					http.Error(w, "Unauthorized. Invalid or expired token", http.StatusUnauthorized)
					return
				}
				claims = jwtClaims

			default:
				cookie, err := r.Cookie(constants.SessionCookieName)
				if err != nil {
					http.Error(w, "Unauthorized. Missing credentials", http.StatusUnauthorized)
					return
				}

				session, err := sessions.GetSession(r.Context(), cookie.Value)
				if err != nil {
					http.Error(w, "Unauthorized. Invalid or expired session", http.StatusUnauthorized)
					return
				}

				claims = &auth.SessionClaims{
					UserUUID:  session.UserID,
					RoleValue: session.Role,
					SessionID: session.SessionID,
				}
			}

			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
