package middleware

import (
	"net/http"

	"placement-experiment/praxis/internal/auth"
	"placement-experiment/praxis/internal/constants"
)

// IsMentorMiddleware admits mentors and admins
func IsMentorMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := auth.GetUserClaims(r.Context())

			if claims == nil {
				http.Error(w, "Forbidden. Mentor role required", http.StatusForbidden)
				return
			}

			role := claims.Role()
			if role != constants.RoleMentor.String() && role != constants.RoleAdmin.String() {
				http.Error(w, "Forbidden. Mentor role required", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
