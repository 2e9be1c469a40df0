package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"placement-experiment/praxis/internal/auth"
	"placement-experiment/praxis/internal/constants"
)

func requestWithRole(role constants.Role) *http.Request {
	req := httptest.NewRequest("GET", "/api/v1/test", nil)
	claims := &auth.JWTClaims{
		UserUUID:  "user-1",
		RoleValue: role,
	}
	return req.WithContext(auth.SetUserClaims(req.Context(), claims))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestIsAdminMiddleware(t *testing.T) {
	handler := IsAdminMiddleware()(okHandler())

	cases := []struct {
		role constants.Role
		want int
	}{
		{constants.RoleAdmin, http.StatusOK},
		{constants.RoleMentor, http.StatusForbidden},
		{constants.RoleStudent, http.StatusForbidden},
	}

	for _, tc := range cases {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, requestWithRole(tc.role))
		if rr.Code != tc.want {
			t.Errorf("role %s: expected %d, got %d", tc.role, tc.want, rr.Code)
		}
	}

	// no claims at all
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/test", nil))
	if rr.Code != http.StatusForbidden {
		t.Errorf("missing claims: expected 403, got %d", rr.Code)
	}
}

func TestIsMentorMiddleware(t *testing.T) {
	handler := IsMentorMiddleware()(okHandler())

	cases := []struct {
		role constants.Role
		want int
	}{
		{constants.RoleAdmin, http.StatusOK},
		{constants.RoleMentor, http.StatusOK},
		{constants.RoleStudent, http.StatusForbidden},
	}

	for _, tc := range cases {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, requestWithRole(tc.role))
		if rr.Code != tc.want {
			t.Errorf("role %s: expected %d, got %d", tc.role, tc.want, rr.Code)
		}
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(requestIDKey).(string)
	}))

	// generated when absent
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	if seen == "" {
		t.Error("Expected a generated request id in context")
	}
	if rr.Header().Get("X-Request-ID") != seen {
		t.Error("Expected request id echoed in response header")
	}

	// preserved when supplied
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "trace-42")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if seen != "trace-42" {
		t.Errorf("Expected supplied request id to be kept, got %s", seen)
	}
}
