package api

import (
	"encoding/json"
	"net/http"
	"time"

	"placement-experiment/praxis/internal/auth"
	"placement-experiment/praxis/internal/common"
	"placement-experiment/praxis/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

// AssignMentorHandler handles POST /api/v1/admin/assignments
func AssignMentorHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.AssignReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, "Invalid request body", http.StatusBadRequest)
			return
		}

		assignment, err := deps.Services.Assignment.Assign(r.Context(), req.MentorID, req.StudentID, req.Notes)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Mentor assigned", assignment, http.StatusCreated)
	}
}

// UnassignMentorHandler handles DELETE /api/v1/admin/assignments/{studentId}
func UnassignMentorHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		if err := deps.Services.Assignment.Unassign(r.Context(), chi.URLParam(r, "studentId")); err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Assignment removed", nil)
	}
}

// GetStudentMentorHandler handles GET /api/v1/students/{studentId}/mentor
func GetStudentMentorHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		studentID := chi.URLParam(r, "studentId")

		ok, err := deps.Services.Authz.CanAccessStudent(r.Context(), claims, studentID)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		if !ok {
			common.RespondError(w, initTime, "Forbidden: no access to this student", http.StatusForbidden)
			return
		}

		assignment, err := deps.Services.Assignment.GetMentorOf(r.Context(), studentID)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Assignment fetched", assignment)
	}
}

// ListMenteesHandler handles GET /api/v1/mentor/mentees; admins may
// inspect another mentor's roster via the mentor_id query parameter
func ListMenteesHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		mentorID := claims.UserID()
		if override := r.URL.Query().Get("mentor_id"); override != "" && claims.IsAdmin() {
			mentorID = override
		}
		assignments, err := deps.Services.Assignment.ListForMentor(r.Context(), mentorID)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Mentees fetched", assignments)
	}
}
