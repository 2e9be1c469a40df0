package api

import (
	"encoding/json"
	"net/http"
	"time"

	"placement-experiment/praxis/internal/auth"
	"placement-experiment/praxis/internal/common"
	"placement-experiment/praxis/internal/constants"
	"placement-experiment/praxis/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

// CreateQualificationHandler handles POST /api/v1/qualifications
func CreateQualificationHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var req dtos.CreateQualificationReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, "Invalid request body", http.StatusBadRequest)
			return
		}

		qualification, err := deps.Services.Item.CreateQualification(r.Context(), claims, req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Qualification created", qualification, http.StatusCreated)
	}
}

// ListQualificationsHandler handles GET /api/v1/qualifications
func ListQualificationsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		studentID := r.URL.Query().Get("student_id")
		status := constants.ItemStatus(r.URL.Query().Get("status"))

		qualifications, err := deps.Services.Item.ListQualifications(r.Context(), claims, studentID, status)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Qualifications fetched", qualifications)
	}
}

// GetQualificationHandler handles GET /api/v1/qualifications/{id}
func GetQualificationHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		qualification, err := deps.Services.Item.GetQualification(r.Context(), claims, chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Qualification fetched", qualification)
	}
}

// UpdateQualificationHandler handles PUT /api/v1/qualifications/{id}
func UpdateQualificationHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var req dtos.UpdateQualificationReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, "Invalid request body", http.StatusBadRequest)
			return
		}

		qualification, err := deps.Services.Item.UpdateQualification(r.Context(), claims, chi.URLParam(r, "id"), req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Qualification updated", qualification)
	}
}

// DeleteQualificationHandler handles DELETE /api/v1/qualifications/{id}
func DeleteQualificationHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		if err := deps.Services.Item.DeleteQualification(r.Context(), claims, chi.URLParam(r, "id")); err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Qualification deleted", nil)
	}
}
