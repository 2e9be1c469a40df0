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

// CreateActivityHandler handles POST /api/v1/activities
func CreateActivityHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var req dtos.CreateActivityReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, "Invalid request body", http.StatusBadRequest)
			return
		}

		activity, err := deps.Services.Item.CreateActivity(r.Context(), claims, req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Activity created", activity, http.StatusCreated)
	}
}

// ListActivitiesHandler handles GET /api/v1/activities
func ListActivitiesHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		studentID := r.URL.Query().Get("student_id")
		status := constants.ItemStatus(r.URL.Query().Get("status"))

		activities, err := deps.Services.Item.ListActivities(r.Context(), claims, studentID, status)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Activities fetched", activities)
	}
}

// GetActivityHandler handles GET /api/v1/activities/{id}
func GetActivityHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		activity, err := deps.Services.Item.GetActivity(r.Context(), claims, chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Activity fetched", activity)
	}
}

// UpdateActivityHandler handles PUT /api/v1/activities/{id}
func UpdateActivityHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var req dtos.UpdateActivityReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, "Invalid request body", http.StatusBadRequest)
			return
		}

		activity, err := deps.Services.Item.UpdateActivity(r.Context(), claims, chi.URLParam(r, "id"), req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Activity updated", activity)
	}
}

// DeleteActivityHandler handles DELETE /api/v1/activities/{id}
func DeleteActivityHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		if err := deps.Services.Item.DeleteActivity(r.Context(), claims, chi.URLParam(r, "id")); err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Activity deleted", nil)
	}
}
