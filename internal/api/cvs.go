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

// UpsertCVHandler handles PUT /api/v1/student/cv
func UpsertCVHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var req dtos.UpsertCVReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, "Invalid request body", http.StatusBadRequest)
			return
		}

		cv, err := deps.Services.CV.Upsert(r.Context(), claims, req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "CV saved", cv)
	}
}

// GetCVHandler handles GET /api/v1/students/{studentId}/cv
func GetCVHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		cv, err := deps.Services.CV.Get(r.Context(), claims, chi.URLParam(r, "studentId"))
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "CV fetched", cv)
	}
}
