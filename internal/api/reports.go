package api

import (
	"net/http"
	"time"

	"placement-experiment/praxis/internal/auth"
	"placement-experiment/praxis/internal/common"
)

// OverviewReportHandler handles GET /api/v1/admin/reports/overview
func OverviewReportHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		report, err := deps.Services.Report.Overview(r.Context())
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Overview report generated", report)
	}
}

// MentorTalliesHandler handles GET /api/v1/mentor/reports/tallies;
// admins may inspect another mentor's roster via mentor_id
func MentorTalliesHandler(deps *Dependencies) http.HandlerFunc {
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

		tallies, err := deps.Services.Report.MentorTallies(r.Context(), mentorID)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Roster tallies generated", tallies)
	}
}
