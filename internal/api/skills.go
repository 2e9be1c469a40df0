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

// maxImportBytes caps the CSV upload size
const maxImportBytes = 5 << 20

// CreateSkillHandler handles POST /api/v1/admin/skills
func CreateSkillHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.SkillReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, "Invalid request body", http.StatusBadRequest)
			return
		}

		skill, err := deps.Services.Skill.CreateSkill(r.Context(), req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Skill created", skill, http.StatusCreated)
	}
}

// ListSkillsHandler handles GET /api/v1/skills
func ListSkillsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		skills, err := deps.Services.Skill.ListSkills(r.Context(), r.URL.Query().Get("category"))
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Skills fetched", skills)
	}
}

// UpdateSkillHandler handles PUT /api/v1/admin/skills/{id}
func UpdateSkillHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.SkillReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, "Invalid request body", http.StatusBadRequest)
			return
		}

		skill, err := deps.Services.Skill.UpdateSkill(r.Context(), chi.URLParam(r, "id"), req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Skill updated", skill)
	}
}

// DeleteSkillHandler handles DELETE /api/v1/admin/skills/{id}
func DeleteSkillHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		if err := deps.Services.Skill.DeleteSkill(r.Context(), chi.URLParam(r, "id")); err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Skill deleted", nil)
	}
}

// ImportSkillsHandler handles POST /api/v1/admin/skills/import with a
// CSV body of name,category lines
func ImportSkillsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		report, err := deps.Services.Skill.ImportCSV(r.Context(), http.MaxBytesReader(w, r.Body, maxImportBytes))
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Skills imported", report)
	}
}

// ClaimSkillHandler handles POST /api/v1/student/skills
func ClaimSkillHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var req dtos.StudentSkillReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, "Invalid request body", http.StatusBadRequest)
			return
		}

		studentSkill, err := deps.Services.Skill.ClaimSkill(r.Context(), claims, req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Skill claimed", studentSkill, http.StatusCreated)
	}
}

// ListStudentSkillsHandler handles GET /api/v1/students/{studentId}/skills
func ListStudentSkillsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		studentSkills, err := deps.Services.Skill.ListStudentSkills(r.Context(), claims, chi.URLParam(r, "studentId"))
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Student skills fetched", studentSkills)
	}
}

// EndorseSkillHandler handles POST /api/v1/mentor/students/{studentId}/skills/{skillId}/endorse
func EndorseSkillHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		studentSkill, err := deps.Services.Skill.Endorse(r.Context(), claims,
			chi.URLParam(r, "studentId"), chi.URLParam(r, "skillId"))
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Skill endorsed", studentSkill)
	}
}
