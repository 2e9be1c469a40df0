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

// SendMessageHandler handles POST /api/v1/messages
func SendMessageHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var req dtos.SendMessageReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, "Invalid request body", http.StatusBadRequest)
			return
		}

		message, err := deps.Services.Message.Send(r.Context(), claims, req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Message sent", message, http.StatusCreated)
	}
}

// GetConversationHandler handles GET /api/v1/messages/{userId}; reading
// the thread marks the viewer's received messages in it as read
func GetConversationHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		conversation, err := deps.Services.Message.Conversation(r.Context(), claims, chi.URLParam(r, "userId"))
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Conversation fetched", conversation)
	}
}

// GetInboxHandler handles GET /api/v1/messages
func GetInboxHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		inbox, err := deps.Services.Message.Inbox(r.Context(), claims)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Inbox fetched", inbox)
	}
}
