package api

import (
	"errors"
	"net/http"
	"time"

	"placement-experiment/praxis/internal/common"
	"placement-experiment/praxis/internal/logging"
	"placement-experiment/praxis/internal/services"
)

// respondServiceError translates the service sentinels into HTTP
// status codes. Anything that is not a sentinel is a 500 and the
// detail stays in the logs.
func respondServiceError(w http.ResponseWriter, initTime time.Time, err error) {
	switch {
	case errors.Is(err, services.ErrInvalid):
		common.RespondError(w, initTime, err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrUnauthorized):
		common.RespondError(w, initTime, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, services.ErrForbidden):
		common.RespondError(w, initTime, err.Error(), http.StatusForbidden)
	case errors.Is(err, services.ErrNotFound):
		common.RespondError(w, initTime, err.Error(), http.StatusNotFound)
	case errors.Is(err, services.ErrConflict):
		common.RespondError(w, initTime, err.Error(), http.StatusConflict)
	default:
		logging.Error("Unhandled service error", "error", err)
		common.RespondError(w, initTime, "Internal server error", http.StatusInternalServerError)
	}
}
