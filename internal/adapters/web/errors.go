package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"ledgerpro/internal/app"
	"ledgerpro/internal/core"
	"ledgerpro/internal/logger"
	"ledgerpro/internal/persistence"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// writeJSON writes a JSON response with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeCreated writes a JSON response with status 201.
func writeCreated(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps an ApplicationService error onto a status code.
// Unrecognised errors are logged and reported as 500 without detail.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		writeError(w, r, err.Error(), "NOT_FOUND", http.StatusNotFound)
	case errors.Is(err, core.ErrDuplicateID):
		writeError(w, r, err.Error(), "CONFLICT", http.StatusConflict)
	case errors.Is(err, core.ErrInvalidInput):
		writeError(w, r, err.Error(), "VALIDATION_ERROR", http.StatusBadRequest)
	case errors.Is(err, persistence.ErrInvalidSnapshot):
		writeError(w, r, err.Error(), "INVALID_SNAPSHOT", http.StatusBadRequest)
	case errors.Is(err, persistence.ErrNoSnapshot):
		writeError(w, r, "no automatic backup available", "NO_BACKUP", http.StatusNotFound)
	case errors.Is(err, app.ErrInvalidPassword):
		writeError(w, r, err.Error(), "INVALID_PASSWORD", http.StatusUnauthorized)
	case errors.Is(err, app.ErrAssistantUnavailable):
		writeError(w, r, err.Error(), "ASSISTANT_UNAVAILABLE", http.StatusServiceUnavailable)
	default:
		reqLog := logger.WithRequestID(h.log, requestIDFromContext(r.Context()))
		reqLog.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, r, "internal server error", "INTERNAL_ERROR", http.StatusInternalServerError)
	}
}
