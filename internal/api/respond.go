package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/npslab/npsboard/internal/middleware"
	"github.com/npslab/npsboard/internal/services"
)

type errorBody struct {
	Message   string `json:"message"`
	RequestID string `json:"requestId"`
	Details   string `json:"details,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps service errors to HTTP statuses and emits the standard
// envelope. Unexpected errors become a generic 500; the real cause goes to
// the log only, with detail exposed outside production mode.
func (rt *Router) writeError(w http.ResponseWriter, r *http.Request, err error) {
	rid := middleware.RequestIDFromContext(r.Context())
	if se, ok := services.AsServiceError(err); ok {
		status := statusForCode(se.Code)
		slog.Warn("request_failed",
			"status", status,
			"message", se.Message,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", rid,
		)
		writeJSON(w, status, errorEnvelope{Error: errorBody{Message: se.Message, RequestID: rid}})
		return
	}
	slog.Error("unhandled_error",
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", rid,
	)
	body := errorBody{Message: "Internal server error", RequestID: rid}
	if !rt.cfg.Production() {
		body.Details = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, errorEnvelope{Error: body})
}

func (rt *Router) writeInvalid(w http.ResponseWriter, r *http.Request, msg string) {
	rt.writeError(w, r, services.NewInvalidError(msg))
}

func statusForCode(code services.ErrorCode) int {
	switch code {
	case services.ErrorInvalid:
		return http.StatusBadRequest
	case services.ErrorUnauthorized:
		return http.StatusUnauthorized
	case services.ErrorForbidden:
		return http.StatusForbidden
	case services.ErrorNotFound:
		return http.StatusNotFound
	case services.ErrorConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return services.NewInvalidError("invalid JSON body")
	}
	return nil
}
