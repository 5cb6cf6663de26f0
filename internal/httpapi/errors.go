package httpapi

import (
	"encoding/json"
	"net/http"

	"enercast/internal/predictor"
	"enercast/pkg/types"
)

// writeJSON writes a JSON payload with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeJSONError writes the failure envelope every error response carries.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.Envelope{Success: false, Error: msg})
}

// writeServiceError maps well-known service errors to HTTP status codes:
// a degraded service to 503, bad payloads to 400, everything else to 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case predictor.IsNotLoaded(err):
		writeJSONError(w, http.StatusServiceUnavailable, err.Error())
	case predictor.IsInvalidRequest(err):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	default:
		writeJSONError(w, http.StatusInternalServerError, err.Error())
	}
}
