// Package respond writes the JSON envelopes shared by every handler. It is
// the only place error kinds are translated to HTTP status codes.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/masteryhub/mastery-hub-be/internal/apperr"
)

// JSON writes a success payload with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("Failed to encode response payload")
	}
}

// Message writes a plain confirmation message.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"message": message})
}

// Err writes an error response. The status and body come from the error's
// kind and client-safe message; unclassified errors surface as a generic 500.
func Err(w http.ResponseWriter, err error) {
	JSON(w, apperr.Status(err), map[string]string{"error": apperr.Message(err)})
}
