package handlers

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/masteryhub/mastery-hub-be/internal/api/respond"
	"github.com/masteryhub/mastery-hub-be/internal/services"
)

// ActivityHandler serves the audit trail to administrators.
type ActivityHandler struct {
	service services.ActivityServiceProvider
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(service services.ActivityServiceProvider) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// GetRecent handles the request to get recent activity entries.
func (h *ActivityHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > 500 {
		limit = 50
	}

	entries, err := h.service.Recent(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve activity logs")
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, entries)
}
