package handlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/uptrace/bun"

	"github.com/masteryhub/mastery-hub-be/internal/api/respond"
	"github.com/masteryhub/mastery-hub-be/internal/models"
	"github.com/masteryhub/mastery-hub-be/internal/timeutil"
)

// SystemHandler serves liveness, readiness, and host statistics endpoints.
type SystemHandler struct {
	db *bun.DB
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(db *bun.DB) *SystemHandler {
	return &SystemHandler{db: db}
}

// Root is the liveness endpoint.
func (h *SystemHandler) Root(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{
		"message": "Mastery Hub backend is running",
		"status":  "healthy",
		"version": "1.0.0",
	})
}

// Health reports database connectivity. It answers 200 either way; the body
// says whether the storage layer is reachable.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	timestamp := timeutil.Now().Format(time.RFC3339)

	if err := h.db.PingContext(r.Context()); err != nil {
		log.Warn().Err(err).Msg("Health check failed to reach database")
		respond.JSON(w, http.StatusOK, map[string]any{
			"status":    "unhealthy",
			"database":  "disconnected",
			"timestamp": timestamp,
		})
		return
	}

	userCount, err := h.db.NewSelect().Model((*models.User)(nil)).Count(r.Context())
	if err != nil {
		userCount = -1
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"database":  "connected",
		"users":     userCount,
		"timestamp": timestamp,
	})
}

// Stats reports host CPU, memory, and uptime. Admin only.
func (h *SystemHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats := map[string]any{}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		stats["cpuPercent"] = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		stats["memory"] = map[string]any{
			"totalBytes":  vm.Total,
			"usedBytes":   vm.Used,
			"usedPercent": vm.UsedPercent,
		}
	}
	if uptime, err := host.Uptime(); err == nil {
		stats["uptimeSeconds"] = uptime
	}

	respond.JSON(w, http.StatusOK, stats)
}
