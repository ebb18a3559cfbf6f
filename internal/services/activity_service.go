package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"

	"github.com/masteryhub/mastery-hub-be/internal/models"
	ws "github.com/masteryhub/mastery-hub-be/internal/websocket"
)

// ActivityServiceProvider defines the interface for the audit trail.
type ActivityServiceProvider interface {
	Record(ctx context.Context, entry models.ActivityLog)
	Recent(ctx context.Context, limit int) ([]models.ActivityLog, error)
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// ActivityService appends audit entries and serves them back to admins. The
// hub is optional; when present, recorded entries are pushed to the live feed.
type ActivityService struct {
	db  *bun.DB
	hub *ws.Hub
}

// NewActivityService creates a new ActivityService.
func NewActivityService(db *bun.DB, hub *ws.Hub) *ActivityService {
	return &ActivityService{db: db, hub: hub}
}

// Record appends an audit entry. It is strictly best-effort: a failed write
// is logged and swallowed so it can never affect the operation being audited.
func (s *ActivityService) Record(ctx context.Context, entry models.ActivityLog) {
	if entry.LogType == "" {
		entry.LogType = models.LogTypeUser
	}
	if entry.LogLevel == "" {
		entry.LogLevel = models.LogLevelInfo
	}

	if _, err := s.db.NewInsert().Model(&entry).Exec(ctx); err != nil {
		log.Warn().Err(err).Str("action", entry.Action).Msg("Failed to record activity log")
		return
	}

	if s.hub != nil {
		if msg := ws.NewActivityMessage(entry); msg != nil {
			s.hub.Publish(msg)
		}
	}
}

// Recent retrieves the most recent audit entries, newest first.
func (s *ActivityService) Recent(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	var entries []models.ActivityLog
	err := s.db.NewSelect().Model(&entries).
		Order("created_at DESC", "id DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	return entries, nil
}

// PruneOlderThan deletes entries created before cutoff and returns how many
// rows were removed.
func (s *ActivityService) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.NewDelete().Model((*models.ActivityLog)(nil)).
		Where("created_at < ?", cutoff).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("prune activity logs: %w", err)
	}
	affected, _ := res.RowsAffected()
	return affected, nil
}
