package monitoring

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/masteryhub/mastery-hub-be/internal/services"
)

// RetentionJob prunes old activity-log rows on a daily schedule.
type RetentionJob struct {
	activitySvc   services.ActivityServiceProvider
	retentionDays int
	cron          *cron.Cron
}

// NewRetentionJob creates a retention job keeping retentionDays of history.
func NewRetentionJob(activitySvc services.ActivityServiceProvider, retentionDays int) *RetentionJob {
	return &RetentionJob{
		activitySvc:   activitySvc,
		retentionDays: retentionDays,
		cron:          cron.New(),
	}
}

// Start schedules the daily prune and runs one pass immediately so restarts
// don't let the table grow unbounded between schedules.
func (j *RetentionJob) Start() error {
	if _, err := j.cron.AddFunc("@daily", j.prune); err != nil {
		return err
	}
	j.cron.Start()
	go j.prune()
	log.Info().Int("retention_days", j.retentionDays).Msg("Activity log retention job started")
	return nil
}

// Stop halts the schedule and waits for a running prune to finish.
func (j *RetentionJob) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
	log.Info().Msg("Activity log retention job stopped")
}

func (j *RetentionJob) prune() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().AddDate(0, 0, -j.retentionDays)
	removed, err := j.activitySvc.PruneOlderThan(ctx, cutoff)
	if err != nil {
		log.Error().Err(err).Msg("Activity log prune failed")
		return
	}
	if removed > 0 {
		log.Info().Int64("removed", removed).Time("cutoff", cutoff).Msg("Pruned old activity logs")
	}
}
