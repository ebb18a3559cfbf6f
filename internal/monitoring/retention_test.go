package monitoring

import (
	"context"
	"testing"
	"time"

	"github.com/masteryhub/mastery-hub-be/internal/models"
)

type fakeActivityService struct {
	pruned  bool
	cutoff  time.Time
	removed int64
}

func (f *fakeActivityService) Record(ctx context.Context, entry models.ActivityLog) {}

func (f *fakeActivityService) Recent(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	return nil, nil
}

func (f *fakeActivityService) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	f.pruned = true
	f.cutoff = cutoff
	return f.removed, nil
}

func TestPruneUsesConfiguredRetention(t *testing.T) {
	fake := &fakeActivityService{removed: 3}
	job := NewRetentionJob(fake, 90)

	job.prune()

	if !fake.pruned {
		t.Fatal("prune did not reach the activity service")
	}

	want := time.Now().AddDate(0, 0, -90)
	if diff := fake.cutoff.Sub(want); diff > time.Minute || diff < -time.Minute {
		t.Errorf("cutoff = %v, want about %v", fake.cutoff, want)
	}
}

func TestStartAndStop(t *testing.T) {
	job := NewRetentionJob(&fakeActivityService{}, 30)
	if err := job.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	job.Stop()
}
