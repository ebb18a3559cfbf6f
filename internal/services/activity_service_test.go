package services

import (
	"context"
	"testing"
	"time"

	"github.com/masteryhub/mastery-hub-be/internal/models"
)

func TestRecordAndRecent(t *testing.T) {
	svc := NewActivityService(newTestDB(t), nil)
	ctx := context.Background()

	userID := int64(1)
	svc.Record(ctx, models.ActivityLog{
		UserID:   &userID,
		Username: strPtr("alice"),
		Action:   "login",
		Details:  "User logged in with role user",
		LogLevel: models.LogLevelSuccess,
	})
	svc.Record(ctx, models.ActivityLog{
		Action: "register",
	})

	entries, err := svc.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}

	// Newest first.
	if entries[0].Action != "register" {
		t.Errorf("entries[0].Action = %q, want register", entries[0].Action)
	}
	// Defaults applied when unset.
	if entries[0].LogType != models.LogTypeUser || entries[0].LogLevel != models.LogLevelInfo {
		t.Errorf("defaults not applied: type=%q level=%q", entries[0].LogType, entries[0].LogLevel)
	}
}

func TestRecordFailureIsSwallowed(t *testing.T) {
	db := newTestDB(t)
	svc := NewActivityService(db, nil)

	// Close the database so the insert must fail. Record must neither panic
	// nor surface the error.
	db.Close()
	svc.Record(context.Background(), models.ActivityLog{Action: "login"})
}

func TestRecentHonorsLimit(t *testing.T) {
	svc := NewActivityService(newTestDB(t), nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		svc.Record(ctx, models.ActivityLog{Action: "login"})
	}

	entries, err := svc.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("len(entries) = %d, want 3", len(entries))
	}
}

func TestPruneOlderThan(t *testing.T) {
	db := newTestDB(t)
	svc := NewActivityService(db, nil)
	ctx := context.Background()

	old := models.ActivityLog{Action: "login", LogType: "user", LogLevel: "info",
		CreatedAt: time.Now().AddDate(0, 0, -120)}
	if _, err := db.NewInsert().Model(&old).Exec(ctx); err != nil {
		t.Fatalf("insert old entry: %v", err)
	}
	svc.Record(ctx, models.ActivityLog{Action: "register"})

	removed, err := svc.PruneOlderThan(ctx, time.Now().AddDate(0, 0, -90))
	if err != nil {
		t.Fatalf("PruneOlderThan: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}

	remaining, err := svc.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(remaining) != 1 || remaining[0].Action != "register" {
		t.Errorf("prune removed the wrong rows: %+v", remaining)
	}
}
