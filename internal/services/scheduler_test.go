package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mhakimi/tribeland/internal/models"
)

type recordingNotifier struct {
	mu       sync.Mutex
	failures []string
}

func (n *recordingNotifier) TickFailed(runID string, err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, runID)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.failures)
}

func TestSchedulerFiresImmediately(t *testing.T) {
	w := newTestWorld(t)
	svc := NewGameTickService(w.db, time.Hour)

	notifier := &recordingNotifier{}
	scheduler := NewTickScheduler(svc, notifier, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx)
		close(done)
	}()

	// the immediate first tick sets the guard marker
	deadline := time.Now().Add(2 * time.Second)
	for {
		var entry models.CacheEntry
		if err := w.db.Where("key = ?", TickGuardKey).First(&entry).Error; err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("guard marker not written by the immediate tick")
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop on context cancel")
	}

	if notifier.count() != 0 {
		t.Errorf("failure notifications = %d, want 0", notifier.count())
	}
}

func TestSchedulerSurvivesTickFailure(t *testing.T) {
	w := newTestWorld(t)
	svc := NewGameTickService(w.db, time.Hour)
	// closed database makes every tick fail
	sqlDB, err := w.db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("failed to close database: %v", err)
	}
	if tickErr := svc.ProcessGameTick(context.Background()); tickErr == nil {
		t.Fatal("expected tick against a closed database to fail")
	}

	notifier := &recordingNotifier{}
	scheduler := NewTickScheduler(svc, notifier, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for notifier.count() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("failed tick did not notify")
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after a failed tick")
	}
}
