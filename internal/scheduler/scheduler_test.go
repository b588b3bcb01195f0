package scheduler

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

func newTestScheduler(t *testing.T) *Scheduler {
	t.Helper()
	s, err := NewScheduler(clockwork.NewFakeClock(), "UTC")
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Stop() })
	return s
}

func TestEveryAndRemove(t *testing.T) {
	s := newTestScheduler(t)

	id, err := s.Every("tick", 30*time.Second, func() {})
	if err != nil {
		t.Fatalf("Every() error = %v", err)
	}
	if id == uuid.Nil {
		t.Fatal("expected a job id")
	}
	if got := s.JobCount(); got != 1 {
		t.Fatalf("JobCount() = %d, want 1", got)
	}

	if err := s.Remove(id); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if got := s.JobCount(); got != 0 {
		t.Fatalf("JobCount() = %d, want 0", got)
	}

	if err := s.Remove(id); err != nil {
		t.Errorf("second Remove() error = %v", err)
	}
	if err := s.Remove(uuid.Nil); err != nil {
		t.Errorf("Remove(nil) error = %v", err)
	}
}

func TestNewSchedulerBadTimezone(t *testing.T) {
	s, err := NewScheduler(clockwork.NewFakeClock(), "Not/AZone")
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}
	_ = s.Stop()
}
