package board

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/omarshaarawi/matchclock/internal/models"
	"github.com/omarshaarawi/matchclock/internal/scheduler"
)

var t0 = time.Date(2026, 5, 2, 15, 0, 0, 0, time.UTC)

func newTestScheduler(t *testing.T, fc clockwork.Clock) *scheduler.Scheduler {
	t.Helper()
	s, err := scheduler.NewScheduler(fc, "UTC")
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Stop() })
	return s
}

func live(id string, since time.Time) models.MatchSnapshot {
	return models.MatchSnapshot{ID: id, Status: models.StatusLive, LiveStartedAt: &since}
}

func scheduled(id string, kickoff time.Time) models.MatchSnapshot {
	return models.MatchSnapshot{ID: id, Status: models.StatusScheduled, StartTime: kickoff}
}

func TestLiveBoardNoJobWithoutTickingMatches(t *testing.T) {
	fc := clockwork.NewFakeClockAt(t0)
	sched := newTestScheduler(t, fc)
	calls := 0
	lb := NewLiveBoard(sched, func(map[string]models.MatchTime) { calls++ })

	lb.SetMatches([]models.MatchSnapshot{
		{ID: "ht", Status: models.StatusHalftime},
		{ID: "pen", Status: models.StatusPenalties},
		scheduled("later", t0.Add(time.Hour)),
	})

	if lb.Running() {
		t.Fatal("board started a job with no ticking match")
	}
	if got := sched.JobCount(); got != 0 {
		t.Fatalf("JobCount() = %d, want 0", got)
	}

	fc.Advance(LiveInterval * 3)
	if calls != 1 {
		t.Errorf("onChange called %d times, want 1", calls)
	}

	times := lb.Times()
	if len(times) != 2 || times["ht"].Display != "HT" || times["pen"].Display != "PEN" {
		t.Errorf("Times() = %+v", times)
	}
	if _, ok := times["later"]; ok {
		t.Error("scheduled match on the live board")
	}
}

func TestLiveBoardOneJobForManyMatches(t *testing.T) {
	fc := clockwork.NewFakeClockAt(t0.Add(10 * time.Minute))
	sched := newTestScheduler(t, fc)
	lb := NewLiveBoard(sched, nil)
	defer lb.Close()

	var matches []models.MatchSnapshot
	for i := 0; i < 25; i++ {
		matches = append(matches, live(string(rune('a'+i)), t0.Add(time.Duration(i)*time.Minute)))
	}
	lb.SetMatches(matches)

	if got := sched.JobCount(); got != 1 {
		t.Fatalf("JobCount() = %d, want 1", got)
	}

	lb.SetMatches(matches[:3])
	if got := sched.JobCount(); got != 1 {
		t.Fatalf("JobCount() after shrink = %d, want 1", got)
	}

	minutes := lb.Minutes()
	if minutes["a"] != 11 || minutes["b"] != 10 || minutes["c"] != 9 || len(minutes) != 3 {
		t.Errorf("Minutes() = %v", minutes)
	}

	lb.SetMatches([]models.MatchSnapshot{{ID: "a", Status: models.StatusFinished}})
	if lb.Running() || sched.JobCount() != 0 {
		t.Error("job survived once no match was ticking")
	}
}

func TestLiveBoardPublishesOnlyOnChange(t *testing.T) {
	fc := clockwork.NewFakeClockAt(t0.Add(10 * time.Second))
	sched := newTestScheduler(t, fc)
	var published []map[string]models.MatchTime
	lb := NewLiveBoard(sched, func(m map[string]models.MatchTime) { published = append(published, m) })
	defer lb.Close()

	lb.SetMatches([]models.MatchSnapshot{live("m1", t0), {ID: "m2", Status: models.StatusHalftime}})
	if len(published) != 1 {
		t.Fatalf("published %d times after SetMatches, want 1", len(published))
	}

	// Same minute, seconds moved: nothing observable changed.
	fc.Advance(30 * time.Second)
	lb.b.tick()
	lb.b.tick()
	if len(published) != 1 {
		t.Fatalf("published %d times without a minute change, want 1", len(published))
	}

	fc.Advance(30 * time.Second)
	lb.b.tick()
	if len(published) != 2 {
		t.Fatalf("published %d times after minute change, want 2", len(published))
	}
	if got := published[1]["m1"].Minute; got != 2 {
		t.Errorf("m1 minute = %d, want 2", got)
	}

	// Dropping a match changes the size.
	lb.SetMatches([]models.MatchSnapshot{live("m1", t0)})
	if len(published) != 3 {
		t.Fatalf("published %d times after removal, want 3", len(published))
	}
}

func TestCountdownBoard(t *testing.T) {
	fc := clockwork.NewFakeClockAt(t0)
	sched := newTestScheduler(t, fc)
	calls := 0
	cb := NewCountdownBoard(sched, func(map[string]string) { calls++ })
	defer cb.Close()

	cb.SetMatches([]models.MatchSnapshot{
		scheduled("soon", t0.Add(90*time.Minute+30*time.Second)),
		scheduled("tomorrow", t0.Add(30*time.Hour)),
		live("playing", t0.Add(-time.Minute)),
	})

	got := cb.Countdowns()
	if len(got) != 1 || got["soon"] != "01:30" {
		t.Fatalf("Countdowns() = %v", got)
	}
	if !cb.Running() || sched.JobCount() != 1 {
		t.Fatal("expected one countdown job")
	}

	fc.Advance(20 * time.Second)
	cb.b.tick()
	if calls != 1 {
		t.Errorf("published on an unchanged countdown")
	}

	fc.Advance(40 * time.Second)
	cb.b.tick()
	if got := cb.Countdowns()["soon"]; got != "01:29" {
		t.Errorf("soon = %q, want 01:29", got)
	}

	// Past kickoff the entry drops out; the far match now sits in the window.
	fc.Advance(6 * time.Hour)
	cb.b.tick()
	got = cb.Countdowns()
	if _, ok := got["soon"]; ok {
		t.Error("started match kept its countdown")
	}
	if got["tomorrow"] != "23:59" {
		t.Errorf("tomorrow = %q, want 23:59", got["tomorrow"])
	}

	fc.Advance(30 * time.Hour)
	cb.b.tick()
	if cb.Running() {
		t.Error("countdown job kept running after every kickoff passed")
	}
}

func TestCountdownBoardNoScheduledMatches(t *testing.T) {
	fc := clockwork.NewFakeClockAt(t0)
	sched := newTestScheduler(t, fc)
	cb := NewCountdownBoard(sched, nil)

	cb.SetMatches([]models.MatchSnapshot{live("m1", t0)})
	if cb.Running() || sched.JobCount() != 0 {
		t.Error("countdown job started without scheduled matches")
	}
	if len(cb.Countdowns()) != 0 {
		t.Errorf("Countdowns() = %v", cb.Countdowns())
	}
}
