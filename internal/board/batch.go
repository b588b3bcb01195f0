// Package board keeps derived per-match values for whole match lists behind a
// single shared job, publishing only when the visible result changes.
package board

import (
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/omarshaarawi/matchclock/internal/models"
	"github.com/omarshaarawi/matchclock/internal/scheduler"
)

type batch[V any] struct {
	sched    *scheduler.Scheduler
	name     string
	interval time.Duration
	compute  func(models.MatchSnapshot, time.Time) (V, bool)
	needsJob func(models.MatchSnapshot, time.Time) bool
	equal    func(a, b V) bool
	onChange func(map[string]V)

	mu      sync.Mutex
	matches []models.MatchSnapshot
	current map[string]V
	jobID   uuid.UUID
}

func (b *batch[V]) setMatches(matches []models.MatchSnapshot) {
	b.mu.Lock()
	b.matches = append(b.matches[:0:0], matches...)
	b.mu.Unlock()

	b.tick()
}

// tick recomputes every entry from scratch and keeps the job alive only while
// some input still needs it.
func (b *batch[V]) tick() {
	b.mu.Lock()
	now := b.sched.Clock().Now()
	next := make(map[string]V, len(b.matches))
	needed := false
	for _, m := range b.matches {
		if b.needsJob(m, now) {
			needed = true
		}
		if v, ok := b.compute(m, now); ok {
			next[m.ID] = v
		}
	}
	b.ensureJobLocked(needed)

	if b.current != nil && maps.EqualFunc(b.current, next, b.equal) {
		b.mu.Unlock()
		return
	}
	b.current = next
	published := maps.Clone(next)
	b.mu.Unlock()

	if b.onChange != nil {
		b.onChange(published)
	}
}

func (b *batch[V]) ensureJobLocked(needed bool) {
	switch {
	case needed && b.jobID == uuid.Nil:
		id, err := b.sched.Every(b.name, b.interval, b.tick)
		if err != nil {
			slog.Error("Failed to start board job", "board", b.name, "error", err)
			return
		}
		b.jobID = id
	case !needed && b.jobID != uuid.Nil:
		if err := b.sched.Remove(b.jobID); err != nil {
			slog.Error("Failed to stop board job", "board", b.name, "error", err)
		}
		b.jobID = uuid.Nil
	}
}

func (b *batch[V]) snapshot() map[string]V {
	b.mu.Lock()
	defer b.mu.Unlock()
	return maps.Clone(b.current)
}

func (b *batch[V]) running() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.jobID != uuid.Nil
}

func (b *batch[V]) close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.matches = nil
	b.ensureJobLocked(false)
}
