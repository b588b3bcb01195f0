package board

import (
	"time"

	"github.com/omarshaarawi/matchclock/internal/matchtime"
	"github.com/omarshaarawi/matchclock/internal/models"
	"github.com/omarshaarawi/matchclock/internal/scheduler"
)

const CountdownInterval = time.Minute

// CountdownBoard keeps an "HH:MM" countdown for every scheduled match kicking
// off within the next 24 hours.
type CountdownBoard struct {
	b *batch[string]
}

func NewCountdownBoard(sched *scheduler.Scheduler, onChange func(map[string]string)) *CountdownBoard {
	return &CountdownBoard{b: &batch[string]{
		sched:    sched,
		name:     "countdown-board",
		interval: CountdownInterval,
		compute: func(m models.MatchSnapshot, now time.Time) (string, bool) {
			if m.Status != models.StatusScheduled {
				return "", false
			}
			return matchtime.Countdown(m.StartTime, now)
		},
		// Matches further out than the window still need the job so they
		// enter it on time.
		needsJob: func(m models.MatchSnapshot, now time.Time) bool {
			return m.Status == models.StatusScheduled && m.StartTime.After(now)
		},
		equal: func(a, b string) bool {
			return a == b
		},
		onChange: onChange,
	}}
}

func (c *CountdownBoard) SetMatches(matches []models.MatchSnapshot) {
	c.b.setMatches(matches)
}

func (c *CountdownBoard) Countdowns() map[string]string {
	return c.b.snapshot()
}

func (c *CountdownBoard) Running() bool {
	return c.b.running()
}

func (c *CountdownBoard) Close() {
	c.b.close()
}
