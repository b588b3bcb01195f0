package board

import (
	"time"

	"github.com/omarshaarawi/matchclock/internal/matchtime"
	"github.com/omarshaarawi/matchclock/internal/models"
	"github.com/omarshaarawi/matchclock/internal/scheduler"
)

// LiveInterval is the refresh period of list views; they show minutes only.
const LiveInterval = 30 * time.Second

// LiveBoard tracks the clock of every active match in a list with one shared
// job. No job runs while none of the matches is in a ticking phase.
type LiveBoard struct {
	b *batch[models.MatchTime]
}

func NewLiveBoard(sched *scheduler.Scheduler, onChange func(map[string]models.MatchTime)) *LiveBoard {
	return &LiveBoard{b: &batch[models.MatchTime]{
		sched:    sched,
		name:     "live-board",
		interval: LiveInterval,
		compute: func(m models.MatchSnapshot, now time.Time) (models.MatchTime, bool) {
			if !matchtime.IsActive(m.Status) {
				return models.MatchTime{}, false
			}
			mt := matchtime.Compute(m, now)
			if mt == nil {
				return models.MatchTime{}, false
			}
			return *mt, true
		},
		needsJob: func(m models.MatchSnapshot, _ time.Time) bool {
			return matchtime.IsTicking(m.Status)
		},
		equal: func(a, b models.MatchTime) bool {
			return matchtime.Equal(&a, &b)
		},
		onChange: onChange,
	}}
}

// SetMatches replaces the list and recomputes immediately.
func (l *LiveBoard) SetMatches(matches []models.MatchSnapshot) {
	l.b.setMatches(matches)
}

func (l *LiveBoard) Times() map[string]models.MatchTime {
	return l.b.snapshot()
}

func (l *LiveBoard) Minutes() map[string]int {
	times := l.b.snapshot()
	minutes := make(map[string]int, len(times))
	for id, mt := range times {
		minutes[id] = mt.Minute
	}
	return minutes
}

func (l *LiveBoard) Running() bool {
	return l.b.running()
}

func (l *LiveBoard) Close() {
	l.b.close()
}
