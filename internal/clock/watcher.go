// Package clock keeps the clock of a single match current, the way a detail
// view shows it.
package clock

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/omarshaarawi/matchclock/internal/matchtime"
	"github.com/omarshaarawi/matchclock/internal/models"
)

type Precision int

const (
	// Seconds refreshes the full "M:SS" clock every second.
	Seconds Precision = iota
	// Minutes refreshes only the minute, every 30 seconds.
	Minutes
)

func (p Precision) interval() time.Duration {
	if p == Seconds {
		return time.Second
	}
	return 30 * time.Second
}

// Watcher recomputes one match's clock on its own ticker while the match is
// in a ticking phase. The ticker goroutine always reads the latest snapshot
// passed to Update.
type Watcher struct {
	clock     clockwork.Clock
	precision Precision
	onChange  func(*models.MatchTime)

	mu       sync.Mutex
	snapshot models.MatchSnapshot
	current  *models.MatchTime
	ticker   clockwork.Ticker
	done     chan struct{}
	stopped  bool
}

func NewWatcher(clock clockwork.Clock, precision Precision, onChange func(*models.MatchTime)) *Watcher {
	return &Watcher{
		clock:     clock,
		precision: precision,
		onChange:  onChange,
	}
}

// Update replaces the watched snapshot, recomputes immediately and starts or
// stops the ticker to follow the new phase.
func (w *Watcher) Update(snapshot models.MatchSnapshot) {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.snapshot = snapshot
	if matchtime.IsTicking(snapshot.Status) {
		w.startLocked()
	} else {
		w.stopTickerLocked()
	}
	changed, value := w.recomputeLocked()
	w.mu.Unlock()

	if changed {
		w.notify(value)
	}
}

// Current returns the last computed clock, nil when unknown.
func (w *Watcher) Current() *models.MatchTime {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.current == nil {
		return nil
	}
	mt := *w.current
	return &mt
}

// Minute returns the last computed minute.
func (w *Watcher) Minute() (int, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.current == nil {
		return 0, false
	}
	return w.current.Minute, true
}

func (w *Watcher) Ticking() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ticker != nil
}

// Stop releases the ticker. A stopped watcher ignores further updates.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopped = true
	w.stopTickerLocked()
}

func (w *Watcher) startLocked() {
	if w.ticker != nil {
		return
	}
	ticker := w.clock.NewTicker(w.precision.interval())
	done := make(chan struct{})
	w.ticker = ticker
	w.done = done

	go func() {
		for {
			select {
			case <-ticker.Chan():
				w.tick()
			case <-done:
				return
			}
		}
	}()
}

func (w *Watcher) stopTickerLocked() {
	if w.ticker == nil {
		return
	}
	w.ticker.Stop()
	close(w.done)
	w.ticker = nil
	w.done = nil
}

func (w *Watcher) tick() {
	w.mu.Lock()
	if w.stopped || w.ticker == nil {
		w.mu.Unlock()
		return
	}
	changed, value := w.recomputeLocked()
	w.mu.Unlock()

	if changed {
		w.notify(value)
	}
}

func (w *Watcher) recomputeLocked() (bool, *models.MatchTime) {
	next := matchtime.Compute(w.snapshot, w.clock.Now())
	if w.precision == Minutes {
		if matchtime.Equal(w.current, next) {
			return false, nil
		}
	} else if sameTime(w.current, next) {
		return false, nil
	}
	w.current = next
	if next == nil {
		return true, nil
	}
	mt := *next
	return true, &mt
}

func (w *Watcher) notify(mt *models.MatchTime) {
	if w.onChange != nil {
		w.onChange(mt)
	}
}

func sameTime(a, b *models.MatchTime) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
