// Package notify keeps one ongoing notification per live match in step with
// inbound push payloads and extrapolates its minute between them.
package notify

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/omarshaarawi/matchclock/internal/matchtime"
	"github.com/omarshaarawi/matchclock/internal/models"
	"github.com/omarshaarawi/matchclock/internal/scheduler"
)

// TickInterval is how often a live notification re-derives its minute.
const TickInterval = 30 * time.Second

// Manager is the registry of live match notifications. Every map is keyed by
// match id, so a match never has more than one state, job or ongoing
// notification.
type Manager struct {
	sink         Sink
	sched        *scheduler.Scheduler
	mediaBaseURL string

	mu      sync.Mutex
	matches map[string]*liveState
}

type liveState struct {
	mu             sync.Mutex
	data           models.LiveMatchNotificationData
	minuteAt       time.Time
	lastMinute     *int
	notificationID string
	jobID          uuid.UUID
	removed        bool
}

// ActiveMatch is a read-only view of one tracked live notification.
type ActiveMatch struct {
	Data           models.LiveMatchNotificationData
	Minute         *int
	NotificationID string
}

func NewManager(sink Sink, sched *scheduler.Scheduler, mediaBaseURL string) *Manager {
	return &Manager{
		sink:         sink,
		sched:        sched,
		mediaBaseURL: mediaBaseURL,
		matches:      make(map[string]*liveState),
	}
}

// HandleLiveMatchData is the entry point for inbound push data. Malformed
// payloads are logged and dropped.
func (m *Manager) HandleLiveMatchData(ctx context.Context, raw map[string]string) {
	payload, err := ParsePayload(raw)
	if err != nil {
		slog.Warn("Ignoring live match payload", "error", err)
		return
	}

	if payload.IsMatchEnd() {
		m.ShowMatchEndedNotification(ctx, payload)
		return
	}
	m.ShowOrUpdateLiveNotification(ctx, payload)
}

// ShowOrUpdateLiveNotification merges payload into the match's state, renders
// the ongoing notification and restarts the match's local tick job.
func (m *Manager) ShowOrUpdateLiveNotification(ctx context.Context, payload models.LiveMatchNotificationData) {
	payload.HomeTeamLogo = ResolveURL(m.mediaBaseURL, payload.HomeTeamLogo)
	payload.AwayTeamLogo = ResolveURL(m.mediaBaseURL, payload.AwayTeamLogo)

	st := m.acquire(payload.MatchID, true)
	defer st.mu.Unlock()

	now := m.sched.Clock().Now()
	st.data = st.data.Merge(payload)
	if payload.Minute != "" {
		st.minuteAt = now
	}

	m.render(ctx, st, m.minuteOf(st, now), false)
	m.restartJob(st)
}

// CancelLiveNotification stops the match's job, cancels its ongoing
// notification and forgets the match. Unknown ids are a no-op.
func (m *Manager) CancelLiveNotification(ctx context.Context, matchID string) {
	m.mu.Lock()
	st, ok := m.matches[matchID]
	if ok {
		delete(m.matches, matchID)
	}
	m.mu.Unlock()
	if !ok {
		return
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	st.removed = true
	m.stopJob(st)

	if st.notificationID == "" {
		return
	}
	if err := m.sink.Cancel(ctx, st.notificationID); err != nil {
		slog.Error("Failed to cancel live notification", "match_id", matchID, "error", err)
	}
}

// ShowMatchEndedNotification replaces the ongoing notification with a
// dismissible result notification.
func (m *Manager) ShowMatchEndedNotification(ctx context.Context, payload models.LiveMatchNotificationData) {
	data := payload
	if st := m.acquire(payload.MatchID, false); st != nil {
		data = st.data.Merge(payload)
		st.mu.Unlock()
	}
	data.HomeTeamLogo = ResolveURL(m.mediaBaseURL, data.HomeTeamLogo)

	m.CancelLiveNotification(ctx, payload.MatchID)

	id, err := m.sink.ShowResult(ctx, ResultCard{
		MatchID:     data.MatchID,
		Title:       scoreTitle(data),
		Competition: data.CompetitionName,
		HomeLogo:    data.HomeTeamLogo,
	})
	if err != nil {
		slog.Error("Failed to show match result", "match_id", data.MatchID, "error", err)
		return
	}
	slog.Info("Match result shown", "match_id", data.MatchID, "notification_id", id)
}

// Active lists the tracked matches ordered by match id.
func (m *Manager) Active() []ActiveMatch {
	m.mu.Lock()
	states := make([]*liveState, 0, len(m.matches))
	for _, st := range m.matches {
		states = append(states, st)
	}
	m.mu.Unlock()

	active := make([]ActiveMatch, 0, len(states))
	for _, st := range states {
		st.mu.Lock()
		if !st.removed {
			active = append(active, ActiveMatch{
				Data:           st.data,
				Minute:         copyMinute(st.lastMinute),
				NotificationID: st.notificationID,
			})
		}
		st.mu.Unlock()
	}

	sort.Slice(active, func(i, j int) bool {
		return active[i].Data.MatchID < active[j].Data.MatchID
	})
	return active
}

// Shutdown cancels every job and ongoing notification.
func (m *Manager) Shutdown(ctx context.Context) {
	m.mu.Lock()
	ids := make([]string, 0, len(m.matches))
	for id := range m.matches {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	for _, id := range ids {
		m.CancelLiveNotification(ctx, id)
	}
}

// acquire returns the match's state locked, creating it when asked to. A
// state removed by a concurrent cancel is never returned.
func (m *Manager) acquire(matchID string, create bool) *liveState {
	for {
		m.mu.Lock()
		st, ok := m.matches[matchID]
		if !ok {
			if !create {
				m.mu.Unlock()
				return nil
			}
			st = &liveState{}
			m.matches[matchID] = st
		}
		m.mu.Unlock()

		st.mu.Lock()
		if !st.removed {
			return st
		}
		st.mu.Unlock()
	}
}

func (m *Manager) tick(matchID string) {
	st := m.acquire(matchID, false)
	if st == nil {
		return
	}
	defer st.mu.Unlock()

	if !matchtime.IsTicking(phaseOf(st.data)) {
		return
	}
	minute := m.minuteOf(st, m.sched.Clock().Now())
	if sameMinute(minute, st.lastMinute) {
		return
	}
	m.render(context.Background(), st, minute, true)
}

// render shows the ongoing notification. On failure the bookkeeping stays as
// it was so the next tick or payload retries.
func (m *Manager) render(ctx context.Context, st *liveState, minute *int, silent bool) {
	id, err := m.sink.ShowLive(ctx, LiveCard{
		MatchID:     st.data.MatchID,
		Title:       scoreTitle(st.data),
		StatusLine:  statusLine(st.data, minute),
		Possession:  possessionLine(st.data),
		Competition: st.data.CompetitionName,
		HomeLogo:    st.data.HomeTeamLogo,
		Silent:      silent,
	})
	if err != nil {
		slog.Error("Failed to show live notification", "match_id", st.data.MatchID, "error", err)
		return
	}
	st.notificationID = id
	st.lastMinute = copyMinute(minute)
}

func (m *Manager) minuteOf(st *liveState, now time.Time) *int {
	snapshot := snapshotOf(st.data, st.minuteAt)
	if mt := matchtime.Compute(snapshot, now); mt != nil {
		return &mt.Minute
	}
	return nil
}

// restartJob replaces the match's tick job. Paused phases get no job.
func (m *Manager) restartJob(st *liveState) {
	m.stopJob(st)
	if !matchtime.IsTicking(phaseOf(st.data)) {
		return
	}

	matchID := st.data.MatchID
	id, err := m.sched.Every(LiveNotificationID(matchID), TickInterval, func() { m.tick(matchID) })
	if err != nil {
		slog.Error("Failed to start live notification job", "match_id", matchID, "error", err)
		return
	}
	st.jobID = id
}

func (m *Manager) stopJob(st *liveState) {
	if st.jobID == uuid.Nil {
		return
	}
	if err := m.sched.Remove(st.jobID); err != nil {
		slog.Error("Failed to stop live notification job", "match_id", st.data.MatchID, "error", err)
	}
	st.jobID = uuid.Nil
}

func (m *Manager) hasJob(matchID string) bool {
	st := m.acquire(matchID, false)
	if st == nil {
		return false
	}
	defer st.mu.Unlock()
	return st.jobID != uuid.Nil
}

func sameMinute(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func copyMinute(minute *int) *int {
	if minute == nil {
		return nil
	}
	v := *minute
	return &v
}
