package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/omarshaarawi/matchclock/internal/board"
	"github.com/omarshaarawi/matchclock/internal/clock"
	"github.com/omarshaarawi/matchclock/internal/matchtime"
	"github.com/omarshaarawi/matchclock/internal/models"
	"github.com/omarshaarawi/matchclock/internal/repository/memory"
	"github.com/omarshaarawi/matchclock/internal/scheduler"
)

const matchSimilarityThreshold = 0.5

type MatchLister interface {
	ListMatches(ctx context.Context, statuses ...models.MatchStatus) ([]models.MatchSnapshot, error)
}

// MatchService feeds polled snapshots to the boards and to followed matches
// and formats them for chat replies.
type MatchService struct {
	api        MatchLister
	repo       *memory.Repository
	sched      *scheduler.Scheduler
	live       *board.LiveBoard
	countdowns *board.CountdownBoard
	timeout    time.Duration

	mu       sync.Mutex
	followed map[string]*clock.Watcher
}

func NewMatchService(api MatchLister, repo *memory.Repository, sched *scheduler.Scheduler, timeout time.Duration) *MatchService {
	return &MatchService{
		api:   api,
		repo:  repo,
		sched: sched,
		live: board.NewLiveBoard(sched, func(times map[string]models.MatchTime) {
			slog.Debug("Live board updated", "matches", len(times))
		}),
		countdowns: board.NewCountdownBoard(sched, func(countdowns map[string]string) {
			slog.Debug("Countdowns updated", "matches", len(countdowns))
		}),
		timeout:  timeout,
		followed: make(map[string]*clock.Watcher),
	}
}

// Refresh fetches every unfinished match and pushes the result to the boards
// and followed matches.
func (s *MatchService) Refresh(ctx context.Context) error {
	matches, err := s.api.ListMatches(ctx,
		models.StatusScheduled,
		models.StatusLive,
		models.StatusHalftime,
		models.StatusExtraTime,
		models.StatusExtraTimeHalftime,
		models.StatusPenalties,
	)
	if err != nil {
		return fmt.Errorf("error refreshing matches: %w", err)
	}

	s.repo.SaveMatches(matches, s.sched.Clock().Now())
	s.live.SetMatches(matches)
	s.countdowns.SetMatches(matches)

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, w := range s.followed {
		m, ok := s.repo.GetMatch(id)
		if !ok {
			// The feed only lists unfinished matches.
			w.Stop()
			delete(s.followed, id)
			slog.Info("Stopped following finished match", "match_id", id)
			continue
		}
		w.Update(m)
	}

	slog.Info("Matches refreshed", "matches", len(matches))
	return nil
}

// Poll is the feed job's task.
func (s *MatchService) Poll() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.Refresh(ctx); err != nil {
		slog.Error("Failed to refresh matches", "error", err)
	}
}

func (s *MatchService) GetLiveScores() string {
	matches, _ := s.repo.GetMatches()
	times := s.live.Times()

	var live []models.MatchSnapshot
	for _, m := range matches {
		if _, ok := times[m.ID]; ok {
			live = append(live, m)
		}
	}
	if len(live) == 0 {
		return "No live matches right now."
	}

	sort.Slice(live, func(i, j int) bool {
		return live[i].StartTime.Before(live[j].StartTime)
	})

	var sb strings.Builder
	sb.WriteString("🔴 *Live Scores*\n\n")
	for _, m := range live {
		mt := times[m.ID]
		sb.WriteString(fmt.Sprintf("*%s* %d - %d *%s* `%s`\n", m.HomeTeamName, m.HomeScore, m.AwayScore, m.AwayTeamName, mt.DisplayMinute))
		if m.CompetitionName != "" {
			sb.WriteString(fmt.Sprintf("   %s\n", m.CompetitionName))
		}
	}
	return sb.String()
}

func (s *MatchService) GetUpcoming() string {
	matches, _ := s.repo.GetMatches()
	countdowns := s.countdowns.Countdowns()

	var upcoming []models.MatchSnapshot
	for _, m := range matches {
		if _, ok := countdowns[m.ID]; ok {
			upcoming = append(upcoming, m)
		}
	}
	if len(upcoming) == 0 {
		return "No matches in the next 24 hours."
	}

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].StartTime.Before(upcoming[j].StartTime)
	})

	var sb strings.Builder
	sb.WriteString("⏳ *Kicking Off Soon*\n\n")
	for _, m := range upcoming {
		sb.WriteString(fmt.Sprintf("*%s* vs *%s* in %s\n", m.HomeTeamName, m.AwayTeamName, countdowns[m.ID]))
	}
	return sb.String()
}

// FindMatch returns the polled match whose team name best matches query.
func (s *MatchService) FindMatch(query string) (models.MatchSnapshot, error) {
	matches, _ := s.repo.GetMatches()
	query = strings.ToLower(strings.TrimSpace(query))

	var bestMatch *models.MatchSnapshot
	bestScore := -1.0
	for i, m := range matches {
		for _, name := range []string{m.HomeTeamName, m.AwayTeamName} {
			name = strings.ToLower(name)
			score := similarity(query, name)
			if fuzzy.Match(query, name) && score < 0.9 {
				score = 0.9
			}
			if score > matchSimilarityThreshold && score > bestScore {
				bestScore = score
				bestMatch = &matches[i]
			}
		}
	}

	if bestMatch == nil {
		return models.MatchSnapshot{}, fmt.Errorf("match not found: %s", query)
	}
	return *bestMatch, nil
}

func similarity(a, b string) float64 {
	maxLen := max(len(a), len(b))
	if maxLen == 0 {
		return 0
	}
	distance := fuzzy.LevenshteinDistance(a, b)
	return 1 - float64(distance)/float64(maxLen)
}

func (s *MatchService) GetMatchDetail(query string) (string, error) {
	m, err := s.FindMatch(query)
	if err != nil {
		return "", err
	}
	return formatMatch(m, matchtime.Compute(m, s.sched.Clock().Now()), s.countdowns.Countdowns()[m.ID]), nil
}

// Follow starts a minute clock for the match best matching query and calls
// send with a new line each time the minute changes.
func (s *MatchService) Follow(query string, send func(string)) (string, error) {
	m, err := s.FindMatch(query)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.followed[m.ID]; ok {
		return fmt.Sprintf("Already following %s vs %s.", m.HomeTeamName, m.AwayTeamName), nil
	}

	home, away := m.HomeTeamName, m.AwayTeamName
	w := clock.NewWatcher(s.sched.Clock(), clock.Minutes, func(mt *models.MatchTime) {
		if mt == nil {
			return
		}
		latest, ok := s.repo.GetMatch(m.ID)
		if !ok {
			latest = m
		}
		send(fmt.Sprintf("⏱ %s %d - %d %s `%s`", home, latest.HomeScore, latest.AwayScore, away, mt.DisplayMinute))
	})
	s.followed[m.ID] = w
	w.Update(m)

	return fmt.Sprintf("Following %s vs %s.", home, away), nil
}

// Unfollow stops every followed match and reports how many there were.
func (s *MatchService) Unfollow() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.followed)
	for id, w := range s.followed {
		w.Stop()
		delete(s.followed, id)
	}
	return n
}

// Following reports how many matches are followed.
func (s *MatchService) Following() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.followed)
}

func (s *MatchService) Close() {
	s.Unfollow()
	s.live.Close()
	s.countdowns.Close()
}

func formatMatch(m models.MatchSnapshot, mt *models.MatchTime, countdown string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*%s* %d - %d *%s*\n", m.HomeTeamName, m.HomeScore, m.AwayScore, m.AwayTeamName))
	sb.WriteString("━━━━━━━━━━━━━━━━\n")
	if m.CompetitionName != "" {
		sb.WriteString(fmt.Sprintf("%s\n", m.CompetitionName))
	}

	switch {
	case mt != nil && mt.IsTicking:
		sb.WriteString(fmt.Sprintf("🔴 %s", mt.Display))
	case mt != nil:
		sb.WriteString(mt.Display)
	case countdown != "":
		sb.WriteString(fmt.Sprintf("Kick-off in %s", countdown))
	default:
		sb.WriteString(fmt.Sprintf("Kick-off %s", m.StartTime.Format("Mon 2 Jan 15:04")))
	}
	return sb.String()
}
