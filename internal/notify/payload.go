package notify

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/omarshaarawi/matchclock/internal/models"
)

var ErrMalformedPayload = errors.New("malformed live match payload")

// ParsePayload reads an inbound push data map. Only matchId and both team
// names are required.
func ParsePayload(raw map[string]string) (models.LiveMatchNotificationData, error) {
	get := func(key string) string {
		return strings.TrimSpace(raw[key])
	}

	d := models.LiveMatchNotificationData{
		MatchID:             get("matchId"),
		Type:                strings.ToLower(get("type")),
		Status:              strings.ToLower(get("status")),
		HomeTeamName:        get("homeTeamName"),
		AwayTeamName:        get("awayTeamName"),
		HomeScore:           get("homeScore"),
		AwayScore:           get("awayScore"),
		Minute:              get("minute"),
		HomePossession:      get("homePossession"),
		AwayPossession:      get("awayPossession"),
		CompetitionName:     get("competitionName"),
		HomeTeamLogo:        get("homeTeamLogo"),
		AwayTeamLogo:        get("awayTeamLogo"),
		LiveStartedAt:       get("liveStartedAt"),
		SecondHalfStartedAt: get("secondHalfStartedAt"),
	}

	var missing []string
	if d.MatchID == "" {
		missing = append(missing, "matchId")
	}
	if d.HomeTeamName == "" {
		missing = append(missing, "homeTeamName")
	}
	if d.AwayTeamName == "" {
		missing = append(missing, "awayTeamName")
	}
	if len(missing) > 0 {
		return d, fmt.Errorf("%w: missing %s", ErrMalformedPayload, strings.Join(missing, ", "))
	}
	return d, nil
}

// ResolveURL makes a server-relative media path absolute. Absolute URLs and
// empty strings pass through.
func ResolveURL(baseURL, path string) string {
	if !strings.HasPrefix(path, "/") || baseURL == "" {
		return path
	}
	return strings.TrimRight(baseURL, "/") + path
}

var statusAliases = map[string]models.MatchStatus{
	"first_half":  models.StatusLive,
	"second_half": models.StatusLive,
	"in_play":     models.StatusLive,
	"half_time":   models.StatusHalftime,
	"full_time":   models.StatusFinished,
	"ended":       models.StatusFinished,
}

var eventPhases = map[string]models.MatchStatus{
	models.EventKickOff:      models.StatusLive,
	models.EventSecondHalf:   models.StatusLive,
	models.EventGoal:         models.StatusLive,
	models.EventRedCard:      models.StatusLive,
	models.EventMinuteUpdate: models.StatusLive,
	models.EventHalfTime:     models.StatusHalftime,
	models.EventExtraTime:    models.StatusExtraTime,
	models.EventPenalties:    models.StatusPenalties,
	models.EventMatchEnd:     models.StatusFinished,
	models.EventEndMatch:     models.StatusFinished,
}

// phaseOf maps the merged payload onto a match phase. An explicit status wins
// over the event type; a payload with neither is a live update.
func phaseOf(d models.LiveMatchNotificationData) models.MatchStatus {
	if d.Status != "" {
		if s, ok := statusAliases[d.Status]; ok {
			return s
		}
		return models.MatchStatus(d.Status)
	}
	if s, ok := eventPhases[d.Type]; ok {
		return s
	}
	return models.StatusLive
}

// snapshotOf turns merged payload data into the calculator's input.
// minuteAt is when the last minute value arrived.
func snapshotOf(d models.LiveMatchNotificationData, minuteAt time.Time) models.MatchSnapshot {
	s := models.MatchSnapshot{
		ID:                  d.MatchID,
		Status:              phaseOf(d),
		LiveStartedAt:       parseInstant(d.LiveStartedAt),
		SecondHalfStartedAt: parseInstant(d.SecondHalfStartedAt),
		HomeTeamName:        d.HomeTeamName,
		AwayTeamName:        d.AwayTeamName,
		CompetitionName:     d.CompetitionName,
	}
	if minute, ok := parseMinute(d.Minute); ok {
		s.CurrentMinute = &minute
		if !minuteAt.IsZero() {
			s.UpdatedAt = &minuteAt
		}
	}
	return s
}

// parseInstant accepts RFC 3339 timestamps and Unix epoch milliseconds.
func parseInstant(v string) *time.Time {
	if v == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return &t
	}
	if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
		t := time.UnixMilli(ms).UTC()
		return &t
	}
	return nil
}

// parseMinute reads the leading number of values like "67" or "45+2".
func parseMinute(v string) (int, bool) {
	end := strings.IndexFunc(v, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == -1 {
		end = len(v)
	}
	if end == 0 {
		return 0, false
	}
	minute, err := strconv.Atoi(v[:end])
	if err != nil {
		return 0, false
	}
	return minute, true
}
