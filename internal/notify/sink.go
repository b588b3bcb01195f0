package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/omarshaarawi/matchclock/internal/models"
)

type Importance int

const (
	ImportanceLow Importance = iota
	ImportanceDefault
	ImportanceHigh
)

type Channel struct {
	ID         string
	Name       string
	Importance Importance
}

// Notification is what a Platform displays. Lines is the inbox-style
// expansion; platforms without one only read Body.
type Notification struct {
	ID         string
	ChannelID  string
	Title      string
	Body       string
	Lines      []string
	LargeIcon  string
	Color      string
	Colorized  bool
	Ongoing    bool
	AutoCancel bool
	Silent     bool
	Importance Importance
	Data       map[string]string
}

// Platform is a native notification backend.
type Platform interface {
	CreateChannel(ctx context.Context, ch Channel) error
	// Display shows n, replacing any notification with the same ID. An empty
	// ID asks the platform to generate one; the shown ID is returned.
	Display(ctx context.Context, n Notification) (string, error)
	Cancel(ctx context.Context, id string) error
}

// LiveCard is the content of a match's ongoing notification.
type LiveCard struct {
	MatchID     string
	Title       string
	StatusLine  string
	Possession  string
	Competition string
	HomeLogo    string
	Silent      bool
}

// ResultCard is the content of the one-shot full-time notification.
type ResultCard struct {
	MatchID     string
	Title       string
	Competition string
	HomeLogo    string
}

// Sink lays out live and result cards for one kind of Platform.
type Sink interface {
	ShowLive(ctx context.Context, card LiveCard) (string, error)
	ShowResult(ctx context.Context, card ResultCard) (string, error)
	Cancel(ctx context.Context, id string) error
}

// LiveNotificationID is the stable identity of a match's ongoing notification.
func LiveNotificationID(matchID string) string {
	return "live-" + matchID
}

func scoreTitle(d models.LiveMatchNotificationData) string {
	return fmt.Sprintf("%s %s - %s %s", d.HomeTeamName, orZero(d.HomeScore), orZero(d.AwayScore), d.AwayTeamName)
}

func orZero(score string) string {
	if score == "" {
		return "0"
	}
	return score
}

func possessionLine(d models.LiveMatchNotificationData) string {
	if d.HomePossession == "" || d.AwayPossession == "" {
		return ""
	}
	return fmt.Sprintf("Possession %s%% - %s%%",
		strings.TrimSuffix(d.HomePossession, "%"), strings.TrimSuffix(d.AwayPossession, "%"))
}

// statusLine describes the latest event or phase of a match.
func statusLine(d models.LiveMatchNotificationData, minute *int) string {
	at := ""
	if minute != nil {
		at = fmt.Sprintf(" %d'", *minute)
	}

	switch phaseOf(d) {
	case models.StatusHalftime:
		return "⏸️ Half-time"
	case models.StatusExtraTimeHalftime:
		return "⏸️ Extra-time break"
	case models.StatusPenalties:
		return "🎯 Penalty shootout"
	case models.StatusFinished:
		return "🏁 Full time"
	case models.StatusExtraTime:
		if d.Type != models.EventGoal && d.Type != models.EventRedCard {
			return "⏱️ Extra time" + at
		}
	}

	switch d.Type {
	case models.EventGoal:
		return "⚽ GOAL!" + at
	case models.EventRedCard:
		return "🟥 Red card" + at
	case models.EventKickOff:
		return "🟢 Kick-off"
	case models.EventSecondHalf:
		return "▶️ Second half" + at
	}
	return "🔴 LIVE" + at
}
