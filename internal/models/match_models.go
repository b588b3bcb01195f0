package models

import "time"

type MatchStatus string

const (
	StatusScheduled         MatchStatus = "scheduled"
	StatusLive              MatchStatus = "live"
	StatusHalftime          MatchStatus = "halftime"
	StatusExtraTime         MatchStatus = "extra_time"
	StatusExtraTimeHalftime MatchStatus = "extra_time_halftime"
	StatusPenalties         MatchStatus = "penalties"
	StatusFinished          MatchStatus = "finished"
)

// MatchSnapshot is a match as the backend last reported it. The clock fields
// are anchors set by the server on phase transitions and are never advanced
// locally.
type MatchSnapshot struct {
	ID                  string      `json:"id"`
	Status              MatchStatus `json:"status"`
	CurrentMinute       *int        `json:"currentMinute,omitempty"`
	LiveStartedAt       *time.Time  `json:"liveStartedAt,omitempty"`
	SecondHalfStartedAt *time.Time  `json:"secondHalfStartedAt,omitempty"`
	UpdatedAt           *time.Time  `json:"updatedAt,omitempty"`
	StartTime           time.Time   `json:"startTime"`

	HomeTeamName    string `json:"homeTeamName"`
	AwayTeamName    string `json:"awayTeamName"`
	HomeScore       int    `json:"homeScore"`
	AwayScore       int    `json:"awayScore"`
	CompetitionName string `json:"competitionName,omitempty"`
}

// MatchTime is the derived clock of a match at a given instant.
type MatchTime struct {
	Minute        int
	Seconds       int
	Display       string
	DisplayMinute string
	IsTicking     bool
}
