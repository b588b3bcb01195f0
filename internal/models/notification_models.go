package models

// LiveMatchNotificationData is one inbound live-update payload, or the merged
// view of every payload seen for a match. Empty strings mean "not sent".
type LiveMatchNotificationData struct {
	MatchID             string
	Type                string
	Status              string
	HomeTeamName        string
	AwayTeamName        string
	HomeScore           string
	AwayScore           string
	Minute              string
	HomePossession      string
	AwayPossession      string
	CompetitionName     string
	HomeTeamLogo        string
	AwayTeamLogo        string
	LiveStartedAt       string
	SecondHalfStartedAt string
}

const (
	EventGoal         = "goal"
	EventRedCard      = "red_card"
	EventKickOff      = "kick_off"
	EventHalfTime     = "half_time"
	EventSecondHalf   = "second_half"
	EventExtraTime    = "extra_time"
	EventPenalties    = "penalties"
	EventMinuteUpdate = "minute_update"
	EventMatchEnd     = "match_end"
	EventEndMatch     = "end_match"
)

// Notification data types delivered to tap handlers.
const (
	NotificationTypeLive   = "live_match"
	NotificationTypeResult = "match_result"
)

// Merge copies every field present in next over d. Fields next omits keep
// their previous value.
func (d LiveMatchNotificationData) Merge(next LiveMatchNotificationData) LiveMatchNotificationData {
	pick := func(prev, cur string) string {
		if cur != "" {
			return cur
		}
		return prev
	}
	return LiveMatchNotificationData{
		MatchID:             pick(d.MatchID, next.MatchID),
		Type:                pick(d.Type, next.Type),
		Status:              pick(d.Status, next.Status),
		HomeTeamName:        pick(d.HomeTeamName, next.HomeTeamName),
		AwayTeamName:        pick(d.AwayTeamName, next.AwayTeamName),
		HomeScore:           pick(d.HomeScore, next.HomeScore),
		AwayScore:           pick(d.AwayScore, next.AwayScore),
		Minute:              pick(d.Minute, next.Minute),
		HomePossession:      pick(d.HomePossession, next.HomePossession),
		AwayPossession:      pick(d.AwayPossession, next.AwayPossession),
		CompetitionName:     pick(d.CompetitionName, next.CompetitionName),
		HomeTeamLogo:        pick(d.HomeTeamLogo, next.HomeTeamLogo),
		AwayTeamLogo:        pick(d.AwayTeamLogo, next.AwayTeamLogo),
		LiveStartedAt:       pick(d.LiveStartedAt, next.LiveStartedAt),
		SecondHalfStartedAt: pick(d.SecondHalfStartedAt, next.SecondHalfStartedAt),
	}
}

func (d LiveMatchNotificationData) IsMatchEnd() bool {
	return d.Type == EventMatchEnd || d.Type == EventEndMatch || d.Status == string(StatusFinished)
}
