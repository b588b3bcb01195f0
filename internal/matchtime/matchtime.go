// Package matchtime derives the displayed match clock from the anchor
// timestamps the backend sets on phase transitions.
package matchtime

import (
	"fmt"
	"time"

	"github.com/omarshaarawi/matchclock/internal/models"
)

const (
	firstHalfMinutes       = 45
	defaultExtraTimeMinute = 91
	extraTimeBreakMinute   = 105
	penaltiesMinute        = 120
	fullTimeMinute         = 90

	// CountdownWindow bounds how far ahead a kickoff gets a countdown.
	CountdownWindow = 24 * time.Hour
)

// IsTicking reports whether the displayed minute of a match in this phase
// advances with wall-clock time.
func IsTicking(status models.MatchStatus) bool {
	return status == models.StatusLive || status == models.StatusExtraTime
}

// IsActive reports whether a match in this phase belongs on a live board,
// either ticking or paused at a fixed value.
func IsActive(status models.MatchStatus) bool {
	switch status {
	case models.StatusLive, models.StatusExtraTime,
		models.StatusHalftime, models.StatusExtraTimeHalftime, models.StatusPenalties:
		return true
	}
	return false
}

// Compute returns the match clock at now, or nil when neither an anchor
// timestamp nor a server minute is known.
func Compute(m models.MatchSnapshot, now time.Time) *models.MatchTime {
	switch m.Status {
	case models.StatusLive:
		if m.SecondHalfStartedAt != nil {
			return ticking(firstHalfMinutes+1, now.Sub(*m.SecondHalfStartedAt))
		}
		if m.LiveStartedAt != nil {
			return ticking(1, now.Sub(*m.LiveStartedAt))
		}
	case models.StatusExtraTime:
		if m.UpdatedAt != nil {
			base := defaultExtraTimeMinute
			if m.CurrentMinute != nil {
				base = *m.CurrentMinute
			}
			return ticking(base, now.Sub(*m.UpdatedAt))
		}
	case models.StatusHalftime:
		return fixed(firstHalfMinutes, "HT")
	case models.StatusExtraTimeHalftime:
		return fixed(extraTimeBreakMinute, "HT")
	case models.StatusPenalties:
		return fixed(penaltiesMinute, "PEN")
	case models.StatusFinished:
		minute := fullTimeMinute
		if m.CurrentMinute != nil {
			minute = *m.CurrentMinute
		}
		return fixed(minute, "FT")
	}

	if m.CurrentMinute != nil {
		return fixed(*m.CurrentMinute, fmt.Sprintf("%d'", *m.CurrentMinute))
	}
	return nil
}

// ticking builds a running clock starting at base for the minute that
// contains the anchor.
func ticking(base int, elapsed time.Duration) *models.MatchTime {
	if elapsed < 0 {
		elapsed = 0
	}
	total := int(elapsed / time.Second)
	minute := base + total/60
	seconds := total % 60
	return &models.MatchTime{
		Minute:        minute,
		Seconds:       seconds,
		Display:       fmt.Sprintf("%d:%02d", minute, seconds),
		DisplayMinute: fmt.Sprintf("%d'", minute),
		IsTicking:     true,
	}
}

func fixed(minute int, label string) *models.MatchTime {
	return &models.MatchTime{
		Minute:        minute,
		Display:       label,
		DisplayMinute: label,
	}
}

// Countdown formats the time left until kickoff as "HH:MM". It reports false
// when kickoff has passed or lies beyond CountdownWindow.
func Countdown(kickoff, now time.Time) (string, bool) {
	left := kickoff.Sub(now)
	if left <= 0 || left > CountdownWindow {
		return "", false
	}
	hours := int(left / time.Hour)
	minutes := int((left % time.Hour) / time.Minute)
	return fmt.Sprintf("%02d:%02d", hours, minutes), true
}

// Equal compares two clocks at the granularity a list view shows.
func Equal(a, b *models.MatchTime) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Minute == b.Minute && a.DisplayMinute == b.DisplayMinute
}
