package notify

import (
	"errors"
	"testing"
	"time"

	"github.com/omarshaarawi/matchclock/internal/models"
)

func TestParsePayloadRequiredFields(t *testing.T) {
	_, err := ParsePayload(map[string]string{"homeTeamName": "A"})
	if !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("error = %v, want ErrMalformedPayload", err)
	}

	d, err := ParsePayload(map[string]string{
		"matchId":      " 42 ",
		"homeTeamName": "Inter",
		"awayTeamName": "Milan",
		"type":         "GOAL",
	})
	if err != nil {
		t.Fatalf("ParsePayload() error = %v", err)
	}
	if d.MatchID != "42" || d.Type != models.EventGoal {
		t.Errorf("ParsePayload() = %+v", d)
	}
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		base, path, want string
	}{
		{"https://api.example.com", "/media/a.png", "https://api.example.com/media/a.png"},
		{"https://api.example.com/", "/media/a.png", "https://api.example.com/media/a.png"},
		{"https://api.example.com", "https://cdn.other.com/a.png", "https://cdn.other.com/a.png"},
		{"https://api.example.com", "", ""},
		{"", "/media/a.png", "/media/a.png"},
	}
	for _, tt := range tests {
		if got := ResolveURL(tt.base, tt.path); got != tt.want {
			t.Errorf("ResolveURL(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
		}
	}
}

func TestPhaseOf(t *testing.T) {
	tests := []struct {
		status, typ string
		want        models.MatchStatus
	}{
		{"live", "half_time", models.StatusLive},
		{"second_half", "", models.StatusLive},
		{"", "half_time", models.StatusHalftime},
		{"", "extra_time", models.StatusExtraTime},
		{"", "match_end", models.StatusFinished},
		{"", "", models.StatusLive},
		{"extra_time_halftime", "", models.StatusExtraTimeHalftime},
	}
	for _, tt := range tests {
		d := models.LiveMatchNotificationData{Status: tt.status, Type: tt.typ}
		if got := phaseOf(d); got != tt.want {
			t.Errorf("phaseOf(%q, %q) = %q, want %q", tt.status, tt.typ, got, tt.want)
		}
	}
}

func TestSnapshotOfParsesAnchors(t *testing.T) {
	minuteAt := t0.Add(3 * time.Minute)
	s := snapshotOf(models.LiveMatchNotificationData{
		MatchID:             "m1",
		Status:              "extra_time",
		Minute:              "95+1",
		LiveStartedAt:       "2026-05-02T15:00:00Z",
		SecondHalfStartedAt: "1777735800000",
	}, minuteAt)

	if s.LiveStartedAt == nil || !s.LiveStartedAt.Equal(t0) {
		t.Errorf("LiveStartedAt = %v", s.LiveStartedAt)
	}
	if s.SecondHalfStartedAt == nil || s.SecondHalfStartedAt.UnixMilli() != 1777735800000 {
		t.Errorf("SecondHalfStartedAt = %v", s.SecondHalfStartedAt)
	}
	if s.CurrentMinute == nil || *s.CurrentMinute != 95 {
		t.Errorf("CurrentMinute = %v", s.CurrentMinute)
	}
	if s.UpdatedAt == nil || !s.UpdatedAt.Equal(minuteAt) {
		t.Errorf("UpdatedAt = %v", s.UpdatedAt)
	}

	s = snapshotOf(models.LiveMatchNotificationData{LiveStartedAt: "yesterday", Minute: "HT"}, time.Time{})
	if s.LiveStartedAt != nil || s.CurrentMinute != nil || s.UpdatedAt != nil {
		t.Errorf("garbage parsed into %+v", s)
	}
}

func TestStatusLine(t *testing.T) {
	minute := 67
	tests := []struct {
		name string
		data models.LiveMatchNotificationData
		want string
	}{
		{"goal", models.LiveMatchNotificationData{Type: "goal"}, "⚽ GOAL! 67'"},
		{"red card", models.LiveMatchNotificationData{Type: "red_card", Status: "live"}, "🟥 Red card 67'"},
		{"half-time", models.LiveMatchNotificationData{Type: "half_time"}, "⏸️ Half-time"},
		{"extra time break", models.LiveMatchNotificationData{Status: "extra_time_halftime"}, "⏸️ Extra-time break"},
		{"penalties", models.LiveMatchNotificationData{Status: "penalties"}, "🎯 Penalty shootout"},
		{"extra time", models.LiveMatchNotificationData{Status: "extra_time"}, "⏱️ Extra time 67'"},
		{"extra time goal", models.LiveMatchNotificationData{Status: "extra_time", Type: "goal"}, "⚽ GOAL! 67'"},
		{"kick-off", models.LiveMatchNotificationData{Type: "kick_off"}, "🟢 Kick-off"},
		{"second half", models.LiveMatchNotificationData{Type: "second_half"}, "▶️ Second half 67'"},
		{"live", models.LiveMatchNotificationData{Status: "live"}, "🔴 LIVE 67'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusLine(tt.data, &minute); got != tt.want {
				t.Errorf("statusLine() = %q, want %q", got, tt.want)
			}
		})
	}

	if got := statusLine(models.LiveMatchNotificationData{}, nil); got != "🔴 LIVE" {
		t.Errorf("statusLine() without minute = %q", got)
	}
}
