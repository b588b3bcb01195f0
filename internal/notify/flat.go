package notify

import (
	"context"
	"strings"

	"github.com/omarshaarawi/matchclock/internal/models"
)

// FlatSink renders for platforms without channels or expandable styles; every
// detail goes into the body text.
type FlatSink struct {
	platform Platform
}

func NewFlatSink(platform Platform) *FlatSink {
	return &FlatSink{platform: platform}
}

func (s *FlatSink) ShowLive(ctx context.Context, card LiveCard) (string, error) {
	body := joinLines(card.StatusLine, card.Possession, card.Competition)
	return s.platform.Display(ctx, Notification{
		ID:         LiveNotificationID(card.MatchID),
		Title:      card.Title,
		Body:       body,
		Ongoing:    true,
		Silent:     card.Silent,
		Importance: ImportanceDefault,
		Data: map[string]string{
			"matchId": card.MatchID,
			"type":    models.NotificationTypeLive,
		},
	})
}

func (s *FlatSink) ShowResult(ctx context.Context, card ResultCard) (string, error) {
	return s.platform.Display(ctx, Notification{
		Title:      card.Title,
		Body:       joinLines("Full time", card.Competition),
		AutoCancel: true,
		Importance: ImportanceHigh,
		Data: map[string]string{
			"matchId": card.MatchID,
			"type":    models.NotificationTypeResult,
		},
	})
}

func (s *FlatSink) Cancel(ctx context.Context, id string) error {
	return s.platform.Cancel(ctx, id)
}

func joinLines(lines ...string) string {
	kept := lines[:0:0]
	for _, l := range lines {
		if l != "" {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, "\n")
}
