package notify

import (
	"context"
	"fmt"
	"sync"

	"github.com/omarshaarawi/matchclock/internal/models"
)

const liveColor = "#D32F2F"

var (
	liveChannel  = Channel{ID: "live-matches", Name: "Live matches", Importance: ImportanceLow}
	eventChannel = Channel{ID: "match-events", Name: "Match results", Importance: ImportanceHigh}
)

// RichSink renders Android-style notifications: channels, an ongoing
// colorized card and inbox-style lines.
type RichSink struct {
	platform Platform

	mu       sync.Mutex
	channels map[string]bool
}

func NewRichSink(platform Platform) *RichSink {
	return &RichSink{
		platform: platform,
		channels: make(map[string]bool),
	}
}

// ensureChannel creates ch on first use. A failed attempt is retried on the
// next call.
func (s *RichSink) ensureChannel(ctx context.Context, ch Channel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.channels[ch.ID] {
		return nil
	}
	if err := s.platform.CreateChannel(ctx, ch); err != nil {
		return fmt.Errorf("creating channel %s: %w", ch.ID, err)
	}
	s.channels[ch.ID] = true
	return nil
}

func (s *RichSink) ShowLive(ctx context.Context, card LiveCard) (string, error) {
	if err := s.ensureChannel(ctx, liveChannel); err != nil {
		return "", err
	}

	lines := []string{card.StatusLine}
	if card.Possession != "" {
		lines = append(lines, card.Possession)
	}
	if card.Competition != "" {
		lines = append(lines, card.Competition)
	}

	return s.platform.Display(ctx, Notification{
		ID:         LiveNotificationID(card.MatchID),
		ChannelID:  liveChannel.ID,
		Title:      card.Title,
		Body:       card.StatusLine,
		Lines:      lines,
		LargeIcon:  card.HomeLogo,
		Color:      liveColor,
		Colorized:  true,
		Ongoing:    true,
		Silent:     card.Silent,
		Importance: liveChannel.Importance,
		Data: map[string]string{
			"matchId": card.MatchID,
			"type":    models.NotificationTypeLive,
		},
	})
}

func (s *RichSink) ShowResult(ctx context.Context, card ResultCard) (string, error) {
	if err := s.ensureChannel(ctx, eventChannel); err != nil {
		return "", err
	}

	body := "Full time"
	if card.Competition != "" {
		body += " · " + card.Competition
	}
	return s.platform.Display(ctx, Notification{
		ChannelID:  eventChannel.ID,
		Title:      card.Title,
		Body:       body,
		LargeIcon:  card.HomeLogo,
		AutoCancel: true,
		Importance: eventChannel.Importance,
		Data: map[string]string{
			"matchId": card.MatchID,
			"type":    models.NotificationTypeResult,
		},
	})
}

func (s *RichSink) Cancel(ctx context.Context, id string) error {
	return s.platform.Cancel(ctx, id)
}
