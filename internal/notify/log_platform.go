package notify

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// LogPlatform writes notifications to the structured log. It stands in for a
// device backend when no chat transport is configured.
type LogPlatform struct {
	logger *slog.Logger
}

func NewLogPlatform(logger *slog.Logger) *LogPlatform {
	return &LogPlatform{logger: logger}
}

func (p *LogPlatform) CreateChannel(ctx context.Context, ch Channel) error {
	p.logger.InfoContext(ctx, "Notification channel created", "channel", ch.ID, "importance", ch.Importance)
	return nil
}

func (p *LogPlatform) Display(ctx context.Context, n Notification) (string, error) {
	id := n.ID
	if id == "" {
		id = uuid.NewString()
	}
	p.logger.InfoContext(ctx, "Notification displayed",
		"id", id,
		"channel", n.ChannelID,
		"title", n.Title,
		"body", strings.ReplaceAll(n.Body, "\n", " | "),
		"ongoing", n.Ongoing,
		"silent", n.Silent,
	)
	return id, nil
}

func (p *LogPlatform) Cancel(ctx context.Context, id string) error {
	p.logger.InfoContext(ctx, "Notification cancelled", "id", id)
	return nil
}
