package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/omarshaarawi/matchclock/internal/notify"
	"github.com/omarshaarawi/matchclock/internal/service"
)

// TelegramBot answers chat commands and doubles as a notification platform:
// an ongoing notification is a single chat message edited in place.
type TelegramBot struct {
	bot     *tgbotapi.BotAPI
	handler *Handler
	chatID  int64

	mu       sync.Mutex
	silent   map[string]bool
	messages map[string]int
}

func NewTelegramBot(token string, chatID int64, matchService *service.MatchService) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	t := &TelegramBot{
		bot:      bot,
		chatID:   chatID,
		silent:   make(map[string]bool),
		messages: make(map[string]int),
	}
	t.handler = NewHandler(matchService, t.SendMessage)
	return t, nil
}

// SetManager lets /tracked list live notifications. The manager is built
// after the bot because the bot is its platform.
func (t *TelegramBot) SetManager(manager *notify.Manager) {
	t.handler.manager = manager
}

func (t *TelegramBot) Start(ctx context.Context) error {
	slog.Info("Authorized on account", "username", t.bot.Self.UserName)
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.bot.GetUpdatesChan(u)

	for {
		select {
		case update := <-updates:
			if update.Message == nil {
				continue
			}

			if update.Message.IsCommand() {
				msg := t.handler.HandleCommand(update)
				if _, err := t.bot.Send(msg); err != nil {
					slog.Error("Error sending message", "error", err)
				}
			}
		case <-ctx.Done():
			t.bot.StopReceivingUpdates()
			return nil
		}
	}
}

func (t *TelegramBot) SendMessage(text string) error {
	if t.chatID == 0 {
		slog.Error("Chat ID not set")
		return fmt.Errorf("chat ID not set")
	}

	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "Markdown"
	_, err := t.bot.Send(msg)
	if err != nil {
		slog.Error("Error sending message", "error", err)
	}
	return err
}

// CreateChannel records whether messages on the channel arrive silently.
// Telegram has no channels of its own.
func (t *TelegramBot) CreateChannel(_ context.Context, ch notify.Channel) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.silent[ch.ID] = ch.Importance == notify.ImportanceLow
	return nil
}

func (t *TelegramBot) Display(_ context.Context, n notify.Notification) (string, error) {
	if t.chatID == 0 {
		return "", fmt.Errorf("chat ID not set")
	}

	id := n.ID
	if id == "" {
		id = uuid.NewString()
	}
	text := formatNotification(n)

	t.mu.Lock()
	defer t.mu.Unlock()

	if messageID, ok := t.messages[id]; ok {
		edit := tgbotapi.NewEditMessageText(t.chatID, messageID, text)
		if _, err := t.bot.Send(edit); err != nil && !isNotModified(err) {
			return "", fmt.Errorf("error editing message: %w", err)
		}
		return id, nil
	}

	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.DisableNotification = n.Silent || t.silent[n.ChannelID]
	sent, err := t.bot.Send(msg)
	if err != nil {
		return "", fmt.Errorf("error sending message: %w", err)
	}
	if n.Ongoing {
		t.messages[id] = sent.MessageID
	}
	return id, nil
}

func (t *TelegramBot) Cancel(_ context.Context, id string) error {
	t.mu.Lock()
	messageID, ok := t.messages[id]
	delete(t.messages, id)
	t.mu.Unlock()
	if !ok {
		return nil
	}

	if _, err := t.bot.Request(tgbotapi.NewDeleteMessage(t.chatID, messageID)); err != nil {
		return fmt.Errorf("error deleting message: %w", err)
	}
	return nil
}

func formatNotification(n notify.Notification) string {
	var sb strings.Builder
	sb.WriteString(n.Title)
	sb.WriteString("\n")
	if len(n.Lines) > 0 {
		sb.WriteString(strings.Join(n.Lines, "\n"))
	} else {
		sb.WriteString(n.Body)
	}
	return sb.String()
}

func isNotModified(err error) bool {
	return strings.Contains(err.Error(), "message is not modified")
}
