package bot

import (
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/omarshaarawi/matchclock/internal/notify"
	"github.com/omarshaarawi/matchclock/internal/service"
)

type Handler struct {
	matchService *service.MatchService
	manager      *notify.Manager
	send         func(string) error
}

func NewHandler(matchService *service.MatchService, send func(string) error) *Handler {
	return &Handler{matchService: matchService, send: send}
}

func (h *Handler) HandleCommand(update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := update.Message.CommandArguments()
	msg.ParseMode = "Markdown"

	switch command {
	case "start":
		msg.Text = "Welcome to MatchClock! Use /help to see available commands."
	case "help":
		msg.Text = "Available commands:\n/live - Live scores\n/upcoming - Matches kicking off in the next 24 hours\n/match <team> - Match details\n/follow <team> - Get minute updates for a match\n/unfollow - Stop all minute updates\n/tracked - Live notifications in progress"
	case "live":
		msg.Text = h.matchService.GetLiveScores()
	case "upcoming":
		msg.Text = h.matchService.GetUpcoming()
	case "match":
		h.handleMatch(&msg, args)
	case "follow":
		h.handleFollow(&msg, args)
	case "unfollow":
		msg.Text = fmt.Sprintf("Stopped following %d match(es).", h.matchService.Unfollow())
	case "tracked":
		h.handleTracked(&msg)
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

func (h *Handler) handleMatch(msg *tgbotapi.MessageConfig, args string) {
	if args == "" {
		msg.Text = "Please provide a team name. Usage: /match <team name>"
		return
	}
	result, err := h.matchService.GetMatchDetail(args)
	if err != nil {
		msg.Text = fmt.Sprintf("Error finding match: %v", err)
	} else {
		msg.Text = result
	}
}

func (h *Handler) handleFollow(msg *tgbotapi.MessageConfig, args string) {
	if args == "" {
		msg.Text = "Please provide a team name. Usage: /follow <team name>"
		return
	}
	result, err := h.matchService.Follow(args, func(text string) {
		if err := h.send(text); err != nil {
			slog.Error("Failed to send follow update", "query", args, "error", err)
		}
	})
	if err != nil {
		msg.Text = fmt.Sprintf("Error following match: %v", err)
	} else {
		msg.Text = result
	}
}

func (h *Handler) handleTracked(msg *tgbotapi.MessageConfig) {
	if h.manager == nil {
		msg.Text = "Live notifications are not enabled."
		return
	}
	active := h.manager.Active()
	if len(active) == 0 {
		msg.Text = "No live notifications in progress."
		return
	}

	var sb strings.Builder
	sb.WriteString("📣 *Live Notifications*\n\n")
	for _, a := range active {
		minute := "-"
		if a.Minute != nil {
			minute = fmt.Sprintf("%d'", *a.Minute)
		}
		sb.WriteString(fmt.Sprintf("*%s* vs *%s* `%s`\n", a.Data.HomeTeamName, a.Data.AwayTeamName, minute))
	}
	msg.Text = sb.String()
}
