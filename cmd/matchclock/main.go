package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/omarshaarawi/matchclock/internal/api/matches"
	"github.com/omarshaarawi/matchclock/internal/bot"
	"github.com/omarshaarawi/matchclock/internal/config"
	"github.com/omarshaarawi/matchclock/internal/notify"
	"github.com/omarshaarawi/matchclock/internal/push"
	"github.com/omarshaarawi/matchclock/internal/repository/memory"
	"github.com/omarshaarawi/matchclock/internal/scheduler"
	"github.com/omarshaarawi/matchclock/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Error("Error loading .env file", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}
	setLogLevel(cfg.LogLevel)

	sched, err := scheduler.NewScheduler(clockwork.NewRealClock(), cfg.Timezone)
	if err != nil {
		return err
	}

	matchAPI := matches.NewAPI(matches.NewClient(cfg.MatchAPI))
	repo := memory.NewRepository()
	matchService := service.NewMatchService(matchAPI, repo, sched, cfg.MatchAPI.Timeout)

	var telegramBot *bot.TelegramBot
	var platform notify.Platform = notify.NewLogPlatform(slog.Default())
	if cfg.TelegramBot.Token != "" {
		telegramBot, err = bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, matchService)
		if err != nil {
			return err
		}
		platform = telegramBot
	} else {
		slog.Warn("TELEGRAM_TOKEN not set, notifications go to the log")
	}

	var sink notify.Sink
	switch cfg.Notify.Style {
	case "flat":
		sink = notify.NewFlatSink(platform)
	default:
		sink = notify.NewRichSink(platform)
	}
	manager := notify.NewManager(sink, sched, cfg.Notify.MediaBaseURL)
	if telegramBot != nil {
		telegramBot.SetManager(manager)
	}

	if _, err := sched.Every("match-feed", cfg.MatchAPI.PollInterval, matchService.Poll); err != nil {
		return err
	}
	sched.Start()
	defer func() {
		err := sched.Stop()
		if err != nil {
			slog.Error("Error stopping scheduler", "error", err)
		}
	}()
	defer matchService.Close()
	go matchService.Poll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	subscriber, err := push.NewSubscriber(cfg.NATS, manager)
	if err != nil {
		slog.Error("Live push disabled", "error", err)
	} else if err := subscriber.Start(ctx); err != nil {
		subscriber.Close()
		return err
	}

	http.HandleFunc("/", healthCheckHandler)

	go func() {
		if err := http.ListenAndServe(cfg.HTTPAddr, nil); err != nil {
			slog.Error("Error starting HTTP server", "error", err)
		}
	}()

	if telegramBot != nil {
		go func() {
			if err := telegramBot.Start(ctx); err != nil {
				slog.Error("Error running telegram bot", "error", err)
			}
		}()
	}

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")
	if subscriber != nil {
		subscriber.Close()
	}
	manager.Shutdown(context.Background())

	return nil
}

func setLogLevel(level string) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		slog.Warn("Unknown log level, using info", "level", level)
		return
	}
	slog.SetLogLoggerLevel(l)
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
