package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	TelegramBot TelegramBot
	MatchAPI    MatchAPI
	NATS        NATS
	Notify      Notify
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":80"`
	Timezone    string `envconfig:"TIMEZONE" default:"UTC"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
}

// TelegramBot is optional; without a token notifications go to the log.
type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN"`
	ChatID int64  `envconfig:"CHAT_ID"`
}

type MatchAPI struct {
	BaseURL      string        `envconfig:"MATCH_API_URL" required:"true"`
	Token        string        `envconfig:"MATCH_API_TOKEN"`
	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"1m"`
	Timeout      time.Duration `envconfig:"MATCH_API_TIMEOUT" default:"10s"`
}

type NATS struct {
	URL     string `envconfig:"NATS_URL" default:"nats://127.0.0.1:4222"`
	Subject string `envconfig:"NATS_SUBJECT" default:"matches.live.>"`
}

type Notify struct {
	// Style selects the notification layout: "rich" or "flat".
	Style        string `envconfig:"NOTIFY_STYLE" default:"rich"`
	MediaBaseURL string `envconfig:"MEDIA_BASE_URL"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
