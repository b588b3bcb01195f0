package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/omarshaarawi/matchclock/internal/config"
)

const (
	maxReconnects = -1
	reconnectWait = 2 * time.Second
)

// Handler receives decoded live match payloads.
type Handler interface {
	HandleLiveMatchData(ctx context.Context, raw map[string]string)
}

// Subscriber feeds live match payloads published on NATS to a Handler.
type Subscriber struct {
	nc      *nats.Conn
	sub     *nats.Subscription
	subject string
	handler Handler
	closed  atomic.Bool
}

func NewSubscriber(cfg config.NATS, handler Handler) (*Subscriber, error) {
	opts := []nats.Option{
		nats.Name("matchclock"),
		nats.MaxReconnects(maxReconnects),
		nats.ReconnectWait(reconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			slog.Error("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			slog.Error("NATS error", "error", err)
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	return &Subscriber{
		nc:      nc,
		subject: cfg.Subject,
		handler: handler,
	}, nil
}

// Start subscribes to the configured subject. Payloads are handled on the
// subscription's goroutine, one at a time.
func (s *Subscriber) Start(ctx context.Context) error {
	sub, err := s.nc.Subscribe(s.subject, func(msg *nats.Msg) {
		s.handle(ctx, msg.Data)
	})
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", s.subject, err)
	}
	s.sub = sub
	slog.Info("Listening for live match payloads", "subject", s.subject)
	return nil
}

func (s *Subscriber) handle(ctx context.Context, data []byte) {
	if s.closed.Load() {
		return
	}
	raw, err := Decode(data)
	if err != nil {
		slog.Warn("Dropping undecodable payload", "subject", s.subject, "error", err)
		return
	}
	s.handler.HandleLiveMatchData(ctx, raw)
}

// Close stops delivery. Payloads still in flight are dropped, so nothing
// reaches the handler once Close returns.
func (s *Subscriber) Close() {
	if s.closed.Swap(true) {
		return
	}
	if s.sub != nil {
		if err := s.sub.Unsubscribe(); err != nil {
			slog.Error("Failed to unsubscribe", "subject", s.subject, "error", err)
		}
	}
	if s.nc == nil {
		return
	}
	if err := s.nc.Drain(); err != nil {
		s.nc.Close()
	}
}

// Decode reads a JSON object into the flat string map push data arrives as.
// Numbers and booleans are stringified. Nulls, objects and arrays are dropped.
func Decode(data []byte) (map[string]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("error decoding payload: %w", err)
	}
	if obj == nil {
		return nil, fmt.Errorf("payload is not an object")
	}

	raw := make(map[string]string, len(obj))
	for k, v := range obj {
		switch v := v.(type) {
		case string:
			raw[k] = v
		case json.Number:
			raw[k] = v.String()
		case bool:
			raw[k] = strconv.FormatBool(v)
		}
	}
	return raw, nil
}
