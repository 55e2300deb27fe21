package natsbridge

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/baepo-cloud/baepo-wsmaster/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/nats-io/nats.go"
	"github.com/nrednav/cuid2"
	"log/slog"
	"time"
)

// Bridge republishes machine status events received over NATS on the local
// event bus.
type Bridge struct {
	log          *slog.Logger
	url          string
	subject      string
	eventBus     types.MachineEventBus
	validate     *validator.Validate
	conn         *nats.Conn
	subscription *nats.Subscription
}

func New(config *types.Config, eventBus types.MachineEventBus) *Bridge {
	return &Bridge{
		log:      slog.With(slog.String("component", "natsbridge")),
		url:      config.NatsURL,
		subject:  config.NatsSubject,
		eventBus: eventBus,
		validate: validator.New(),
	}
}

func (b *Bridge) Start(ctx context.Context) error {
	if b.url == "" {
		b.log.Info("nats url not configured, bridge disabled")
		return nil
	}

	conn, err := nats.Connect(b.url,
		nats.Name("wsmaster"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			b.log.Warn("nats disconnected", slog.Any("error", err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			b.log.Info("nats reconnected", slog.String("url", nc.ConnectedUrl()))
		}))
	if err != nil {
		return fmt.Errorf("failed to connect to nats: %w", err)
	}

	subscription, err := conn.Subscribe(b.subject, func(msg *nats.Msg) {
		b.handlePayload(msg.Data)
	})
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to subscribe to %s: %w", b.subject, err)
	}

	b.conn = conn
	b.subscription = subscription
	b.log.Info("nats bridge started", slog.String("subject", b.subject))
	return nil
}

func (b *Bridge) Stop(ctx context.Context) error {
	if b.conn == nil {
		return nil
	}

	if err := b.conn.Drain(); err != nil {
		b.conn.Close()
		return fmt.Errorf("failed to drain nats connection: %w", err)
	}
	return nil
}

func (b *Bridge) handlePayload(payload []byte) {
	var event types.MachineStatusEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		b.log.Warn("dropping malformed machine event", slog.Any("error", err))
		return
	}
	if err := b.validate.Struct(&event); err != nil {
		b.log.Warn("dropping invalid machine event", slog.Any("error", err))
		return
	}

	if event.ID == "" {
		event.ID = cuid2.Generate()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	b.log.Debug("received machine event",
		slog.String("event-id", event.ID),
		slog.String("machine-id", event.MachineID),
		slog.String("event-type", string(event.EventType)))
	b.eventBus.PublishEvent(&event)
}
