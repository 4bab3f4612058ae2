package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/dreschagin/spacex-launch-dashboard/internal/application/dto"
	"github.com/dreschagin/spacex-launch-dashboard/pkg/logger"
)

// InteractionPublisher implements port.InteractionPublisher for NATS JetStream
type InteractionPublisher struct {
	nc      *nats.Conn
	js      nats.JetStreamContext
	subject string
	logger  *logger.Logger
}

// NewInteractionPublisher connects to NATS and prepares JetStream
func NewInteractionPublisher(natsURL, subject string, log *logger.Logger) (*InteractionPublisher, error) {
	// Connect to NATS with retry
	nc, err := nats.Connect(natsURL,
		nats.Name("spacex-launch-dashboard"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(10),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				log.Warn("NATS disconnected", "error", err.Error())
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to get JetStream context: %w", err)
	}

	log.Info("Connected to NATS", "url", natsURL, "subject", subject)

	return &InteractionPublisher{
		nc:      nc,
		js:      js,
		subject: subject,
		logger:  log,
	}, nil
}

// Subject returns the subject for a rule, e.g. dashboard.interactions.scatter
func Subject(base, rule string) string {
	if rule == "" {
		return base
	}
	return base + "." + rule
}

// PublishInteraction publishes a callback event (async, fire-and-forget)
func (p *InteractionPublisher) PublishInteraction(ctx context.Context, event *dto.InteractionEventDTO) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := Subject(p.subject, event.Rule)
	msg := nats.NewMsg(subject)
	msg.Data = data
	msg.Header.Set(nats.MsgIdHdr, event.ID)

	if _, err := p.js.PublishMsgAsync(msg); err != nil {
		p.logger.Error("Failed to publish interaction", err, "subject", subject)
		return fmt.Errorf("failed to publish interaction: %w", err)
	}

	p.logger.Debug("Interaction published",
		"subject", subject,
		"size", len(data),
	)

	return nil
}

// Close drains pending async publishes and closes the connection
func (p *InteractionPublisher) Close() error {
	if p.nc == nil {
		return nil
	}

	select {
	case <-p.js.PublishAsyncComplete():
	case <-time.After(5 * time.Second):
		p.logger.Warn("Timed out waiting for pending NATS publishes")
	}

	p.logger.Info("Closing NATS connection")
	p.nc.Close()
	return nil
}
