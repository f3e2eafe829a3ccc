package notify

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/nats-io/nats.go"
)

// NATSNotifier publishes notifications as JSON on a NATS subject.
type NATSNotifier struct {
	conn    *nats.Conn
	subject string
	logger  *slog.Logger
}

func NewNATSNotifier(url string, subject string, logger *slog.Logger) (*NATSNotifier, error) {
	nc, err := nats.Connect(url, nats.Name("academixstore-admin"))
	if err != nil {
		return nil, err
	}

	logger.Info("NATS notifier initialized", "url", url, "subject", subject)

	return &NATSNotifier{
		conn:    nc,
		subject: subject,
		logger:  logger,
	}, nil
}

func (p *NATSNotifier) Notify(ctx context.Context, n Notification) {
	payload, err := json.Marshal(n)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to marshal notification", "error", err)
		return
	}

	if err := p.conn.Publish(p.subject, payload); err != nil {
		p.logger.ErrorContext(ctx, "failed to publish notification to NATS", "error", err)
		return
	}

	p.logger.DebugContext(ctx, "notification published to NATS", "subject", p.subject, "id", n.ID)
}

func (p *NATSNotifier) Close() error {
	p.conn.Close()
	return nil
}
