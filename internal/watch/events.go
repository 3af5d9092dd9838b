package watch

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/blogbuilder/internal/builder"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

// Publisher pushes build reports to interested subscribers.
type Publisher interface {
	PublishReport(report *builder.Report) error
	Close()
}

// NoopPublisher drops reports. Used when no event bus is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishReport(*builder.Report) error { return nil }
func (NoopPublisher) Close()                              {}

// NATSPublisher publishes build reports as JSON on a fixed subject.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
}

func NewNATSPublisher(url, subject string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	slog.Info("NATS publisher initialized", slog.String("url", url), slog.String("subject", subject))
	return &NATSPublisher{conn: conn, subject: subject}, nil
}

func (p *NATSPublisher) PublishReport(report *builder.Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal build report: %w", err)
	}
	if err := p.conn.Publish(p.subject, payload); err != nil {
		return fmt.Errorf("publish build report: %w", err)
	}
	slog.Debug("Published build report", logfields.BuildID(report.BuildID), slog.String("subject", p.subject))
	return nil
}

func (p *NATSPublisher) Close() {
	p.conn.Close()
}
