package eventbus

import (
	"encoding/json"
	"log"
	"time"

	"github.com/nats-io/nats.go"

	"seopilot/internal/ports"
)

// Subjects for scan lifecycle events.
const (
	SubjectScanCompleted = "scans.completed"
	SubjectScanFailed    = "scans.failed"
)

// Publisher publishes scan events to NATS.
type Publisher struct {
	conn *nats.Conn
}

// NewPublisher connects to NATS with retry-friendly options.
func NewPublisher(natsURL string) (*Publisher, error) {
	conn, err := nats.Connect(natsURL,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(10),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, err
	}

	log.Printf("connected to NATS at %s", natsURL)

	return &Publisher{conn: conn}, nil
}

func (p *Publisher) PublishScanCompleted(ev ports.ScanEvent) error {
	return p.publish(SubjectScanCompleted, ev)
}

func (p *Publisher) PublishScanFailed(ev ports.ScanEvent) error {
	return p.publish(SubjectScanFailed, ev)
}

func (p *Publisher) publish(subject string, ev ports.ScanEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if err := p.conn.Publish(subject, data); err != nil {
		return err
	}
	log.Printf("published %s: scan=%s connection=%s", subject, ev.ScanID, ev.ConnectionID)
	return nil
}

// Close closes the NATS connection.
func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}

// IsConnected reports whether the NATS connection is up.
func (p *Publisher) IsConnected() bool {
	return p.conn != nil && p.conn.IsConnected()
}
