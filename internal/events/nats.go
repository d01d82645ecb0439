package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// NATSPublisher publishes engine events to a NATS server.
type NATSPublisher struct {
	conn *nats.Conn
}

// NewNATSPublisher connects to NATS and returns a publisher.
func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("skadi-engine"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSPublisher{conn: conn}, nil
}

// PublishCartUpdated publishes to the cart.updated subject.
func (p *NATSPublisher) PublishCartUpdated(ctx context.Context, event CartUpdated) error {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	return p.publish(SubjectCartUpdated, event)
}

// PublishOrderCompleted publishes to the order.completed subject.
func (p *NATSPublisher) PublishOrderCompleted(ctx context.Context, event OrderCompleted) error {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	return p.publish(SubjectOrderCompleted, event)
}

// Close drains and closes the NATS connection.
func (p *NATSPublisher) Close() {
	if p.conn != nil {
		_ = p.conn.Drain()
	}
}

func (p *NATSPublisher) publish(subject string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", subject, err)
	}

	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", subject, err)
	}

	return nil
}
