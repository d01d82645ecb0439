package events

import "context"

// NoopPublisher drops all events. Used when events are disabled and in tests.
type NoopPublisher struct{}

// NewNoopPublisher creates a publisher that discards everything.
func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (p *NoopPublisher) PublishCartUpdated(ctx context.Context, event CartUpdated) error {
	return nil
}

func (p *NoopPublisher) PublishOrderCompleted(ctx context.Context, event OrderCompleted) error {
	return nil
}

func (p *NoopPublisher) Close() {}
