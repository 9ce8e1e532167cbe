package notify

import (
	"context"
	"log"
)

// NoopSender logs sends without delivering anything. Used in development and
// when no provider API key is configured.
type NoopSender struct{}

// NewNoopSender creates a new NoopSender.
func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

// Send logs the message and drops it.
func (s *NoopSender) Send(_ context.Context, msg Message) error {
	log.Printf("[NOTIFY] noop send to %v: %s", msg.To, msg.Subject)
	return nil
}
