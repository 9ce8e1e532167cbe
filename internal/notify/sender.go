// Package notify delivers transactional email to organization contacts.
package notify

import "context"

// Message is one outgoing notification.
type Message struct {
	To      []string
	Subject string
	HTML    string
}

// Sender delivers messages through an external provider. Delivery failures
// are the caller's to log; they must never abort the triggering operation.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
