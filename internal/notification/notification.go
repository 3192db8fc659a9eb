// Package notification delivers transactional messages to customers. The
// order workflow renders a payload, hands it to a Gateway, and treats any
// delivery failure as fatal for the operation in progress; no retries are
// built in here.
package notification

import "context"

// Message is a rendered notification ready for delivery.
type Message struct {
	To      []string
	Subject string
	Body    string
}

// Gateway sends a rendered message to its recipients. Implementations report
// success or failure once; callers decide what a failure means for them.
type Gateway interface {
	Send(ctx context.Context, msg Message) error
}
