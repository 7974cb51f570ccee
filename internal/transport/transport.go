// Package transport abstracts the outbound email mechanism behind one send
// call per message. Implementations cover the Gmail REST API and AWS SES.
package transport

import "context"

// Message is one transmission attempt.
type Message struct {
	To         string
	Subject    string
	Body       string
	Sender     string
	Credential string
}

// Result carries the transport-assigned message id of a successful send.
type Result struct {
	TransportID string
}

// Transport sends one email. A returned error marks the attempt failed; the
// campaign engine records it and moves on.
type Transport interface {
	Send(ctx context.Context, msg Message) (*Result, error)
	Provider() string
}
