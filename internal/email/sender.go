package email

import "context"

// Message is a rendered email ready for delivery.
type Message struct {
	From     Address
	To       Address
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers a rendered message. Implementations live in this package
// (log, memory) and in the smtp and ses subpackages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
