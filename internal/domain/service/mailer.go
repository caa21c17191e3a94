package service

import "context"

// Mailer defines the interface for sending notification emails.
// This abstracts the transport (SMTP, a no-op sink in development) from the use cases.
type Mailer interface {
	// Send delivers a plain-text email to the recipient.
	Send(ctx context.Context, recipient, subject, body string) error
}
