package mail

import (
	"context"
	"log/slog"

	"larder/internal/domain/service"
)

// noopMailer logs instead of sending, for development and tests.
type noopMailer struct {
	logger *slog.Logger
}

// NewNoopMailer returns a mailer that only logs outgoing messages.
func NewNoopMailer(logger *slog.Logger) service.Mailer {
	return &noopMailer{logger: logger}
}

func (m *noopMailer) Send(_ context.Context, recipient, subject, body string) error {
	m.logger.Info("[NoopMailer] Email delivery disabled, logging instead",
		slog.String("recipient", recipient),
		slog.String("subject", subject),
		slog.Int("body_bytes", len(body)),
	)

	return nil
}
