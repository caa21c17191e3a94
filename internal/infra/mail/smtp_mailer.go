// Package mail provides concrete implementations of the Mailer domain service.
package mail

import (
	"context"
	"log/slog"
	"time"

	"larder/config"
	"larder/internal/domain/service"

	"github.com/pkg/errors"
	gomail "github.com/wneessen/go-mail"
)

const defaultSendTimeout = 30 * time.Second

// smtpMailer implements Mailer over SMTP with implicit TLS, the setup
// typically used with provider app passwords.
type smtpMailer struct {
	client  *gomail.Client
	sender  string
	timeout time.Duration
	logger  *slog.Logger
}

// NewSMTPMailer creates a mailer from SMTP configuration.
func NewSMTPMailer(cfg *config.MailConfig, logger *slog.Logger) (service.Mailer, error) {
	if cfg.Host == "" || cfg.Sender == "" {
		return nil, errors.New("smtp host and sender must be provided")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}

	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSSL(),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Sender),
		gomail.WithPassword(cfg.Password),
		gomail.WithTimeout(timeout),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create smtp client")
	}

	return &smtpMailer{
		client:  client,
		sender:  cfg.Sender,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Send delivers a plain-text message to the recipient.
func (m *smtpMailer) Send(ctx context.Context, recipient, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.sender); err != nil {
		return errors.Wrap(err, "invalid sender address")
	}
	if err := msg.To(recipient); err != nil {
		return errors.Wrap(err, "invalid recipient address")
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	sendCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if err := m.client.DialAndSendWithContext(sendCtx, msg); err != nil {
		return errors.Wrap(err, "failed to send email over smtp")
	}

	m.logger.Info("Email sent",
		slog.String("recipient", recipient),
		slog.String("subject", subject),
	)

	return nil
}
