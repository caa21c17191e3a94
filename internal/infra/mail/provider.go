package mail

import (
	"log/slog"

	"larder/config"
	"larder/internal/domain/constants"
	"larder/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// MailerParams holds dependencies for the Mailer, injected by Fx
type MailerParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewMailer creates a Mailer based on configuration
func NewMailer(params MailerParams) (service.Mailer, error) {
	cfg := params.Config.Mail
	logger := params.Logger

	// If mail is not configured, fall back to the logging mailer
	if cfg == nil || cfg.Provider == "" || cfg.Provider == constants.MailProviderNoop {
		logger.Info("Mail not configured, using no-op mailer")

		return NewNoopMailer(logger), nil
	}

	switch cfg.Provider {
	case constants.MailProviderSMTP:
		logger.Info("Using SMTP mailer",
			slog.String("host", cfg.Host),
			slog.Int("port", cfg.Port),
		)

		return NewSMTPMailer(cfg, logger)

	default:
		return nil, errors.Errorf("unknown mail provider: %s", cfg.Provider)
	}
}

// Module provides the mail FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewMailer),
)
