// Package worker hosts the background notification scheduler.
package worker

import (
	"context"
	"log/slog"
	"time"

	"larder/config"
	"larder/internal/delivery"
	"larder/internal/usecase"
	"larder/internal/util"

	"go.uber.org/fx"
)

// defaultCycleInterval is how often the scheduler re-evaluates the send
// window when no interval is configured. One minute matches the "HH:MM"
// granularity of the schedule itself.
const defaultCycleInterval = time.Minute

type notifier struct {
	cfg      *config.Config
	logger   *slog.Logger
	uc       usecase.NotificationUsecase
	interval time.Duration
}

// NotifierParams holds dependencies for the notifier worker, injected by Fx.
type NotifierParams struct {
	fx.In

	Cfg    *config.Config
	Logger *slog.Logger
	Uc     usecase.NotificationUsecase
}

// NewNotifier builds the periodic delivery that drives scheduled email
// reports. It ticks at the configured interval and lets the usecase decide
// whether the current slot is eligible.
func NewNotifier(params NotifierParams) delivery.Delivery {
	interval := defaultCycleInterval
	if params.Cfg.Notifier != nil && params.Cfg.Notifier.Interval > 0 {
		interval = params.Cfg.Notifier.Interval
	}

	return &notifier{
		cfg:      params.Cfg,
		logger:   params.Logger,
		uc:       params.Uc,
		interval: interval,
	}
}

func (n *notifier) Serve(ctx context.Context) error {
	if n.cfg.Notifier == nil || !n.cfg.Notifier.Enabled {
		n.logger.Info("Notification scheduler disabled")
		<-ctx.Done()

		return nil
	}

	n.logger.Info("Starting notification scheduler",
		slog.String("interval", util.FormatDuration(n.interval)))

	ticker := time.NewTicker(n.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			n.logger.Info("Stopping notification scheduler")

			return nil
		case <-ticker.C:
			n.runCycle(ctx)
		}
	}
}

func (n *notifier) runCycle(ctx context.Context) {
	result, err := n.uc.RunScheduledCycle(ctx)
	if err != nil {
		n.logger.Error("Notification cycle failed", slog.Any("error", err))

		return
	}

	if result.Sent {
		n.logger.Info("Notification report sent",
			slog.Int("expired", result.Expired),
			slog.Int("expiring_soon", result.ExpiringSoon),
			slog.Int("low_quantity", result.LowQuantity))

		return
	}

	n.logger.Debug("Notification cycle skipped", slog.String("reason", result.Reason))
}
