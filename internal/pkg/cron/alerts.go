package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/gestipay/paie-backend-go/internal/domain/dashboard"
	"github.com/gestipay/paie-backend-go/internal/pkg/sse"
)

// RegisterUnpaidAlertsJob schedules the periodic scan for validated cycles
// that still carry unpaid bulletins. Each hit is pushed to the enterprise's
// dashboard stream.
func RegisterUnpaidAlertsJob(scheduler *Scheduler, repo dashboard.DashboardRepository, hub *sse.Hub, interval time.Duration) {
	scheduler.AddJob("unpaid-bulletin-alerts", interval, func(ctx context.Context) error {
		alerts, err := repo.ListUnpaidAlerts(ctx)
		if err != nil {
			return err
		}

		for _, alert := range alerts {
			hub.Publish(sse.Event{
				EntrepriseID: alert.EntrepriseID,
				Event:        sse.EventAlert,
				Data:         alert,
			})
		}

		if len(alerts) > 0 {
			slog.Info("Unpaid bulletin alerts published", "count", len(alerts))
		}
		return nil
	})
}
