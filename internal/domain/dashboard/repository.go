package dashboard

import "context"

type DashboardRepository interface {
	GetKPIs(ctx context.Context, entrepriseID string) (KPIResponse, error)
	// ListUnpaidAlerts scans all enterprises for unpaid bulletins on
	// validated cycles.
	ListUnpaidAlerts(ctx context.Context) ([]UnpaidAlert, error)
}
