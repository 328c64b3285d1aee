package dashboard

import (
	"context"

	"github.com/gestipay/paie-backend-go/internal/domain/user"
)

type DashboardService interface {
	// GetKPIs returns the snapshot for the principal's enterprise. SUPER_ADMIN
	// must name an enterprise explicitly; other roles are forced to their own.
	GetKPIs(ctx context.Context, principal user.Principal, entrepriseID string) (KPIResponse, error)
}
