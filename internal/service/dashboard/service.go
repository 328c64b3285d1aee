package dashboard

import (
	"context"

	"github.com/gestipay/paie-backend-go/internal/domain/dashboard"
	"github.com/gestipay/paie-backend-go/internal/domain/user"
)

type DashboardServiceImpl struct {
	dashboardRepo dashboard.DashboardRepository
}

func NewDashboardService(dashboardRepo dashboard.DashboardRepository) dashboard.DashboardService {
	return &DashboardServiceImpl{dashboardRepo: dashboardRepo}
}

func (s *DashboardServiceImpl) GetKPIs(ctx context.Context, principal user.Principal, entrepriseID string) (dashboard.KPIResponse, error) {
	switch principal.Role {
	case user.RoleSuperAdmin:
		if entrepriseID == "" {
			return dashboard.KPIResponse{}, user.ErrForbidden
		}
	case user.RoleAdminEntreprise, user.RoleCaissier:
		// Non-platform roles only ever see their own enterprise, whatever
		// the request says.
		if principal.EntrepriseID == nil {
			return dashboard.KPIResponse{}, user.ErrForbidden
		}
		entrepriseID = *principal.EntrepriseID
	default:
		return dashboard.KPIResponse{}, user.ErrForbidden
	}

	return s.dashboardRepo.GetKPIs(ctx, entrepriseID)
}
