package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/gestipay/paie-backend-go/internal/domain/dashboard"
	"github.com/gestipay/paie-backend-go/internal/pkg/database"
)

type dashboardRepository struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) GetKPIs(ctx context.Context, entrepriseID string) (dashboard.KPIResponse, error) {
	q := GetQuerier(ctx, r.db)

	kpi := dashboard.KPIResponse{EntrepriseID: entrepriseID}

	cycleQuery := `
		SELECT
			COUNT(*) FILTER (WHERE statut_validation = 'DRAFT'),
			COUNT(*) FILTER (WHERE statut_validation = 'VALIDATED'),
			COUNT(*) FILTER (WHERE statut_validation = 'CLOSED'),
			MAX(updated_at) FILTER (WHERE statut_validation = 'CLOSED')
		FROM pay_cycles
		WHERE entreprise_id = $1
	`
	var dernierCloture *time.Time
	err := q.QueryRow(ctx, cycleQuery, entrepriseID).Scan(
		&kpi.CyclesDraft, &kpi.CyclesValides, &kpi.CyclesClotures, &dernierCloture,
	)
	if err != nil {
		return dashboard.KPIResponse{}, fmt.Errorf("failed to get cycle counts: %w", err)
	}
	if dernierCloture != nil {
		formatted := dernierCloture.Format(time.RFC3339)
		kpi.DernierCycleCloture = &formatted
	}

	bulletinQuery := `
		SELECT
			COUNT(*) FILTER (WHERE statut_paiement <> 'PAID'),
			COALESCE(SUM(total_a_payer), 0)
		FROM bulletins
		WHERE entreprise_id = $1
	`
	err = q.QueryRow(ctx, bulletinQuery, entrepriseID).Scan(&kpi.BulletinsImpayes, &kpi.MasseSalariale)
	if err != nil {
		return dashboard.KPIResponse{}, fmt.Errorf("failed to get bulletin totals: %w", err)
	}

	paiementQuery := `
		SELECT COALESCE(SUM(montant), 0)
		FROM paiements
		WHERE entreprise_id = $1 AND statut = 'COMPLETE'
	`
	err = q.QueryRow(ctx, paiementQuery, entrepriseID).Scan(&kpi.MontantRegle)
	if err != nil {
		return dashboard.KPIResponse{}, fmt.Errorf("failed to get paiement total: %w", err)
	}

	employeQuery := `SELECT COUNT(*) FROM employes WHERE entreprise_id = $1 AND actif = true`
	err = q.QueryRow(ctx, employeQuery, entrepriseID).Scan(&kpi.EmployesActifs)
	if err != nil {
		return dashboard.KPIResponse{}, fmt.Errorf("failed to get employe count: %w", err)
	}

	return kpi, nil
}

func (r *dashboardRepository) ListUnpaidAlerts(ctx context.Context) ([]dashboard.UnpaidAlert, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.nom, COUNT(b.id)
		FROM entreprises e
		JOIN pay_cycles c ON c.entreprise_id = e.id AND c.statut_validation = 'VALIDATED'
		JOIN bulletins b ON b.cycle_id = c.id AND b.statut_paiement <> 'PAID'
		GROUP BY e.id, e.nom
		ORDER BY e.nom
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list unpaid alerts: %w", err)
	}
	defer rows.Close()

	alerts := make([]dashboard.UnpaidAlert, 0)
	for rows.Next() {
		var a dashboard.UnpaidAlert
		if err := rows.Scan(&a.EntrepriseID, &a.EntrepriseNom, &a.BulletinsImpayes); err != nil {
			return nil, fmt.Errorf("failed to scan unpaid alert: %w", err)
		}
		alerts = append(alerts, a)
	}

	return alerts, rows.Err()
}
