package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/gestipay/paie-backend-go/internal/domain/bulletin"
	"github.com/gestipay/paie-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type bulletinRepository struct {
	db *database.DB
}

func NewBulletinRepository(db *database.DB) bulletin.BulletinRepository {
	return &bulletinRepository{db: db}
}

const bulletinColumns = `b.id, b.cycle_id, b.entreprise_id, b.employe_id, b.numero,
		   b.periode_debut, b.periode_fin, b.salaire_base, b.allocations, b.deductions,
		   b.total_a_payer, b.statut_paiement, b.generated_at, b.updated_at, e.nom_complet`

func (r *bulletinRepository) Create(ctx context.Context, b bulletin.Bulletin) (bulletin.Bulletin, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO bulletins (cycle_id, entreprise_id, employe_id, numero,
			periode_debut, periode_fin, salaire_base, allocations, deductions,
			total_a_payer, statut_paiement)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, cycle_id, entreprise_id, employe_id, numero,
			periode_debut, periode_fin, salaire_base, allocations, deductions,
			total_a_payer, statut_paiement, generated_at, updated_at
	`

	var out bulletin.Bulletin
	err := q.QueryRow(ctx, query,
		b.CycleID, b.EntrepriseID, b.EmployeID, b.Numero,
		b.PeriodeDebut, b.PeriodeFin, b.SalaireBase, b.Allocations, b.Deductions,
		b.TotalAPayer, b.StatutPaiement,
	).Scan(
		&out.ID, &out.CycleID, &out.EntrepriseID, &out.EmployeID, &out.Numero,
		&out.PeriodeDebut, &out.PeriodeFin, &out.SalaireBase, &out.Allocations, &out.Deductions,
		&out.TotalAPayer, &out.StatutPaiement, &out.GeneratedAt, &out.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_bulletins_cycle_employe") {
			return bulletin.Bulletin{}, bulletin.ErrBulletinExists
		}
		return bulletin.Bulletin{}, fmt.Errorf("failed to create bulletin: %w", err)
	}

	return out, nil
}

func (r *bulletinRepository) GetByID(ctx context.Context, id string) (bulletin.Bulletin, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + bulletinColumns + `
		FROM bulletins b
		JOIN employes e ON e.id = b.employe_id
		WHERE b.id = $1
	`

	var b bulletin.Bulletin
	err := q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.CycleID, &b.EntrepriseID, &b.EmployeID, &b.Numero,
		&b.PeriodeDebut, &b.PeriodeFin, &b.SalaireBase, &b.Allocations, &b.Deductions,
		&b.TotalAPayer, &b.StatutPaiement, &b.GeneratedAt, &b.UpdatedAt, &b.EmployeNom,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return bulletin.Bulletin{}, bulletin.ErrBulletinNotFound
		}
		return bulletin.Bulletin{}, fmt.Errorf("failed to get bulletin: %w", err)
	}

	return b, nil
}

func (r *bulletinRepository) ListByCycle(ctx context.Context, cycleID string) ([]bulletin.Bulletin, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + bulletinColumns + `
		FROM bulletins b
		JOIN employes e ON e.id = b.employe_id
		WHERE b.cycle_id = $1
		ORDER BY e.nom_complet
	`

	rows, err := q.Query(ctx, query, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bulletins: %w", err)
	}
	defer rows.Close()

	bulletins := make([]bulletin.Bulletin, 0)
	for rows.Next() {
		var b bulletin.Bulletin
		if err := rows.Scan(
			&b.ID, &b.CycleID, &b.EntrepriseID, &b.EmployeID, &b.Numero,
			&b.PeriodeDebut, &b.PeriodeFin, &b.SalaireBase, &b.Allocations, &b.Deductions,
			&b.TotalAPayer, &b.StatutPaiement, &b.GeneratedAt, &b.UpdatedAt, &b.EmployeNom,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bulletin: %w", err)
		}
		bulletins = append(bulletins, b)
	}

	return bulletins, rows.Err()
}

func (r *bulletinRepository) GetByEmployeAndCycle(ctx context.Context, employeID, cycleID string) (bulletin.Bulletin, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + bulletinColumns + `
		FROM bulletins b
		JOIN employes e ON e.id = b.employe_id
		WHERE b.employe_id = $1 AND b.cycle_id = $2
	`

	var b bulletin.Bulletin
	err := q.QueryRow(ctx, query, employeID, cycleID).Scan(
		&b.ID, &b.CycleID, &b.EntrepriseID, &b.EmployeID, &b.Numero,
		&b.PeriodeDebut, &b.PeriodeFin, &b.SalaireBase, &b.Allocations, &b.Deductions,
		&b.TotalAPayer, &b.StatutPaiement, &b.GeneratedAt, &b.UpdatedAt, &b.EmployeNom,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return bulletin.Bulletin{}, bulletin.ErrBulletinNotFound
		}
		return bulletin.Bulletin{}, fmt.Errorf("failed to get bulletin: %w", err)
	}

	return b, nil
}

func (r *bulletinRepository) SetStatutPaiement(ctx context.Context, id string, statut bulletin.StatutPaiement) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE bulletins SET statut_paiement = $2, updated_at = NOW() WHERE id = $1`, id, statut)
	if err != nil {
		return fmt.Errorf("failed to update bulletin status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return bulletin.ErrBulletinNotFound
	}

	return nil
}

func (r *bulletinRepository) Update(ctx context.Context, b bulletin.Bulletin) (bulletin.Bulletin, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE bulletins
		SET salaire_base = $2, allocations = $3, deductions = $4,
			total_a_payer = $5, statut_paiement = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING id, cycle_id, entreprise_id, employe_id, numero,
			periode_debut, periode_fin, salaire_base, allocations, deductions,
			total_a_payer, statut_paiement, generated_at, updated_at
	`

	var out bulletin.Bulletin
	err := q.QueryRow(ctx, query,
		b.ID, b.SalaireBase, b.Allocations, b.Deductions,
		b.TotalAPayer, b.StatutPaiement,
	).Scan(
		&out.ID, &out.CycleID, &out.EntrepriseID, &out.EmployeID, &out.Numero,
		&out.PeriodeDebut, &out.PeriodeFin, &out.SalaireBase, &out.Allocations, &out.Deductions,
		&out.TotalAPayer, &out.StatutPaiement, &out.GeneratedAt, &out.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return bulletin.Bulletin{}, bulletin.ErrBulletinNotFound
		}
		return bulletin.Bulletin{}, fmt.Errorf("failed to update bulletin: %w", err)
	}

	return out, nil
}

func (r *bulletinRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM bulletins WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete bulletin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return bulletin.ErrBulletinNotFound
	}

	return nil
}

func (r *bulletinRepository) CountByCycle(ctx context.Context, cycleID string) (total int, unpaid int, err error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*),
			   COUNT(*) FILTER (WHERE statut_paiement <> 'PAID')
		FROM bulletins
		WHERE cycle_id = $1
	`

	if err := q.QueryRow(ctx, query, cycleID).Scan(&total, &unpaid); err != nil {
		return 0, 0, fmt.Errorf("failed to count bulletins: %w", err)
	}

	return total, unpaid, nil
}
