package postgresql

import (
	"context"
	"fmt"

	"github.com/gestipay/paie-backend-go/internal/domain/paiement"
	"github.com/gestipay/paie-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type paiementRepository struct {
	db *database.DB
}

func NewPaiementRepository(db *database.DB) paiement.PaiementRepository {
	return &paiementRepository{db: db}
}

const paiementColumns = `id, bulletin_id, entreprise_id, montant, date_paiement,
		   mode, statut, reference, caissier_id, created_at, updated_at`

func (r *paiementRepository) Create(ctx context.Context, p paiement.Paiement) (paiement.Paiement, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO paiements (bulletin_id, entreprise_id, montant, date_paiement,
			mode, statut, reference, caissier_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + paiementColumns

	var out paiement.Paiement
	err := q.QueryRow(ctx, query,
		p.BulletinID, p.EntrepriseID, p.Montant, p.DatePaiement,
		p.Mode, p.Statut, p.Reference, p.CaissierID,
	).Scan(
		&out.ID, &out.BulletinID, &out.EntrepriseID, &out.Montant, &out.DatePaiement,
		&out.Mode, &out.Statut, &out.Reference, &out.CaissierID, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return paiement.Paiement{}, fmt.Errorf("failed to create paiement: %w", err)
	}

	return out, nil
}

func (r *paiementRepository) GetByID(ctx context.Context, id string) (paiement.Paiement, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + paiementColumns + ` FROM paiements WHERE id = $1`

	var p paiement.Paiement
	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.BulletinID, &p.EntrepriseID, &p.Montant, &p.DatePaiement,
		&p.Mode, &p.Statut, &p.Reference, &p.CaissierID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return paiement.Paiement{}, paiement.ErrPaiementNotFound
		}
		return paiement.Paiement{}, fmt.Errorf("failed to get paiement: %w", err)
	}

	return p, nil
}

func (r *paiementRepository) ListByBulletin(ctx context.Context, bulletinID string) ([]paiement.Paiement, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + paiementColumns + ` FROM paiements WHERE bulletin_id = $1 ORDER BY date_paiement DESC`

	rows, err := q.Query(ctx, query, bulletinID)
	if err != nil {
		return nil, fmt.Errorf("failed to list paiements: %w", err)
	}
	defer rows.Close()

	paiements := make([]paiement.Paiement, 0)
	for rows.Next() {
		var p paiement.Paiement
		if err := rows.Scan(
			&p.ID, &p.BulletinID, &p.EntrepriseID, &p.Montant, &p.DatePaiement,
			&p.Mode, &p.Statut, &p.Reference, &p.CaissierID, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan paiement: %w", err)
		}
		paiements = append(paiements, p)
	}

	return paiements, rows.Err()
}

func (r *paiementRepository) SumCompletedByBulletin(ctx context.Context, bulletinID string) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(montant), 0)
		FROM paiements
		WHERE bulletin_id = $1 AND statut = 'COMPLETE'
	`

	var sum decimal.Decimal
	if err := q.QueryRow(ctx, query, bulletinID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum paiements: %w", err)
	}

	return sum, nil
}

func (r *paiementRepository) Update(ctx context.Context, p paiement.Paiement) (paiement.Paiement, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE paiements
		SET montant = $2, date_paiement = $3, mode = $4, reference = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + paiementColumns

	var out paiement.Paiement
	err := q.QueryRow(ctx, query,
		p.ID, p.Montant, p.DatePaiement, p.Mode, p.Reference,
	).Scan(
		&out.ID, &out.BulletinID, &out.EntrepriseID, &out.Montant, &out.DatePaiement,
		&out.Mode, &out.Statut, &out.Reference, &out.CaissierID, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return paiement.Paiement{}, paiement.ErrPaiementNotFound
		}
		return paiement.Paiement{}, fmt.Errorf("failed to update paiement: %w", err)
	}

	return out, nil
}

func (r *paiementRepository) SetStatut(ctx context.Context, id string, statut paiement.Statut) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE paiements SET statut = $2, updated_at = NOW() WHERE id = $1`, id, statut)
	if err != nil {
		return fmt.Errorf("failed to update paiement status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return paiement.ErrPaiementNotFound
	}

	return nil
}

func (r *paiementRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM paiements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete paiement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return paiement.ErrPaiementNotFound
	}

	return nil
}
