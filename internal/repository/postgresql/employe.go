package postgresql

import (
	"context"
	"fmt"

	"github.com/gestipay/paie-backend-go/internal/domain/employe"
	"github.com/gestipay/paie-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeRepository struct {
	db *database.DB
}

func NewEmployeRepository(db *database.DB) employe.EmployeRepository {
	return &employeRepository{db: db}
}

const employeColumns = `id, entreprise_id, nom_complet, poste, salaire_base,
		   allocations, deductions, actif, created_at, updated_at`

func (r *employeRepository) GetByID(ctx context.Context, id string, entrepriseID string) (employe.Employe, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeColumns + ` FROM employes WHERE id = $1 AND entreprise_id = $2`

	var e employe.Employe
	err := q.QueryRow(ctx, query, id, entrepriseID).Scan(
		&e.ID, &e.EntrepriseID, &e.NomComplet, &e.Poste, &e.SalaireBase,
		&e.Allocations, &e.Deductions, &e.Actif, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employe.Employe{}, employe.ErrEmployeNotFound
		}
		return employe.Employe{}, fmt.Errorf("failed to get employe: %w", err)
	}

	return e, nil
}

func (r *employeRepository) ListActiveByEntreprise(ctx context.Context, entrepriseID string) ([]employe.Employe, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeColumns + `
		FROM employes
		WHERE entreprise_id = $1 AND actif = true
		ORDER BY nom_complet
	`

	rows, err := q.Query(ctx, query, entrepriseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employes: %w", err)
	}
	defer rows.Close()

	employes := make([]employe.Employe, 0)
	for rows.Next() {
		var e employe.Employe
		if err := rows.Scan(
			&e.ID, &e.EntrepriseID, &e.NomComplet, &e.Poste, &e.SalaireBase,
			&e.Allocations, &e.Deductions, &e.Actif, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employe: %w", err)
		}
		employes = append(employes, e)
	}

	return employes, rows.Err()
}
