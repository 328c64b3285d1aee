package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/gestipay/paie-backend-go/internal/domain/entreprise"
	"github.com/gestipay/paie-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type entrepriseRepository struct {
	db *database.DB
}

func NewEntrepriseRepository(db *database.DB) entreprise.EntrepriseRepository {
	return &entrepriseRepository{db: db}
}

func (r *entrepriseRepository) Create(ctx context.Context, e entreprise.Entreprise) (entreprise.Entreprise, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO entreprises (nom, adresse, devise)
		VALUES ($1, $2, $3)
		RETURNING id, nom, adresse, devise, created_at, updated_at
	`

	var out entreprise.Entreprise
	err := q.QueryRow(ctx, query, e.Nom, e.Adresse, e.Devise).Scan(
		&out.ID, &out.Nom, &out.Adresse, &out.Devise, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_entreprises_nom") {
			return entreprise.Entreprise{}, entreprise.ErrNomExists
		}
		return entreprise.Entreprise{}, fmt.Errorf("failed to create entreprise: %w", err)
	}

	return out, nil
}

func (r *entrepriseRepository) GetByID(ctx context.Context, id string) (entreprise.Entreprise, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, nom, adresse, devise, created_at, updated_at FROM entreprises WHERE id = $1`

	var e entreprise.Entreprise
	err := q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Nom, &e.Adresse, &e.Devise, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return entreprise.Entreprise{}, entreprise.ErrEntrepriseNotFound
		}
		return entreprise.Entreprise{}, fmt.Errorf("failed to get entreprise: %w", err)
	}

	return e, nil
}

func (r *entrepriseRepository) List(ctx context.Context) ([]entreprise.Entreprise, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, nom, adresse, devise, created_at, updated_at FROM entreprises ORDER BY nom`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list entreprises: %w", err)
	}
	defer rows.Close()

	entreprises := make([]entreprise.Entreprise, 0)
	for rows.Next() {
		var e entreprise.Entreprise
		if err := rows.Scan(&e.ID, &e.Nom, &e.Adresse, &e.Devise, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entreprise: %w", err)
		}
		entreprises = append(entreprises, e)
	}

	return entreprises, rows.Err()
}
