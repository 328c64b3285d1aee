package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/gestipay/paie-backend-go/internal/domain/paycycle"
	"github.com/gestipay/paie-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type cycleRepository struct {
	db *database.DB
}

func NewCycleRepository(db *database.DB) paycycle.CycleRepository {
	return &cycleRepository{db: db}
}

const cycleColumns = `id, entreprise_id, nom, description, periode_debut, periode_fin,
		   statut, statut_validation, frequence, created_at, updated_at`

func (r *cycleRepository) Create(ctx context.Context, cycle paycycle.PayCycle) (paycycle.PayCycle, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO pay_cycles (entreprise_id, nom, description, periode_debut, periode_fin,
			statut, statut_validation, frequence)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + cycleColumns

	var c paycycle.PayCycle
	err := q.QueryRow(ctx, query,
		cycle.EntrepriseID, cycle.Nom, cycle.Description, cycle.PeriodeDebut, cycle.PeriodeFin,
		cycle.Statut, cycle.StatutValidation, cycle.Frequence,
	).Scan(
		&c.ID, &c.EntrepriseID, &c.Nom, &c.Description, &c.PeriodeDebut, &c.PeriodeFin,
		&c.Statut, &c.StatutValidation, &c.Frequence, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_pay_cycles_entreprise_nom") {
			return paycycle.PayCycle{}, &paycycle.DuplicateNameError{Nom: cycle.Nom}
		}
		return paycycle.PayCycle{}, fmt.Errorf("failed to create pay cycle: %w", err)
	}

	return c, nil
}

func (r *cycleRepository) GetByID(ctx context.Context, id string) (paycycle.PayCycle, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + cycleColumns + ` FROM pay_cycles WHERE id = $1`

	var c paycycle.PayCycle
	err := q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.EntrepriseID, &c.Nom, &c.Description, &c.PeriodeDebut, &c.PeriodeFin,
		&c.Statut, &c.StatutValidation, &c.Frequence, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return paycycle.PayCycle{}, paycycle.ErrCycleNotFound
		}
		return paycycle.PayCycle{}, fmt.Errorf("failed to get pay cycle: %w", err)
	}

	return c, nil
}

func (r *cycleRepository) ListByEntreprise(ctx context.Context, entrepriseID string) ([]paycycle.PayCycle, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + cycleColumns + ` FROM pay_cycles WHERE entreprise_id = $1 ORDER BY periode_debut DESC`

	rows, err := q.Query(ctx, query, entrepriseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay cycles: %w", err)
	}
	defer rows.Close()

	return scanCycles(rows)
}

func (r *cycleRepository) ListAll(ctx context.Context) ([]paycycle.PayCycle, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + cycleColumns + ` FROM pay_cycles ORDER BY periode_debut DESC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay cycles: %w", err)
	}
	defer rows.Close()

	return scanCycles(rows)
}

func scanCycles(rows pgx.Rows) ([]paycycle.PayCycle, error) {
	cycles := make([]paycycle.PayCycle, 0)
	for rows.Next() {
		var c paycycle.PayCycle
		if err := rows.Scan(
			&c.ID, &c.EntrepriseID, &c.Nom, &c.Description, &c.PeriodeDebut, &c.PeriodeFin,
			&c.Statut, &c.StatutValidation, &c.Frequence, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan pay cycle: %w", err)
		}
		cycles = append(cycles, c)
	}
	return cycles, rows.Err()
}

func (r *cycleRepository) Update(ctx context.Context, req paycycle.UpdateCycleRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE pay_cycles
		SET nom = COALESCE($2, nom),
			description = COALESCE($3, description),
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, req.ID, req.Nom, req.Description)
	if err != nil {
		if strings.Contains(err.Error(), "uk_pay_cycles_entreprise_nom") {
			nom := ""
			if req.Nom != nil {
				nom = *req.Nom
			}
			return &paycycle.DuplicateNameError{Nom: nom}
		}
		return fmt.Errorf("failed to update pay cycle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return paycycle.ErrCycleNotFound
	}

	return nil
}

func (r *cycleRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM pay_cycles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete pay cycle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return paycycle.ErrCycleNotFound
	}

	return nil
}

// SetValidationStatus is the conditional write behind every lifecycle
// transition. The WHERE clause carries the expected current status, so of
// two racing callers exactly one sees RowsAffected() == 1. Closing also
// flips the legacy operational statut in the same statement.
func (r *cycleRepository) SetValidationStatus(ctx context.Context, id string, from, to paycycle.ValidationStatus) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE pay_cycles
		SET statut_validation = $3,
			statut = CASE WHEN $3 = 'CLOSED' THEN 'CLOSED' ELSE statut END,
			updated_at = NOW()
		WHERE id = $1 AND statut_validation = $2
	`

	tag, err := q.Exec(ctx, query, id, from, to)
	if err != nil {
		return false, fmt.Errorf("failed to transition pay cycle: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}
