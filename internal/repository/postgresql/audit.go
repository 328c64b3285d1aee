package postgresql

import (
	"context"
	"fmt"

	"github.com/gestipay/paie-backend-go/internal/domain/audit"
	"github.com/gestipay/paie-backend-go/internal/pkg/database"
)

type auditRepository struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) audit.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, rec audit.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO audit_logs (action, entity, entity_id, user_id, details)
		VALUES ($1, $2, $3, $4, $5)
	`

	if _, err := q.Exec(ctx, query, rec.Action, rec.Entity, rec.EntityID, rec.UserID, rec.Details); err != nil {
		return fmt.Errorf("failed to create audit record: %w", err)
	}

	return nil
}

func (r *auditRepository) ListByEntity(ctx context.Context, entity, entityID string) ([]audit.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, action, entity, entity_id, user_id, details, created_at
		FROM audit_logs
		WHERE entity = $1 AND entity_id = $2
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, entity, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit records: %w", err)
	}
	defer rows.Close()

	records := make([]audit.Record, 0)
	for rows.Next() {
		var rec audit.Record
		if err := rows.Scan(&rec.ID, &rec.Action, &rec.Entity, &rec.EntityID, &rec.UserID, &rec.Details, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
