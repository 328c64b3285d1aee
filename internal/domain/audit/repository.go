package audit

import "context"

type AuditRepository interface {
	Create(ctx context.Context, r Record) error
	ListByEntity(ctx context.Context, entity, entityID string) ([]Record, error)
}
