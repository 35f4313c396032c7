package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/halcyon-hr/payroll-backend-go/internal/domain/audit"
	"github.com/halcyon-hr/payroll-backend-go/internal/pkg/database"
)

type auditRepository struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) audit.Sink {
	return &auditRepository{db: db}
}

// Record always writes through the pool, never a caller's transaction, so an
// audit insert cannot roll back the change it describes.
func (r *auditRepository) Record(ctx context.Context, entry audit.Entry) error {
	payloadJSON, _ := json.Marshal(entry.Payload)

	query := `
		INSERT INTO audit_entries (company_id, actor, action, entity, entity_id, payload)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		entry.CompanyID, entry.Actor, entry.Action, entry.Entity, entry.EntityID, payloadJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to write audit entry: %w", err)
	}

	return nil
}
