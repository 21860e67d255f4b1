package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/account_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/account_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/account_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditWriter {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditWriter = (*PgxAuditRepository)(nil)

// SaveAuditEvent appends one audit event. Events are never updated.
func (r *PgxAuditRepository) SaveAuditEvent(ctx context.Context, event domain.AuditEvent) error {
	m, err := mapping.ToModelAuditEvent(event)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO audit_events (event_id, actor, action, entity, entity_id, customer_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = r.Pool.Exec(ctx, query,
		m.EventID,
		m.Actor,
		m.Action,
		m.Entity,
		m.EntityID,
		m.CustomerID,
		m.Details,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit event %s: %w", m.EventID, mapPgError(err))
	}
	return nil
}
