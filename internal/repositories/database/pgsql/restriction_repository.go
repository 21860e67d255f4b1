package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/account_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/account_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/account_ledger/internal/models"
	"github.com/SscSPs/account_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRestrictionRepository struct {
	BaseRepository
}

// newPgxRestrictionRepository creates a reader over customer_restrictions.
// The table is maintained by the customer administration side.
func newPgxRestrictionRepository(pool *pgxpool.Pool) portsrepo.CustomerRestrictionReader {
	return &PgxRestrictionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CustomerRestrictionReader = (*PgxRestrictionRepository)(nil)

// FindRestriction retrieves the restriction state of a customer. No row means unrestricted.
func (r *PgxRestrictionRepository) FindRestriction(ctx context.Context, customerID string) (*domain.CustomerRestriction, error) {
	query := `
		SELECT customer_id, is_restricted, restriction_kind, reason, applied_by, applied_at
		FROM customer_restrictions
		WHERE customer_id = $1;
	`
	var m models.CustomerRestriction
	err := r.Pool.QueryRow(ctx, query, customerID).Scan(
		&m.CustomerID,
		&m.IsRestricted,
		&m.Kind,
		&m.Reason,
		&m.AppliedBy,
		&m.AppliedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.CustomerRestriction{CustomerID: customerID}, nil
		}
		return nil, fmt.Errorf("failed to load restriction of customer %s: %w", customerID, mapPgError(err))
	}
	restriction := mapping.ToDomainRestriction(m)
	return &restriction, nil
}
