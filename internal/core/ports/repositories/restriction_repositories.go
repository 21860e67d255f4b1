package repositories

import (
	"context"

	"github.com/SscSPs/account_ledger/internal/core/domain"
)

// CustomerRestrictionReader reads customer restriction state. The ledger never writes it.
type CustomerRestrictionReader interface {
	// FindRestriction returns the restriction state of a customer. A customer with
	// no recorded state is returned as unrestricted.
	FindRestriction(ctx context.Context, customerID string) (*domain.CustomerRestriction, error)
}
