package repositories

import (
	"context"

	"github.com/SscSPs/account_ledger/internal/core/domain"
)

// AuditWriter appends audit events.
type AuditWriter interface {
	SaveAuditEvent(ctx context.Context, event domain.AuditEvent) error
}
