package services

import (
	"context"

	"github.com/SscSPs/account_ledger/internal/core/domain"
)

// RestrictionGuard decides whether a customer may perform an operation.
// It returns nil when allowed and an *apperrors.RestrictedError when blocked.
type RestrictionGuard interface {
	Check(ctx context.Context, customerID string, op domain.OperationKind, amount domain.Money) error
}

// AuditRecorder appends audit events on a best-effort basis. It never fails the caller.
type AuditRecorder interface {
	Record(ctx context.Context, event domain.AuditEvent)
}
