package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/account_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/account_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/account_ledger/internal/core/ports/services"
	"github.com/google/uuid"
)

type auditRecorder struct {
	BaseService
	auditRepo portsrepo.AuditWriter
	timeout   time.Duration
}

// NewAuditRecorder creates a recorder that writes each event once, bounded by timeout.
// Write failures are logged and never returned: the financial mutation an event
// describes has already committed.
func NewAuditRecorder(repo portsrepo.AuditWriter, timeout time.Duration, options ...ServiceOption) portssvc.AuditRecorder {
	return &auditRecorder{
		BaseService: newBaseService(options...),
		auditRepo:   repo,
		timeout:     timeout,
	}
}

var _ portssvc.AuditRecorder = (*auditRecorder)(nil)

func (r *auditRecorder) Record(ctx context.Context, event domain.AuditEvent) {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = r.now()
	}

	// The caller's request may already be finishing; the write gets its own deadline.
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	if err := r.auditRepo.SaveAuditEvent(writeCtx, event); err != nil {
		r.LogError(ctx, err, "Failed to write audit event",
			slog.String("action", string(event.Action)),
			slog.String("entity", event.Entity),
			slog.String("entity_id", event.EntityID),
			slog.String("actor", event.Actor))
	}
}
