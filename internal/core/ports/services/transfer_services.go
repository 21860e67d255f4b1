package services

import (
	"context"

	"github.com/SscSPs/account_ledger/internal/core/domain"
	"github.com/SscSPs/account_ledger/internal/dto"
)

// TransferSvc moves money between two accounts.
type TransferSvc interface {
	// InitiateTransfer settles the transfer at once below the approval threshold
	// and queues it as a pending entry at or above it. Customer actors may only
	// transfer out of their own accounts.
	InitiateTransfer(ctx context.Context, req dto.TransferRequest, actor domain.Actor) (*dto.TransferResult, error)
}

// ApprovalSvc resolves pending transfers.
type ApprovalSvc interface {
	ApproveTransfer(ctx context.Context, transactionCode string, approverID string) (*dto.ResolutionResult, error)
	RejectTransfer(ctx context.Context, transactionCode string, reason string, approverID string) (*dto.ResolutionResult, error)
	ListPendingApprovals(ctx context.Context) ([]domain.LedgerEntry, error)
}

// AdjustmentSvc applies admin credits and debits.
type AdjustmentSvc interface {
	AdminCredit(ctx context.Context, req dto.AdjustmentRequest, actorID string) (*dto.AdjustmentResult, error)
	AdminDebit(ctx context.Context, req dto.AdjustmentRequest, actorID string) (*dto.AdjustmentResult, error)
}
