package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/account_ledger/internal/apperrors"
	"github.com/SscSPs/account_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/account_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/account_ledger/internal/core/ports/services"
	"github.com/SscSPs/account_ledger/internal/dto"
)

type approvalService struct {
	BaseService
	ledgerRepo portsrepo.LedgerEntryReader
	uow        portsrepo.UnitOfWork
	journal    *ledgerJournal
	audit      portssvc.AuditRecorder
}

// NewApprovalService creates the workflow that resolves pending transfers.
func NewApprovalService(repos portsrepo.RepositoryProvider, audit portssvc.AuditRecorder, options ...ServiceOption) portssvc.ApprovalSvc {
	base := newBaseService(options...)
	return &approvalService{
		BaseService: base,
		ledgerRepo:  repos.LedgerRepo,
		uow:         repos.UnitOfWork,
		journal:     &ledgerJournal{BaseService: base},
		audit:       audit,
	}
}

var _ portssvc.ApprovalSvc = (*approvalService)(nil)

// loadPending locks the entry and checks it can still be resolved.
func loadPending(ctx context.Context, tx portsrepo.TxRepositories, transactionCode string) (*domain.LedgerEntry, error) {
	entry, err := tx.Ledger().FindEntryByCodeForUpdate(ctx, transactionCode)
	if err != nil {
		return nil, err
	}
	if !entry.IsPending() {
		return nil, fmt.Errorf("%w: transaction %s is %s", apperrors.ErrAlreadyProcessed, transactionCode, entry.Status)
	}
	if entry.Kind != domain.KindTransfer || entry.Transfer == nil || entry.Transfer.Direction != domain.LegOut {
		return nil, fmt.Errorf("%w: pending entry %s is not an outgoing transfer", apperrors.ErrInvariantViolation, transactionCode)
	}
	return entry, nil
}

func (s *approvalService) ApproveTransfer(ctx context.Context, transactionCode string, approverID string) (*dto.ResolutionResult, error) {
	if transactionCode == "" {
		return nil, fmt.Errorf("%w: transaction code is required", apperrors.ErrValidation)
	}
	logger := s.GetLogger(ctx).With(slog.String("transaction_code", transactionCode), slog.String("approver", approverID))

	now := s.now()
	var approved domain.LedgerEntry
	var receiver domain.Account
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		pending, err := loadPending(ctx, tx, transactionCode)
		if err != nil {
			return err
		}
		counterparty := pending.CounterpartyAccountNumber()
		locked, err := tx.Accounts().LockAccountsByNumbers(ctx, pending.AccountNumber, counterparty)
		if err != nil {
			return err
		}
		sender, to := locked[pending.AccountNumber], locked[counterparty]
		if !to.IsActive() {
			return fmt.Errorf("%w: account %s is %s", apperrors.ErrAccountNotActive, to.AccountNumber, to.Status)
		}

		// The balance may have moved since the request was queued, so before and
		// after are taken from the sender as it is now.
		before := sender.Balance
		after, err := mutateBalance(ctx, tx, &sender, pending.Amount, pending.Kind, approverID)
		if err != nil {
			return err
		}

		approved = *pending
		approved.BalanceBefore = before
		approved.BalanceAfter = after
		approved.Status = domain.StatusCompleted
		approved.Description = strings.Replace(pending.Description, pendingApprovalTag, approvedTag, 1)
		approved.Remark = fmt.Sprintf("Approved by %s on %s", approverID, now.Format(time.RFC3339))
		approved.ResolvedBy = approverID
		approved.ResolvedAt = &now
		if err := s.journal.resolve(ctx, tx, approved); err != nil {
			return err
		}

		_, err = s.journal.postInboundLeg(ctx, tx, &to, sender.AccountNumber, pending.TransactionCode, pending.Amount.Abs(), transferNote(*pending), approverID)
		receiver = to
		return err
	})
	if err != nil {
		s.logResolutionFailure(logger, err, "approve")
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditEvent{
		Actor:    approverID,
		Action:   domain.AuditTransactionApproved,
		Entity:   domain.AuditEntityTransaction,
		EntityID: approved.TransactionCode,
		Details: map[string]string{
			"amount":            approved.Amount.Abs().String(),
			"fromAccountNumber": approved.AccountNumber,
			"toAccountNumber":   receiver.AccountNumber,
			"senderBalance":     approved.BalanceAfter.String(),
		},
	})
	logger.Info("Transfer approved", slog.String("amount", approved.Amount.Abs().String()))

	return &dto.ResolutionResult{
		TransactionCode: approved.TransactionCode,
		Status:          approved.Status,
		Remark:          approved.Remark,
		ResolvedBy:      approverID,
		ResolvedAt:      now,
	}, nil
}

func (s *approvalService) RejectTransfer(ctx context.Context, transactionCode string, reason string, approverID string) (*dto.ResolutionResult, error) {
	if transactionCode == "" {
		return nil, fmt.Errorf("%w: transaction code is required", apperrors.ErrValidation)
	}
	logger := s.GetLogger(ctx).With(slog.String("transaction_code", transactionCode), slog.String("approver", approverID))

	now := s.now()
	var rejected domain.LedgerEntry
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		pending, err := loadPending(ctx, tx, transactionCode)
		if err != nil {
			return err
		}
		rejected = *pending
		rejected.Status = domain.StatusRejected
		rejected.Description = strings.Replace(pending.Description, pendingApprovalTag, rejectedTag, 1)
		rejected.Remark = strings.TrimSpace(reason)
		if rejected.Remark == "" {
			rejected.Remark = fmt.Sprintf("Rejected by %s on %s", approverID, now.Format(time.RFC3339))
		}
		rejected.ResolvedBy = approverID
		rejected.ResolvedAt = &now
		return s.journal.resolve(ctx, tx, rejected)
	})
	if err != nil {
		s.logResolutionFailure(logger, err, "reject")
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditEvent{
		Actor:    approverID,
		Action:   domain.AuditTransactionRejected,
		Entity:   domain.AuditEntityTransaction,
		EntityID: rejected.TransactionCode,
		Details: map[string]string{
			"amount":            rejected.Amount.Abs().String(),
			"fromAccountNumber": rejected.AccountNumber,
			"toAccountNumber":   rejected.CounterpartyAccountNumber(),
			"reason":            rejected.Remark,
		},
	})
	logger.Info("Transfer rejected")

	return &dto.ResolutionResult{
		TransactionCode: rejected.TransactionCode,
		Status:          rejected.Status,
		Remark:          rejected.Remark,
		ResolvedBy:      approverID,
		ResolvedAt:      now,
	}, nil
}

func (s *approvalService) ListPendingApprovals(ctx context.Context) ([]domain.LedgerEntry, error) {
	entries, err := s.ledgerRepo.ListPendingEntries(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list pending approvals")
		return nil, err
	}
	return entries, nil
}

func (s *approvalService) logResolutionFailure(logger *slog.Logger, err error, op string) {
	switch {
	case apperrors.IsFatal(err):
		logger.Error("Resolution aborted on ledger invariant", slog.String("op", op), slog.String("error", err.Error()))
	case errors.Is(err, apperrors.ErrAlreadyProcessed), errors.Is(err, apperrors.ErrInsufficientFunds):
		logger.Info("Resolution refused", slog.String("op", op), slog.String("error", err.Error()))
	default:
		logger.Warn("Resolution failed", slog.String("op", op), slog.String("error", err.Error()))
	}
}
