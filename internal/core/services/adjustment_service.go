package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/account_ledger/internal/apperrors"
	"github.com/SscSPs/account_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/account_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/account_ledger/internal/core/ports/services"
	"github.com/SscSPs/account_ledger/internal/dto"
)

type adjustmentService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	uow         portsrepo.UnitOfWork
	guard       portssvc.RestrictionGuard
	journal     *ledgerJournal
	audit       portssvc.AuditRecorder
}

// NewAdjustmentService creates the admin credit and debit service.
func NewAdjustmentService(repos portsrepo.RepositoryProvider, guard portssvc.RestrictionGuard, audit portssvc.AuditRecorder, options ...ServiceOption) portssvc.AdjustmentSvc {
	base := newBaseService(options...)
	return &adjustmentService{
		BaseService: base,
		accountRepo: repos.AccountRepo,
		uow:         repos.UnitOfWork,
		guard:       guard,
		journal:     &ledgerJournal{BaseService: base},
		audit:       audit,
	}
}

var _ portssvc.AdjustmentSvc = (*adjustmentService)(nil)

func (s *adjustmentService) AdminCredit(ctx context.Context, req dto.AdjustmentRequest, actorID string) (*dto.AdjustmentResult, error) {
	return s.apply(ctx, req, actorID, domain.OpCredit)
}

func (s *adjustmentService) AdminDebit(ctx context.Context, req dto.AdjustmentRequest, actorID string) (*dto.AdjustmentResult, error) {
	return s.apply(ctx, req, actorID, domain.OpDebit)
}

func (s *adjustmentService) apply(ctx context.Context, req dto.AdjustmentRequest, actorID string, op domain.OperationKind) (*dto.AdjustmentResult, error) {
	logger := s.GetLogger(ctx).With(
		slog.String("operation", string(op)),
		slog.String("account_number", req.AccountNumber),
		slog.String("amount", req.Amount.String()))

	if !req.Amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}
	if err := validateAccountNumber(req.AccountNumber); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByNumber(ctx, req.AccountNumber)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Check(ctx, account.CustomerID, op, req.Amount); err != nil {
		return nil, err
	}

	kind, action, delta := domain.KindCredit, domain.AuditAdminCredit, req.Amount
	if op == domain.OpDebit {
		kind, action, delta = domain.KindDebit, domain.AuditAdminDebit, req.Amount.Neg()
	}

	var posted domain.LedgerEntry
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		locked, err := tx.Accounts().LockAccountsByNumbers(ctx, req.AccountNumber)
		if err != nil {
			return err
		}
		target := locked[req.AccountNumber]

		code, err := s.nextTransactionCode()
		if err != nil {
			return err
		}
		posted, err = s.journal.post(ctx, tx, &target, domain.LedgerEntry{
			TransactionCode: code,
			Kind:            kind,
			Amount:          delta,
			Description:     req.Description,
			Remark:          req.Remark,
			CreatedBy:       actorID,
		})
		return err
	})
	if err != nil {
		if apperrors.IsFatal(err) {
			logger.Error("Adjustment aborted on ledger invariant", slog.String("error", err.Error()))
		} else {
			logger.Info("Adjustment rejected", slog.String("error", err.Error()))
		}
		return nil, err
	}

	details := map[string]string{
		"accountNumber": req.AccountNumber,
		"amount":        req.Amount.String(),
		"newBalance":    posted.BalanceAfter.String(),
		"description":   req.Description,
	}
	if req.Remark != "" {
		details["remark"] = req.Remark
	}
	s.audit.Record(ctx, domain.AuditEvent{
		Actor:      actorID,
		Action:     action,
		Entity:     domain.AuditEntityTransaction,
		EntityID:   posted.TransactionCode,
		CustomerID: account.CustomerID,
		Details:    details,
	})
	logger.Info("Adjustment applied", slog.String("transaction_code", posted.TransactionCode))

	return &dto.AdjustmentResult{
		TransactionCode: posted.TransactionCode,
		AccountNumber:   posted.AccountNumber,
		Amount:          req.Amount,
		NewBalance:      posted.BalanceAfter,
		Timestamp:       posted.CreatedAt,
	}, nil
}
