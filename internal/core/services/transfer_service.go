package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/account_ledger/internal/apperrors"
	"github.com/SscSPs/account_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/account_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/account_ledger/internal/core/ports/services"
	"github.com/SscSPs/account_ledger/internal/dto"
)

// Description tags marking where a gated transfer is in its lifecycle.
const (
	pendingApprovalTag = "[PENDING APPROVAL]"
	approvedTag        = "[APPROVED]"
	rejectedTag        = "[REJECTED]"
)

type transferService struct {
	BaseService
	accountRepo       portsrepo.AccountReader
	uow               portsrepo.UnitOfWork
	guard             portssvc.RestrictionGuard
	journal           *ledgerJournal
	approvalThreshold domain.Money
}

// NewTransferService creates the transfer engine. Transfers of at least
// approvalThreshold wait for an admin decision; smaller ones settle at once.
func NewTransferService(repos portsrepo.RepositoryProvider, guard portssvc.RestrictionGuard, approvalThreshold domain.Money, options ...ServiceOption) portssvc.TransferSvc {
	base := newBaseService(options...)
	return &transferService{
		BaseService:       base,
		accountRepo:       repos.AccountRepo,
		uow:               repos.UnitOfWork,
		guard:             guard,
		journal:           &ledgerJournal{BaseService: base},
		approvalThreshold: approvalThreshold,
	}
}

var _ portssvc.TransferSvc = (*transferService)(nil)

func (s *transferService) requiresApproval(amount domain.Money) bool {
	return amount >= s.approvalThreshold
}

func (s *transferService) InitiateTransfer(ctx context.Context, req dto.TransferRequest, actor domain.Actor) (*dto.TransferResult, error) {
	logger := s.GetLogger(ctx).With(
		slog.String("from", req.FromAccountNumber),
		slog.String("to", req.ToAccountNumber),
		slog.String("amount", req.Amount.String()))

	if !req.Amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}
	if err := validateAccountNumber(req.FromAccountNumber); err != nil {
		return nil, err
	}
	if err := validateAccountNumber(req.ToAccountNumber); err != nil {
		return nil, err
	}
	if req.FromAccountNumber == req.ToAccountNumber {
		return nil, apperrors.ErrSelfTransfer
	}

	// Ownership and restriction checks need the sender's customer, which never
	// changes for an account, so an unlocked read is enough here.
	sender, err := s.accountRepo.FindAccountByNumber(ctx, req.FromAccountNumber)
	if err != nil {
		return nil, err
	}
	if actor.IsCustomer() && sender.CustomerID != actor.CustomerID {
		logger.Warn("Customer attempted transfer from an account it does not own", slog.String("actor", actor.ID))
		return nil, fmt.Errorf("%w: account %s does not belong to the caller", apperrors.ErrForbidden, req.FromAccountNumber)
	}
	if err := s.guard.Check(ctx, sender.CustomerID, domain.OpTransfer, req.Amount); err != nil {
		return nil, err
	}

	gated := s.requiresApproval(req.Amount)
	result := &dto.TransferResult{
		Amount:            req.Amount,
		FromAccountNumber: req.FromAccountNumber,
		ToAccountNumber:   req.ToAccountNumber,
		RequiresApproval:  gated,
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		locked, err := tx.Accounts().LockAccountsByNumbers(ctx, req.FromAccountNumber, req.ToAccountNumber)
		if err != nil {
			return err
		}
		from, to := locked[req.FromAccountNumber], locked[req.ToAccountNumber]
		for _, acc := range []domain.Account{from, to} {
			if !acc.IsActive() {
				return fmt.Errorf("%w: account %s is %s", apperrors.ErrAccountNotActive, acc.AccountNumber, acc.Status)
			}
		}
		if from.Balance < req.Amount {
			return fmt.Errorf("%w: account %s has %s, needs %s", apperrors.ErrInsufficientFunds, from.AccountNumber, from.Balance, req.Amount)
		}

		code, err := s.nextTransactionCode()
		if err != nil {
			return err
		}
		result.TransactionCode = code

		if gated {
			pending, err := s.queueForApproval(ctx, tx, from, to, code, req, actor.ID)
			if err != nil {
				return err
			}
			result.Status = pending.Status
			result.Remark = pending.Remark
			return nil
		}

		newBalance, err := s.settle(ctx, tx, &from, &to, code, req.Amount, req.Description, actor.ID)
		if err != nil {
			return err
		}
		result.Status = domain.StatusCompleted
		result.NewBalance = &newBalance
		return nil
	})
	if err != nil {
		if apperrors.IsFatal(err) {
			logger.Error("Transfer aborted on ledger invariant", slog.String("error", err.Error()))
		} else {
			logger.Info("Transfer rejected", slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Transfer initiated",
		slog.String("transaction_code", result.TransactionCode),
		slog.String("status", string(result.Status)))
	return result, nil
}

// settle moves amount between two locked accounts as two COMPLETED legs sharing
// one code root. It returns the sender's new balance.
func (s *transferService) settle(ctx context.Context, tx portsrepo.TxRepositories, from, to *domain.Account, code string, amount domain.Money, description, actorID string) (domain.Money, error) {
	out, err := s.journal.post(ctx, tx, from, domain.LedgerEntry{
		TransactionCode: code,
		Kind:            domain.KindTransfer,
		Amount:          amount.Neg(),
		Description:     outboundDescription(to.AccountNumber, description),
		Transfer:        &domain.TransferLeg{Direction: domain.LegOut, CounterpartyAccountNumber: to.AccountNumber},
		CreatedBy:       actorID,
	})
	if err != nil {
		return 0, err
	}
	if _, err := s.journal.postInboundLeg(ctx, tx, to, from.AccountNumber, code, amount, description, actorID); err != nil {
		return 0, err
	}
	return out.BalanceAfter, nil
}

// queueForApproval records a single pending entry on the sender. No balance moves.
func (s *transferService) queueForApproval(ctx context.Context, tx portsrepo.TxRepositories, from, to domain.Account, code string, req dto.TransferRequest, actorID string) (domain.LedgerEntry, error) {
	return s.journal.append(ctx, tx, domain.LedgerEntry{
		TransactionCode: code,
		AccountID:       from.AccountID,
		AccountNumber:   from.AccountNumber,
		Kind:            domain.KindTransfer,
		Amount:          req.Amount.Neg(),
		BalanceBefore:   from.Balance,
		BalanceAfter:    from.Balance,
		Description:     outboundDescription(to.AccountNumber, req.Description) + " " + pendingApprovalTag,
		Remark:          fmt.Sprintf("Awaiting admin approval (Amount: %s >= %s)", req.Amount, s.approvalThreshold),
		Status:          domain.StatusPendingApproval,
		Transfer:        &domain.TransferLeg{Direction: domain.LegOut, CounterpartyAccountNumber: to.AccountNumber},
		CreatedBy:       actorID,
	})
}

func outboundDescription(toAccountNumber, note string) string {
	return fmt.Sprintf("Transfer to %s - %s", toAccountNumber, note)
}

func inboundDescription(fromAccountNumber, note string) string {
	return fmt.Sprintf("Transfer from %s - %s", fromAccountNumber, note)
}

// transferNote recovers the caller's description from a pending outbound entry.
func transferNote(pending domain.LedgerEntry) string {
	note := strings.TrimSuffix(pending.Description, " "+pendingApprovalTag)
	return strings.TrimPrefix(note, outboundDescription(pending.CounterpartyAccountNumber(), ""))
}
