package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/account_ledger/internal/apperrors"
	"github.com/SscSPs/account_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/account_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/account_ledger/internal/core/ports/services"
	"github.com/SscSPs/account_ledger/internal/dto"
	"github.com/SscSPs/account_ledger/internal/utils/pagination"
	"github.com/google/uuid"
)

const (
	defaultEntriesPageSize = 20
	maxEntriesPageSize     = 100
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	uow         portsrepo.UnitOfWork
	journal     *ledgerJournal
	audit       portssvc.AuditRecorder
}

// NewAccountService creates the account store service.
func NewAccountService(repos portsrepo.RepositoryProvider, audit portssvc.AuditRecorder, options ...ServiceOption) portssvc.AccountSvcFacade {
	base := newBaseService(options...)
	return &accountService{
		BaseService: base,
		accountRepo: repos.AccountRepo,
		ledgerRepo:  repos.LedgerRepo,
		uow:         repos.UnitOfWork,
		journal:     &ledgerJournal{BaseService: base},
		audit:       audit,
	}
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// mutateBalance is the only write path for a balance. It must run inside the unit
// of work that appends the matching ledger entry, on an account locked by that
// unit of work. OPENING is the one kind allowed on a non-active account.
func mutateBalance(ctx context.Context, tx portsrepo.TxRepositories, account *domain.Account, delta domain.Money, kind domain.EntryKind, actorID string) (domain.Money, error) {
	if kind != domain.KindOpening && !account.IsActive() {
		return 0, fmt.Errorf("%w: account %s is %s", apperrors.ErrAccountNotActive, account.AccountNumber, account.Status)
	}
	newBalance, err := account.Balance.AddChecked(delta)
	if err != nil {
		return 0, fmt.Errorf("account %s: %w", account.AccountNumber, err)
	}
	if newBalance.IsNegative() {
		return 0, fmt.Errorf("%w: account %s has %s, needs %s", apperrors.ErrInsufficientFunds, account.AccountNumber, account.Balance, delta.Abs())
	}
	if err := tx.Accounts().UpdateBalance(ctx, account.AccountID, newBalance, actorID); err != nil {
		return 0, fmt.Errorf("failed to update balance of account %s: %w", account.AccountNumber, err)
	}
	account.Balance = newBalance
	return newBalance, nil
}

func validateAccountNumber(accountNumber string) error {
	if !domain.IsValidAccountNumber(accountNumber) {
		return fmt.Errorf("%w: malformed account number %q", apperrors.ErrValidation, accountNumber)
	}
	return nil
}

func (s *accountService) GetAccount(ctx context.Context, accountNumber string) (*domain.Account, error) {
	if err := validateAccountNumber(accountNumber); err != nil {
		return nil, err
	}
	return s.accountRepo.FindAccountByNumber(ctx, accountNumber)
}

func (s *accountService) ListAccountsByCustomer(ctx context.Context, customerID string) ([]domain.Account, error) {
	if customerID == "" {
		return nil, fmt.Errorf("%w: customer id is required", apperrors.ErrValidation)
	}
	return s.accountRepo.ListAccountsByCustomer(ctx, customerID)
}

func (s *accountService) ListEntries(ctx context.Context, accountNumber string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	account, err := s.GetAccount(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultEntriesPageSize
	}
	if limit > maxEntriesPageSize {
		limit = maxEntriesPageSize
	}

	var cursor *portsrepo.EntryCursor
	if params.NextToken != "" {
		postedAt, entryID, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		cursor = &portsrepo.EntryCursor{PostedAt: postedAt, EntryID: entryID}
	}

	// One extra row tells us whether another page exists.
	entries, err := s.ledgerRepo.ListEntriesByAccount(ctx, account.AccountID, limit+1, cursor)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger entries", slog.String("account_number", accountNumber))
		return nil, err
	}

	res := &dto.ListEntriesResponse{}
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		res.NextToken = pagination.EncodeToken(last.PostedAt(), last.EntryID)
	}
	res.Entries = dto.ToLedgerEntryResponses(entries)
	return res, nil
}

func (s *accountService) OpenAccount(ctx context.Context, req dto.OpenAccountRequest, actorID string) (*domain.Account, error) {
	if req.CustomerID == "" {
		return nil, fmt.Errorf("%w: customer id is required", apperrors.ErrValidation)
	}
	if !req.Class.Valid() {
		return nil, fmt.Errorf("%w: unknown account class %q", apperrors.ErrValidation, req.Class)
	}
	if req.OpeningDeposit.IsNegative() {
		return nil, fmt.Errorf("%w: opening deposit cannot be negative", apperrors.ErrValidation)
	}

	now := s.now()
	var opened domain.Account
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		number, err := tx.Accounts().NextAccountNumber(ctx)
		if err != nil {
			return fmt.Errorf("failed to allocate account number: %w", err)
		}
		account := domain.Account{
			AccountID:     uuid.NewString(),
			CustomerID:    req.CustomerID,
			AccountNumber: number,
			Class:         req.Class,
			Status:        domain.AccountPending,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		}
		if err := tx.Accounts().InsertAccount(ctx, account); err != nil {
			return fmt.Errorf("failed to insert account: %w", err)
		}

		if req.OpeningDeposit.IsPositive() {
			code, err := s.nextTransactionCode()
			if err != nil {
				return err
			}
			_, err = s.journal.post(ctx, tx, &account, domain.LedgerEntry{
				TransactionCode: code,
				Kind:            domain.KindOpening,
				Amount:          req.OpeningDeposit,
				Description:     "Opening deposit",
				CreatedAt:       now,
				CreatedBy:       actorID,
			})
			if err != nil {
				return err
			}
		}
		opened = account
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to open account", slog.String("customer_id", req.CustomerID))
		return nil, err
	}

	s.LogInfo(ctx, "Account opened",
		slog.String("account_number", opened.AccountNumber),
		slog.String("customer_id", opened.CustomerID),
		slog.String("opening_deposit", opened.Balance.String()))
	return &opened, nil
}

func (s *accountService) ReviewAccount(ctx context.Context, accountNumber string, req dto.ReviewAccountRequest, actorID string) (*domain.Account, error) {
	if err := validateAccountNumber(accountNumber); err != nil {
		return nil, err
	}
	var target domain.AccountStatus
	var action domain.AuditAction
	switch req.Action {
	case "APPROVE":
		target, action = domain.AccountActive, domain.AuditAccountApproved
	case "REJECT":
		target, action = domain.AccountClosed, domain.AuditAccountRejected
	default:
		return nil, fmt.Errorf("%w: unknown review action %q", apperrors.ErrValidation, req.Action)
	}

	now := s.now()
	var reviewed domain.Account
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		locked, err := tx.Accounts().LockAccountsByNumbers(ctx, accountNumber)
		if err != nil {
			return err
		}
		account := locked[accountNumber]
		if account.Status != domain.AccountPending {
			return fmt.Errorf("%w: account %s is %s", apperrors.ErrAlreadyProcessed, accountNumber, account.Status)
		}
		account.Status = target
		if target == domain.AccountActive {
			account.ApprovedBy = actorID
			account.ApprovedAt = &now
		}
		account.LastUpdatedAt = now
		account.LastUpdatedBy = actorID
		if err := tx.Accounts().UpdateStatus(ctx, account); err != nil {
			return fmt.Errorf("failed to update account status: %w", err)
		}
		reviewed = account
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrAlreadyProcessed) {
			s.LogError(ctx, err, "Failed to review account", slog.String("account_number", accountNumber))
		}
		return nil, err
	}

	details := map[string]string{"accountNumber": accountNumber, "status": string(target)}
	if req.Reason != "" {
		details["reason"] = req.Reason
	}
	s.audit.Record(ctx, domain.AuditEvent{
		Actor:      actorID,
		Action:     action,
		Entity:     domain.AuditEntityAccount,
		EntityID:   reviewed.AccountID,
		CustomerID: reviewed.CustomerID,
		Details:    details,
	})
	return &reviewed, nil
}
