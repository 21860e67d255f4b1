package repositories

import (
	"context"

	"github.com/SscSPs/account_ledger/internal/core/domain"
)

// AccountReader defines read operations for account data outside a unit of work.
// Results are snapshots and must not be used to decide a balance mutation.
type AccountReader interface {
	// FindAccountByNumber retrieves an account by its account number.
	// Returns apperrors.ErrAccountNotFound when no account matches.
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// FindAccountByID retrieves an account by its identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccountsByCustomer retrieves all accounts of a customer, oldest first.
	ListAccountsByCustomer(ctx context.Context, customerID string) ([]domain.Account, error)
}

// AccountTxRepository defines the account operations available inside a unit of work.
type AccountTxRepository interface {
	// LockAccountsByNumbers resolves and row-locks the given accounts.
	// Locks are taken in ascending account id order regardless of argument order,
	// so two units of work touching the same pair can never deadlock.
	// Returns apperrors.ErrAccountNotFound if any number does not resolve and
	// apperrors.ErrBusy if a lock could not be acquired in time.
	LockAccountsByNumbers(ctx context.Context, accountNumbers ...string) (map[string]domain.Account, error)

	// UpdateBalance persists a new balance for a locked account.
	UpdateBalance(ctx context.Context, accountID string, balance domain.Money, updatedBy string) error

	// UpdateStatus persists a status change for a locked account.
	UpdateStatus(ctx context.Context, account domain.Account) error

	// NextAccountNumber allocates the next sequential account number.
	NextAccountNumber(ctx context.Context) (string, error)

	// InsertAccount persists a new account.
	InsertAccount(ctx context.Context, account domain.Account) error
}

// AccountRepositoryFacade combines the read side of accounts with the unit of work
// used for every write.
type AccountRepositoryFacade interface {
	AccountReader
}
