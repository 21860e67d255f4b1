package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/account_ledger/internal/core/domain"
)

// EntryCursor positions a page of ledger entries, newest first.
type EntryCursor struct {
	PostedAt time.Time
	EntryID  string
}

// LedgerEntryReader defines read operations on the journal.
type LedgerEntryReader interface {
	// FindEntryByCode retrieves an entry by its transaction code.
	// Returns apperrors.ErrNotFound when no entry matches.
	FindEntryByCode(ctx context.Context, transactionCode string) (*domain.LedgerEntry, error)

	// ListEntriesByAccount returns up to limit entries of an account, newest first,
	// strictly older than the cursor when one is given.
	ListEntriesByAccount(ctx context.Context, accountID string, limit int, after *EntryCursor) ([]domain.LedgerEntry, error)

	// ListPendingEntries returns every entry awaiting approval, oldest first.
	ListPendingEntries(ctx context.Context) ([]domain.LedgerEntry, error)
}

// LedgerTxRepository defines the journal operations available inside a unit of work.
type LedgerTxRepository interface {
	// InsertEntry appends an entry. A reused transaction code fails with
	// apperrors.ErrDuplicateTransactionCode.
	InsertEntry(ctx context.Context, entry domain.LedgerEntry) error

	// FindEntryByCodeForUpdate loads and row-locks an entry.
	FindEntryByCodeForUpdate(ctx context.Context, transactionCode string) (*domain.LedgerEntry, error)

	// UpdateEntry persists the resolution of a pending entry. Only entries that are
	// still pending in the store may be updated; otherwise apperrors.ErrAlreadyProcessed.
	UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error
}

// LedgerRepositoryFacade combines all journal read interfaces.
type LedgerRepositoryFacade interface {
	LedgerEntryReader
}
