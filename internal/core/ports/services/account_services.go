package services

import (
	"context"

	"github.com/SscSPs/account_ledger/internal/core/domain"
	"github.com/SscSPs/account_ledger/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccount retrieves an account by its account number.
	GetAccount(ctx context.Context, accountNumber string) (*domain.Account, error)

	// ListAccountsByCustomer retrieves all accounts owned by a customer.
	ListAccountsByCustomer(ctx context.Context, customerID string) ([]domain.Account, error)

	// ListEntries returns a page of an account's ledger entries, most recently posted first.
	ListEntries(ctx context.Context, accountNumber string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// AccountWriterSvc defines the account lifecycle operations.
type AccountWriterSvc interface {
	// OpenAccount creates a PENDING account, applying the opening deposit if any.
	OpenAccount(ctx context.Context, req dto.OpenAccountRequest, actorID string) (*domain.Account, error)

	// ReviewAccount approves (PENDING -> ACTIVE) or rejects (PENDING -> CLOSED) an account.
	ReviewAccount(ctx context.Context, accountNumber string, req dto.ReviewAccountRequest, actorID string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
