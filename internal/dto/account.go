package dto

import (
	"time"

	"github.com/SscSPs/account_ledger/internal/core/domain"
)

// OpenAccountRequest defines the data needed to open a new account.
type OpenAccountRequest struct {
	CustomerID     string              `json:"customerID" binding:"required,max=64"`
	Class          domain.AccountClass `json:"class" binding:"required,oneof=CHECKING SAVINGS"`
	OpeningDeposit domain.Money        `json:"openingDeposit" binding:"nonnegative_money"` // Optional, defaults to zero
}

// ReviewAccountRequest defines an admin decision on a pending account.
type ReviewAccountRequest struct {
	Action string `json:"action" binding:"required,oneof=APPROVE REJECT"`
	Reason string `json:"reason" binding:"max=500"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string               `json:"accountID"`
	CustomerID    string               `json:"customerID"`
	AccountNumber string               `json:"accountNumber"`
	Class         domain.AccountClass  `json:"class"`
	Status        domain.AccountStatus `json:"status"`
	Balance       domain.Money         `json:"balance"`
	ApprovedBy    string               `json:"approvedBy,omitempty"`
	ApprovedAt    *time.Time           `json:"approvedAt,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	CreatedBy     string               `json:"createdBy"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy string               `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		CustomerID:    acc.CustomerID,
		AccountNumber: acc.AccountNumber,
		Class:         acc.Class,
		Status:        acc.Status,
		Balance:       acc.Balance,
		ApprovedBy:    acc.ApprovedBy,
		ApprovedAt:    acc.ApprovedAt,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsResponse wraps the accounts of a customer.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
