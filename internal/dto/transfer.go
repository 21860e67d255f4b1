package dto

import (
	"time"

	"github.com/SscSPs/account_ledger/internal/core/domain"
)

// TransferRequest defines a customer or admin initiated transfer.
type TransferRequest struct {
	FromAccountNumber string       `json:"fromAccountNumber" binding:"required,accountnumber"`
	ToAccountNumber   string       `json:"toAccountNumber" binding:"required,accountnumber"`
	Amount            domain.Money `json:"amount" binding:"positive_money"`
	Description       string       `json:"description" binding:"required,max=255"`
}

// TransferResult reports the outcome of an initiated transfer.
// NewBalance is the sender's balance and is only set on the instant path.
type TransferResult struct {
	TransactionCode   string             `json:"transactionCode"`
	Status            domain.EntryStatus `json:"status"`
	Amount            domain.Money       `json:"amount"`
	FromAccountNumber string             `json:"fromAccountNumber"`
	ToAccountNumber   string             `json:"toAccountNumber"`
	NewBalance        *domain.Money      `json:"newBalance,omitempty"`
	RequiresApproval  bool               `json:"requiresApproval"`
	Remark            string             `json:"remark,omitempty"`
}

// AdjustmentRequest defines an admin credit or debit.
type AdjustmentRequest struct {
	AccountNumber string       `json:"accountNumber" binding:"required,accountnumber"`
	Amount        domain.Money `json:"amount" binding:"positive_money"`
	Description   string       `json:"description" binding:"required,max=255"`
	Remark        string       `json:"remark" binding:"max=500"`
}

// AdjustmentResult reports the outcome of an admin credit or debit.
type AdjustmentResult struct {
	TransactionCode string       `json:"transactionCode"`
	AccountNumber   string       `json:"accountNumber"`
	Amount          domain.Money `json:"amount"`
	NewBalance      domain.Money `json:"newBalance"`
	Timestamp       time.Time    `json:"timestamp"`
}

// RejectTransferRequest carries the optional reason for a rejection.
type RejectTransferRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// ResolutionResult reports the outcome of an approval or rejection.
type ResolutionResult struct {
	TransactionCode string             `json:"transactionCode"`
	Status          domain.EntryStatus `json:"status"`
	Remark          string             `json:"remark,omitempty"`
	ResolvedBy      string             `json:"resolvedBy"`
	ResolvedAt      time.Time          `json:"resolvedAt"`
}
