package domain

import (
	"fmt"
	"time"
)

// AccountClass is the product class of a customer account.
type AccountClass string

const (
	Checking AccountClass = "CHECKING"
	Savings  AccountClass = "SAVINGS"
)

// Valid reports whether c is a known class.
func (c AccountClass) Valid() bool {
	return c == Checking || c == Savings
}

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	AccountPending   AccountStatus = "PENDING"
	AccountActive    AccountStatus = "ACTIVE"
	AccountSuspended AccountStatus = "SUSPENDED"
	AccountClosed    AccountStatus = "CLOSED"
)

const (
	// AccountNumberLength is the fixed width of account numbers.
	AccountNumberLength = 10
	// AccountNumberBase is the value the account number sequence starts after.
	AccountNumberBase int64 = 702346799
)

// Account represents a customer account owned by the ledger.
// Balance is only ever changed inside a unit of work together with a ledger entry.
type Account struct {
	AccountID     string        `json:"accountID"`     // Primary Key (UUID)
	CustomerID    string        `json:"customerID"`    // Owning customer
	AccountNumber string        `json:"accountNumber"` // Unique, 10 digits
	Class         AccountClass  `json:"class"`
	Status        AccountStatus `json:"status"`
	Balance       Money         `json:"balance"`
	ApprovedBy    string        `json:"approvedBy,omitempty"`
	ApprovedAt    *time.Time    `json:"approvedAt,omitempty"`
	AuditFields
}

// IsActive reports whether the account accepts ledger mutations.
func (a Account) IsActive() bool {
	return a.Status == AccountActive
}

// IsValidAccountNumber reports whether s is a 10-digit numeric string.
func IsValidAccountNumber(s string) bool {
	if len(s) != AccountNumberLength {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatAccountNumber renders a sequence value as a zero padded account number.
func FormatAccountNumber(seq int64) string {
	return fmt.Sprintf("%0*d", AccountNumberLength, seq)
}
