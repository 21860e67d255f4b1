package domain

import "time"

// RestrictionKind classifies an administrative restriction on a customer.
type RestrictionKind string

const (
	RestrictionFrozen              RestrictionKind = "FROZEN"
	RestrictionTransferBlocked     RestrictionKind = "TRANSFER_BLOCKED"
	RestrictionWithdrawalLimit     RestrictionKind = "WITHDRAWAL_LIMIT"
	RestrictionPendingVerification RestrictionKind = "PENDING_VERIFICATION"
	RestrictionSuspiciousActivity  RestrictionKind = "SUSPICIOUS_ACTIVITY"
)

// CustomerRestriction is the restriction state of a customer. The ledger only reads it.
type CustomerRestriction struct {
	CustomerID   string          `json:"customerID"`
	IsRestricted bool            `json:"isRestricted"`
	Kind         RestrictionKind `json:"kind,omitempty"`
	Reason       string          `json:"reason,omitempty"`
	AppliedBy    string          `json:"appliedBy,omitempty"`
	AppliedAt    *time.Time      `json:"appliedAt,omitempty"`
}

// OperationKind is a balance-affecting operation the restriction guard rules on.
type OperationKind string

const (
	OpCredit   OperationKind = "CREDIT"
	OpDebit    OperationKind = "DEBIT"
	OpTransfer OperationKind = "TRANSFER" // outgoing transfer from the customer's account
)
