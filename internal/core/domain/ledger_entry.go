package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/account_ledger/internal/apperrors"
)

// EntryKind tags the balance-affecting event a ledger entry records.
type EntryKind string

const (
	KindOpening  EntryKind = "OPENING"
	KindCredit   EntryKind = "CREDIT"
	KindDebit    EntryKind = "DEBIT"
	KindTransfer EntryKind = "TRANSFER"
)

// EntryStatus is the lifecycle state of a ledger entry.
type EntryStatus string

const (
	StatusPendingApproval EntryStatus = "PENDING_APPROVAL"
	StatusCompleted       EntryStatus = "COMPLETED"
	StatusRejected        EntryStatus = "REJECTED"
	StatusFailed          EntryStatus = "FAILED"
	StatusCancelled       EntryStatus = "CANCELLED"
)

// IsTerminal reports whether an entry in this status is immutable.
func (s EntryStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// LegDirection says which side of a transfer a TRANSFER entry records.
type LegDirection string

const (
	LegOut LegDirection = "DEBIT"  // money leaves the owning account
	LegIn  LegDirection = "CREDIT" // money arrives at the owning account
)

// InboundLegSuffix is appended to a transfer code to name its credit leg.
const InboundLegSuffix = "-IN"

// TransferLeg holds the fields only meaningful for TRANSFER entries.
type TransferLeg struct {
	Direction                 LegDirection `json:"direction"`
	CounterpartyAccountNumber string       `json:"counterpartyAccountNumber"`
}

// LedgerEntry is one immutable record of a balance-affecting event on one account.
// Amount is signed: positive increases the owner's balance, negative decreases it.
type LedgerEntry struct {
	EntryID         string       `json:"entryID"`
	TransactionCode string       `json:"transactionCode"`
	AccountID       string       `json:"accountID"`
	AccountNumber   string       `json:"accountNumber"`
	Kind            EntryKind    `json:"kind"`
	Amount          Money        `json:"amount"`
	BalanceBefore   Money        `json:"balanceBefore"`
	BalanceAfter    Money        `json:"balanceAfter"`
	Description     string       `json:"description"`
	Remark          string       `json:"remark,omitempty"`
	Status          EntryStatus  `json:"status"`
	Transfer        *TransferLeg `json:"transfer,omitempty"`
	ResolvedBy      string       `json:"resolvedBy,omitempty"`
	ResolvedAt      *time.Time   `json:"resolvedAt,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
	CreatedBy       string       `json:"createdBy"`
}

// CounterpartyAccountNumber returns the other account of a transfer leg, or "".
func (e LedgerEntry) CounterpartyAccountNumber() string {
	if e.Transfer == nil {
		return ""
	}
	return e.Transfer.CounterpartyAccountNumber
}

// PostedAt is the entry's place on a statement: the resolution time once an
// approval decision has been made, otherwise the creation time. An approved
// transfer moves the balance at approval, so it sorts there.
func (e LedgerEntry) PostedAt() time.Time {
	if e.ResolvedAt != nil {
		return *e.ResolvedAt
	}
	return e.CreatedAt
}

// IsPending reports whether the entry awaits approval.
func (e LedgerEntry) IsPending() bool {
	return e.Status == StatusPendingApproval
}

// Validate checks the structural and balance invariants of an entry.
// Every failure wraps apperrors.ErrInvariantViolation.
func (e LedgerEntry) Validate() error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: entry %s: %s", apperrors.ErrInvariantViolation, e.TransactionCode, fmt.Sprintf(format, args...))
	}

	if e.TransactionCode == "" {
		return fail("transaction code is required")
	}
	if e.AccountID == "" {
		return fail("account reference is required")
	}
	if e.Amount.IsZero() {
		return fail("amount must be non-zero")
	}

	switch e.Kind {
	case KindOpening, KindCredit:
		if !e.Amount.IsPositive() {
			return fail("%s amount must be positive, got %s", e.Kind, e.Amount)
		}
	case KindDebit:
		if !e.Amount.IsNegative() {
			return fail("DEBIT amount must be negative, got %s", e.Amount)
		}
	case KindTransfer:
		if e.Transfer == nil || e.Transfer.CounterpartyAccountNumber == "" {
			return fail("TRANSFER requires a counterparty account")
		}
		if e.Transfer.CounterpartyAccountNumber == e.AccountNumber && e.AccountNumber != "" {
			return fail("TRANSFER counterparty equals owning account")
		}
		switch e.Transfer.Direction {
		case LegOut:
			if !e.Amount.IsNegative() {
				return fail("outgoing leg must be negative, got %s", e.Amount)
			}
		case LegIn:
			if !e.Amount.IsPositive() {
				return fail("incoming leg must be positive, got %s", e.Amount)
			}
		default:
			return fail("unknown leg direction %q", e.Transfer.Direction)
		}
	default:
		return fail("unknown kind %q", e.Kind)
	}
	if e.Kind != KindTransfer && e.Transfer != nil {
		return fail("%s entry cannot carry transfer fields", e.Kind)
	}

	switch e.Status {
	case StatusPendingApproval:
		if e.Kind != KindTransfer || e.Transfer.Direction != LegOut {
			return fail("only outgoing transfers can await approval")
		}
		if e.BalanceAfter != e.BalanceBefore {
			return fail("pending entry must not move the balance (%s -> %s)", e.BalanceBefore, e.BalanceAfter)
		}
		return nil
	case StatusCompleted, StatusRejected, StatusFailed, StatusCancelled:
	default:
		return fail("unknown status %q", e.Status)
	}

	if e.Status == StatusCompleted {
		if e.BalanceAfter != e.BalanceBefore.Add(e.Amount) {
			return fail("balance after %s != balance before %s + amount %s", e.BalanceAfter, e.BalanceBefore, e.Amount)
		}
		if e.BalanceAfter.IsNegative() {
			return fail("balance after %s is negative", e.BalanceAfter)
		}
	}
	return nil
}

// CodeRoot strips the leg suffix so both legs of a transfer share one root.
func CodeRoot(code string) string {
	return strings.TrimSuffix(code, InboundLegSuffix)
}

// InboundLegCode names the credit leg of the transfer identified by code.
func InboundLegCode(code string) string {
	return CodeRoot(code) + InboundLegSuffix
}
