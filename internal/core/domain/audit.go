package domain

import "time"

// AuditAction names an administrative action worth recording.
type AuditAction string

const (
	AuditAdminCredit         AuditAction = "ADMIN_CREDIT"
	AuditAdminDebit          AuditAction = "ADMIN_DEBIT"
	AuditTransactionApproved AuditAction = "TRANSACTION_APPROVED"
	AuditTransactionRejected AuditAction = "TRANSACTION_REJECTED"
	AuditAccountApproved     AuditAction = "ACCOUNT_APPROVED"
	AuditAccountRejected     AuditAction = "ACCOUNT_REJECTED"
)

// Kinds of record an audit event points at.
const (
	AuditEntityTransaction = "TRANSACTION"
	AuditEntityAccount     = "ACCOUNT"
)

// AuditEvent is a write-only record of who did what to which entity.
type AuditEvent struct {
	EventID    string            `json:"eventID"`
	Actor      string            `json:"actor"`
	Action     AuditAction       `json:"action"`
	Entity     string            `json:"entity"`
	EntityID   string            `json:"entityID"`
	CustomerID string            `json:"customerID,omitempty"`
	Details    map[string]string `json:"details,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
}
