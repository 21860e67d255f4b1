package models

import "time"

// AuditEvent is the row stored in the audit_events table. Details is JSONB.
type AuditEvent struct {
	EventID    string    `db:"event_id"`
	Actor      string    `db:"actor"`
	Action     string    `db:"action"`
	Entity     string    `db:"entity"`
	EntityID   string    `db:"entity_id"`
	CustomerID *string   `db:"customer_id"`
	Details    []byte    `db:"details"`
	CreatedAt  time.Time `db:"created_at"`
}
