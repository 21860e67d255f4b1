package models

import "database/sql"

// CustomerRestriction is the row stored in the customer_restrictions table.
type CustomerRestriction struct {
	CustomerID   string         `db:"customer_id"`
	IsRestricted bool           `db:"is_restricted"`
	Kind         sql.NullString `db:"restriction_kind"`
	Reason       sql.NullString `db:"reason"`
	AppliedBy    sql.NullString `db:"applied_by"`
	AppliedAt    sql.NullTime   `db:"applied_at"`
}
