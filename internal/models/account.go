package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Account is the row stored in the accounts table.
type Account struct {
	AccountID     string          `db:"account_id"`
	CustomerID    string          `db:"customer_id"`
	AccountNumber string          `db:"account_number"`
	Class         string          `db:"account_class"`
	Status        string          `db:"status"`
	Balance       decimal.Decimal `db:"balance"` // NUMERIC(19,2)
	ApprovedBy    sql.NullString  `db:"approved_by"`
	ApprovedAt    sql.NullTime    `db:"approved_at"`
	AuditFields
}
