package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the row stored in the ledger_entries table.
// Direction and counterparty are only set for TRANSFER rows.
type LedgerEntry struct {
	EntryID                   string          `db:"entry_id"`
	TransactionCode           string          `db:"transaction_code"`
	AccountID                 string          `db:"account_id"`
	AccountNumber             string          `db:"account_number"`
	Kind                      string          `db:"kind"`
	Amount                    decimal.Decimal `db:"amount"`
	BalanceBefore             decimal.Decimal `db:"balance_before"`
	BalanceAfter              decimal.Decimal `db:"balance_after"`
	Description               string          `db:"description"`
	Remark                    sql.NullString  `db:"remark"`
	Status                    string          `db:"status"`
	Direction                 sql.NullString  `db:"direction"`
	CounterpartyAccountNumber sql.NullString  `db:"counterparty_account_number"`
	ResolvedBy                sql.NullString  `db:"resolved_by"`
	ResolvedAt                sql.NullTime    `db:"resolved_at"`
	CreatedAt                 time.Time       `db:"created_at"`
	CreatedBy                 string          `db:"created_by"`
}
