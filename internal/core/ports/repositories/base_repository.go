package repositories

import (
	"context"
)

// TxRepositories exposes the repositories bound to one unit of work.
type TxRepositories interface {
	Accounts() AccountTxRepository
	Ledger() LedgerTxRepository
}

// UnitOfWork runs fn atomically. If fn returns an error every write made through
// tx is discarded; otherwise all of them commit together. Row locks taken through
// tx are held until the unit of work ends.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx TxRepositories) error) error
}
