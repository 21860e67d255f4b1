package pgsql

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/account_ledger/internal/apperrors"
	"github.com/SscSPs/account_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/account_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/account_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxUnitOfWork runs ledger mutations in one read committed transaction. Row
// locks are taken with SELECT ... FOR UPDATE and bounded by lock_timeout.
type PgxUnitOfWork struct {
	BaseRepository
	lockTimeout time.Duration
}

func newPgxUnitOfWork(pool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.UnitOfWork {
	return &PgxUnitOfWork{BaseRepository: BaseRepository{Pool: pool}, lockTimeout: lockTimeout}
}

var _ portsrepo.UnitOfWork = (*PgxUnitOfWork)(nil)

func (u *PgxUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.TxRepositories) error) error {
	tx, err := u.Begin(ctx)
	if err != nil {
		return err
	}
	// Will be ignored if the transaction is committed successfully
	defer u.Rollback(ctx, tx)

	if u.lockTimeout > 0 {
		timeout := fmt.Sprintf("%dms", u.lockTimeout.Milliseconds())
		if _, err := tx.Exec(ctx, `SELECT set_config('lock_timeout', $1, true);`, timeout); err != nil {
			return fmt.Errorf("failed to set lock timeout: %w", mapPgError(err))
		}
	}

	if err := fn(ctx, &pgxTx{tx: tx, locked: make(map[string]struct{})}); err != nil {
		return err
	}
	return u.Commit(ctx, tx)
}

// pgxTx binds the account and ledger write repositories to one transaction.
type pgxTx struct {
	tx     pgx.Tx
	locked map[string]struct{} // account ids row-locked or inserted by this tx
}

var (
	_ portsrepo.AccountTxRepository = (*pgxTx)(nil)
	_ portsrepo.LedgerTxRepository  = (*pgxTx)(nil)
)

func (t *pgxTx) Accounts() portsrepo.AccountTxRepository { return t }
func (t *pgxTx) Ledger() portsrepo.LedgerTxRepository    { return t }

// --- AccountTxRepository ---

// LockAccountsByNumbers row-locks the accounts one at a time in ascending id order
// so that concurrent units of work touching the same pair cannot deadlock.
func (t *pgxTx) LockAccountsByNumbers(ctx context.Context, accountNumbers ...string) (map[string]domain.Account, error) {
	rows, err := t.tx.Query(ctx, `SELECT account_number, account_id FROM accounts WHERE account_number = ANY($1);`, accountNumbers)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account numbers: %w", mapPgError(err))
	}
	idsByNumber := make(map[string]string, len(accountNumbers))
	for rows.Next() {
		var number, id string
		if err := rows.Scan(&number, &id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan account id: %w", err)
		}
		idsByNumber[number] = id
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account ids: %w", mapPgError(err))
	}

	ids := make([]string, 0, len(idsByNumber))
	seen := make(map[string]struct{}, len(idsByNumber))
	for _, number := range accountNumbers {
		id, ok := idsByNumber[number]
		if !ok {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, number)
		}
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 FOR UPDATE;`
	locked := make(map[string]domain.Account, len(ids))
	for _, id := range ids {
		acc, err := findAccount(ctx, t.tx, query, id)
		if err != nil {
			return nil, err
		}
		t.locked[id] = struct{}{}
		locked[acc.AccountNumber] = *acc
	}
	return locked, nil
}

func (t *pgxTx) requireLock(accountID string) error {
	if _, ok := t.locked[accountID]; !ok {
		return fmt.Errorf("%w: account %s written without a row lock", apperrors.ErrInvariantViolation, accountID)
	}
	return nil
}

func (t *pgxTx) UpdateBalance(ctx context.Context, accountID string, balance domain.Money, updatedBy string) error {
	if err := t.requireLock(accountID); err != nil {
		return err
	}
	query := `
		UPDATE accounts
		SET balance = $2, last_updated_at = NOW(), last_updated_by = $3
		WHERE account_id = $1;
	`
	cmdTag, err := t.tx.Exec(ctx, query, accountID, balance.Decimal(), updatedBy)
	if err != nil {
		return mapPgError(err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: id %s", apperrors.ErrAccountNotFound, accountID)
	}
	return nil
}

func (t *pgxTx) UpdateStatus(ctx context.Context, account domain.Account) error {
	if err := t.requireLock(account.AccountID); err != nil {
		return err
	}
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET status = $2, approved_by = $3, approved_at = $4, last_updated_at = $5, last_updated_by = $6
		WHERE account_id = $1;
	`
	cmdTag, err := t.tx.Exec(ctx, query, m.AccountID, m.Status, m.ApprovedBy, m.ApprovedAt, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return mapPgError(err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: id %s", apperrors.ErrAccountNotFound, account.AccountID)
	}
	return nil
}

// NextAccountNumber draws from account_number_seq. Sequence values are not
// returned when the transaction rolls back.
func (t *pgxTx) NextAccountNumber(ctx context.Context) (string, error) {
	var seq int64
	if err := t.tx.QueryRow(ctx, `SELECT nextval('account_number_seq');`).Scan(&seq); err != nil {
		return "", mapPgError(err)
	}
	return domain.FormatAccountNumber(seq), nil
}

func (t *pgxTx) InsertAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (account_id, customer_id, account_number, account_class, status, balance,
			approved_by, approved_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := t.tx.Exec(ctx, query,
		m.AccountID,
		m.CustomerID,
		m.AccountNumber,
		m.Class,
		m.Status,
		m.Balance,
		m.ApprovedBy,
		m.ApprovedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert account %s: %w", m.AccountNumber, mapPgError(err))
	}
	t.locked[account.AccountID] = struct{}{}
	return nil
}

// --- LedgerTxRepository ---

func (t *pgxTx) InsertEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	query := `
		INSERT INTO ledger_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := t.tx.Exec(ctx, query,
		m.EntryID,
		m.TransactionCode,
		m.AccountID,
		m.AccountNumber,
		m.Kind,
		m.Amount,
		m.BalanceBefore,
		m.BalanceAfter,
		m.Description,
		m.Remark,
		m.Status,
		m.Direction,
		m.CounterpartyAccountNumber,
		m.ResolvedBy,
		m.ResolvedAt,
		m.CreatedAt,
		m.CreatedBy,
	)
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

func (t *pgxTx) FindEntryByCodeForUpdate(ctx context.Context, transactionCode string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE transaction_code = $1 FOR UPDATE;`
	return findEntry(ctx, t.tx, query, transactionCode)
}

// UpdateEntry only touches rows still awaiting approval, so a resolution racing
// another one cannot overwrite it.
func (t *pgxTx) UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	query := `
		UPDATE ledger_entries
		SET balance_before = $2, balance_after = $3, description = $4, remark = $5,
			status = $6, resolved_by = $7, resolved_at = $8
		WHERE transaction_code = $1 AND status = $9;
	`
	cmdTag, err := t.tx.Exec(ctx, query,
		m.TransactionCode,
		m.BalanceBefore,
		m.BalanceAfter,
		m.Description,
		m.Remark,
		m.Status,
		m.ResolvedBy,
		m.ResolvedAt,
		string(domain.StatusPendingApproval),
	)
	if err != nil {
		return mapPgError(err)
	}
	if cmdTag.RowsAffected() == 0 {
		current, err := findEntry(ctx, t.tx, `SELECT `+entryColumns+` FROM ledger_entries WHERE transaction_code = $1;`, m.TransactionCode)
		if err != nil {
			return err
		}
		return fmt.Errorf("%w: transaction %s is %s", apperrors.ErrAlreadyProcessed, m.TransactionCode, current.Status)
	}
	return nil
}
