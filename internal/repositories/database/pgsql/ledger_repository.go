package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/account_ledger/internal/apperrors"
	"github.com/SscSPs/account_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/account_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/account_ledger/internal/models"
	"github.com/SscSPs/account_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `entry_id, transaction_code, account_id, account_number, kind, amount,
	balance_before, balance_after, description, remark, status, direction,
	counterparty_account_number, resolved_by, resolved_at, created_at, created_by`

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for ledger entry reads.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

func scanEntry(row pgx.Row) (domain.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.TransactionCode,
		&m.AccountID,
		&m.AccountNumber,
		&m.Kind,
		&m.Amount,
		&m.BalanceBefore,
		&m.BalanceAfter,
		&m.Description,
		&m.Remark,
		&m.Status,
		&m.Direction,
		&m.CounterpartyAccountNumber,
		&m.ResolvedBy,
		&m.ResolvedAt,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	if err != nil {
		return domain.LedgerEntry{}, err
	}
	return mapping.ToDomainLedgerEntry(m)
}

func collectEntries(rows pgx.Rows) ([]domain.LedgerEntry, error) {
	defer rows.Close()
	entries := make([]domain.LedgerEntry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entry rows: %w", mapPgError(err))
	}
	return entries, nil
}

func findEntry(ctx context.Context, q querier, query, transactionCode string) (*domain.LedgerEntry, error) {
	e, err := scanEntry(q.QueryRow(ctx, query, transactionCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionCode)
		}
		return nil, fmt.Errorf("failed to load transaction %s: %w", transactionCode, mapPgError(err))
	}
	return &e, nil
}

// FindEntryByCode retrieves an entry by its transaction code.
func (r *PgxLedgerRepository) FindEntryByCode(ctx context.Context, transactionCode string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE transaction_code = $1;`
	return findEntry(ctx, r.Pool, query, transactionCode)
}

// ListEntriesByAccount retrieves a page of an account's entries using keyset
// pagination, newest posting first.
func (r *PgxLedgerRepository) ListEntriesByAccount(ctx context.Context, accountID string, limit int, after *portsrepo.EntryCursor) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		return []domain.LedgerEntry{}, nil
	}

	var (
		rows pgx.Rows
		err  error
	)
	if after == nil {
		query := `SELECT ` + entryColumns + `
			FROM ledger_entries
			WHERE account_id = $1
			ORDER BY COALESCE(resolved_at, created_at) DESC, entry_id DESC
			LIMIT $2;`
		rows, err = r.Pool.Query(ctx, query, accountID, limit)
	} else {
		query := `SELECT ` + entryColumns + `
			FROM ledger_entries
			WHERE account_id = $1 AND (COALESCE(resolved_at, created_at), entry_id) < ($2, $3)
			ORDER BY COALESCE(resolved_at, created_at) DESC, entry_id DESC
			LIMIT $4;`
		rows, err = r.Pool.Query(ctx, query, accountID, after.PostedAt, after.EntryID, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query entries of account %s: %w", accountID, mapPgError(err))
	}
	return collectEntries(rows)
}

// ListPendingEntries retrieves every entry awaiting approval, oldest first.
func (r *PgxLedgerRepository) ListPendingEntries(ctx context.Context) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE status = $1
		ORDER BY created_at ASC, entry_id ASC;`
	rows, err := r.Pool.Query(ctx, query, string(domain.StatusPendingApproval))
	if err != nil {
		return nil, fmt.Errorf("failed to query pending entries: %w", mapPgError(err))
	}
	return collectEntries(rows)
}
