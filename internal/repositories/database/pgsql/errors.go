package pgsql

import (
	"errors"
	"fmt"

	"github.com/SscSPs/account_ledger/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes the ledger reacts to.
const (
	pgUniqueViolation      = "23505"
	pgCheckViolation       = "23514"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
)

const transactionCodeConstraint = "ledger_entries_transaction_code_key"

// mapPgError translates driver errors into apperrors sentinels. Errors it does
// not recognise are returned unchanged.
func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %w", apperrors.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgLockNotAvailable, pgSerializationFailure, pgDeadlockDetected:
		return fmt.Errorf("%w: %s", apperrors.ErrBusy, pgErr.Message)
	case pgUniqueViolation:
		if pgErr.ConstraintName == transactionCodeConstraint {
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicateTransactionCode, pgErr.Detail)
		}
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, pgErr.Detail)
	case pgCheckViolation:
		return fmt.Errorf("%w: constraint %s", apperrors.ErrInvariantViolation, pgErr.ConstraintName)
	}
	return err
}
