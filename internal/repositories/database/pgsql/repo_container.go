package pgsql

import (
	"time"

	portsrepo "github.com/SscSPs/account_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every Postgres-backed repository over one pool.
// lockTimeout bounds how long a unit of work waits for a row lock.
func NewRepositoryProvider(dbPool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     newPgxAccountRepository(dbPool),
		LedgerRepo:      newPgxLedgerRepository(dbPool),
		RestrictionRepo: newPgxRestrictionRepository(dbPool),
		AuditRepo:       newPgxAuditRepository(dbPool),
		UnitOfWork:      newPgxUnitOfWork(dbPool, lockTimeout),
	}
}
