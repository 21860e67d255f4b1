package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/account_ledger/internal/apperrors"
	"github.com/SscSPs/account_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/account_ledger/internal/core/ports/repositories"
)

// WithinTx runs fn against a staged view of the store. Writes become visible to
// other callers only when fn returns nil; locks are released in every case.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.TxRepositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := &memTx{
		store:       s,
		held:        make(map[string]struct{}),
		accounts:    make(map[string]domain.Account),
		newAccounts: make(map[string]struct{}),
		entries:     make(map[string]domain.LedgerEntry),
	}
	defer tx.releaseLocks()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	return tx.commit()
}

// memTx is one unit of work. It is used by a single goroutine.
type memTx struct {
	store *Store

	held      map[string]struct{}
	heldOrder []string

	accounts    map[string]domain.Account // staged account rows by id
	newAccounts map[string]struct{}
	entries     map[string]domain.LedgerEntry // staged entry rows by code
	inserted    []string                      // codes inserted by this tx, in order
}

var (
	_ portsrepo.TxRepositories      = (*memTx)(nil)
	_ portsrepo.AccountTxRepository = (*memTx)(nil)
	_ portsrepo.LedgerTxRepository  = (*memTx)(nil)
)

func (tx *memTx) Accounts() portsrepo.AccountTxRepository { return tx }
func (tx *memTx) Ledger() portsrepo.LedgerTxRepository    { return tx }

func accountLockKey(id string) string { return "account:" + id }
func entryLockKey(code string) string { return "entry:" + code }

func (tx *memTx) lock(ctx context.Context, key string) error {
	if _, ok := tx.held[key]; ok {
		return nil
	}
	if err := tx.store.locks.acquire(ctx, key, tx.store.lockTimeout); err != nil {
		return err
	}
	tx.held[key] = struct{}{}
	tx.heldOrder = append(tx.heldOrder, key)
	return nil
}

func (tx *memTx) releaseLocks() {
	for i := len(tx.heldOrder) - 1; i >= 0; i-- {
		tx.store.locks.release(tx.heldOrder[i])
	}
	tx.heldOrder = nil
	tx.held = nil
}

func (tx *memTx) holds(key string) bool {
	_, ok := tx.held[key]
	return ok
}

// account returns the staged row if any, else the committed one.
func (tx *memTx) account(id string) (domain.Account, bool) {
	if acc, ok := tx.accounts[id]; ok {
		return acc, true
	}
	tx.store.mu.RLock()
	defer tx.store.mu.RUnlock()
	acc, ok := tx.store.accounts[id]
	return cloneAccount(acc), ok
}

func (tx *memTx) entry(code string) (domain.LedgerEntry, bool) {
	if e, ok := tx.entries[code]; ok {
		return e, true
	}
	tx.store.mu.RLock()
	defer tx.store.mu.RUnlock()
	e, ok := tx.store.entries[code]
	return cloneEntry(e), ok
}

// --- AccountTxRepository ---

func (tx *memTx) LockAccountsByNumbers(ctx context.Context, accountNumbers ...string) (map[string]domain.Account, error) {
	ids := make([]string, 0, len(accountNumbers))
	seen := make(map[string]struct{}, len(accountNumbers))

	tx.store.mu.RLock()
	for _, number := range accountNumbers {
		id, ok := tx.store.byNumber[number]
		if !ok {
			for stagedID := range tx.newAccounts {
				if tx.accounts[stagedID].AccountNumber == number {
					id, ok = stagedID, true
					break
				}
			}
		}
		if !ok {
			tx.store.mu.RUnlock()
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, number)
		}
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	tx.store.mu.RUnlock()

	sort.Strings(ids)
	for _, id := range ids {
		if err := tx.lock(ctx, accountLockKey(id)); err != nil {
			return nil, err
		}
	}

	out := make(map[string]domain.Account, len(ids))
	for _, id := range ids {
		acc, ok := tx.account(id)
		if !ok {
			return nil, fmt.Errorf("%w: id %s", apperrors.ErrAccountNotFound, id)
		}
		out[acc.AccountNumber] = acc
	}
	return out, nil
}

func (tx *memTx) UpdateBalance(ctx context.Context, accountID string, balance domain.Money, updatedBy string) error {
	if !tx.holds(accountLockKey(accountID)) {
		if _, isNew := tx.newAccounts[accountID]; !isNew {
			return fmt.Errorf("%w: balance update on unlocked account %s", apperrors.ErrInvariantViolation, accountID)
		}
	}
	acc, ok := tx.account(accountID)
	if !ok {
		return fmt.Errorf("%w: id %s", apperrors.ErrAccountNotFound, accountID)
	}
	acc.Balance = balance
	acc.LastUpdatedAt = time.Now().UTC()
	acc.LastUpdatedBy = updatedBy
	tx.accounts[accountID] = acc
	return nil
}

func (tx *memTx) UpdateStatus(ctx context.Context, account domain.Account) error {
	if !tx.holds(accountLockKey(account.AccountID)) {
		return fmt.Errorf("%w: status update on unlocked account %s", apperrors.ErrInvariantViolation, account.AccountID)
	}
	acc, ok := tx.account(account.AccountID)
	if !ok {
		return fmt.Errorf("%w: id %s", apperrors.ErrAccountNotFound, account.AccountID)
	}
	acc.Status = account.Status
	acc.ApprovedBy = account.ApprovedBy
	acc.ApprovedAt = account.ApprovedAt
	acc.LastUpdatedAt = account.LastUpdatedAt
	acc.LastUpdatedBy = account.LastUpdatedBy
	tx.accounts[acc.AccountID] = cloneAccount(acc)
	return nil
}

// NextAccountNumber draws from a sequence that, like a database sequence, is not
// rolled back with the unit of work.
func (tx *memTx) NextAccountNumber(ctx context.Context) (string, error) {
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	tx.store.lastSeq++
	return domain.FormatAccountNumber(tx.store.lastSeq), nil
}

func (tx *memTx) InsertAccount(ctx context.Context, account domain.Account) error {
	tx.store.mu.RLock()
	_, numberTaken := tx.store.byNumber[account.AccountNumber]
	_, idTaken := tx.store.accounts[account.AccountID]
	tx.store.mu.RUnlock()
	if numberTaken || idTaken {
		return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, account.AccountNumber)
	}
	tx.accounts[account.AccountID] = cloneAccount(account)
	tx.newAccounts[account.AccountID] = struct{}{}
	return nil
}

// --- LedgerTxRepository ---

func (tx *memTx) InsertEntry(ctx context.Context, entry domain.LedgerEntry) error {
	if _, exists := tx.entry(entry.TransactionCode); exists {
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicateTransactionCode, entry.TransactionCode)
	}
	tx.entries[entry.TransactionCode] = cloneEntry(entry)
	tx.inserted = append(tx.inserted, entry.TransactionCode)
	return nil
}

func (tx *memTx) FindEntryByCodeForUpdate(ctx context.Context, transactionCode string) (*domain.LedgerEntry, error) {
	if err := tx.lock(ctx, entryLockKey(transactionCode)); err != nil {
		return nil, err
	}
	e, ok := tx.entry(transactionCode)
	if !ok {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionCode)
	}
	return &e, nil
}

func (tx *memTx) UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error {
	if !tx.holds(entryLockKey(entry.TransactionCode)) {
		return fmt.Errorf("%w: update of unlocked entry %s", apperrors.ErrInvariantViolation, entry.TransactionCode)
	}
	tx.store.mu.RLock()
	committed, ok := tx.store.entries[entry.TransactionCode]
	tx.store.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, entry.TransactionCode)
	}
	if !committed.IsPending() {
		return fmt.Errorf("%w: transaction %s is %s", apperrors.ErrAlreadyProcessed, entry.TransactionCode, committed.Status)
	}
	tx.entries[entry.TransactionCode] = cloneEntry(entry)
	return nil
}

func (tx *memTx) commit() error {
	s := tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, code := range tx.inserted {
		if _, exists := s.entries[code]; exists {
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicateTransactionCode, code)
		}
	}
	for id := range tx.newAccounts {
		if _, exists := s.byNumber[tx.accounts[id].AccountNumber]; exists {
			return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, tx.accounts[id].AccountNumber)
		}
	}

	for id, acc := range tx.accounts {
		s.accounts[id] = acc
		s.byNumber[acc.AccountNumber] = id
	}
	for code, e := range tx.entries {
		s.entries[code] = e
	}
	s.entryOrder = append(s.entryOrder, tx.inserted...)
	return nil
}
