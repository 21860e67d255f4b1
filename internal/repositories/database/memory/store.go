package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/account_ledger/internal/apperrors"
	"github.com/SscSPs/account_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/account_ledger/internal/core/ports/repositories"
)

const defaultLockTimeout = 5 * time.Second

// Store is a process-local implementation of every ledger repository port.
// Committed state is guarded by mu; row locks live in a separate lock table and
// are held for the whole unit of work, as a database would hold row locks.
type Store struct {
	mu           sync.RWMutex
	accounts     map[string]domain.Account // by account id
	byNumber     map[string]string         // account number -> account id
	entries      map[string]domain.LedgerEntry
	entryOrder   []string // transaction codes in commit order
	restrictions map[string]domain.CustomerRestriction
	auditEvents  []domain.AuditEvent
	lastSeq      int64

	locks       *lockTable
	lockTimeout time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithLockTimeout bounds how long a unit of work waits for a row lock.
func WithLockTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.lockTimeout = d
		}
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		accounts:     make(map[string]domain.Account),
		byNumber:     make(map[string]string),
		entries:      make(map[string]domain.LedgerEntry),
		restrictions: make(map[string]domain.CustomerRestriction),
		lastSeq:      domain.AccountNumberBase,
		locks:        newLockTable(),
		lockTimeout:  defaultLockTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ensure Store implements every port it is handed out as.
var (
	_ portsrepo.AccountRepositoryFacade   = (*Store)(nil)
	_ portsrepo.LedgerRepositoryFacade    = (*Store)(nil)
	_ portsrepo.CustomerRestrictionReader = (*Store)(nil)
	_ portsrepo.AuditWriter               = (*Store)(nil)
	_ portsrepo.UnitOfWork                = (*Store)(nil)
)

// RepositoryProvider exposes the store through the repository ports.
func (s *Store) RepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     s,
		LedgerRepo:      s,
		RestrictionRepo: s,
		AuditRepo:       s,
		UnitOfWork:      s,
	}
}

// PutAccount inserts or replaces an account outside any unit of work.
// It is meant for bootstrapping and tests.
func (s *Store) PutAccount(account domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.accounts[account.AccountID]; ok {
		delete(s.byNumber, prev.AccountNumber)
	}
	s.accounts[account.AccountID] = cloneAccount(account)
	s.byNumber[account.AccountNumber] = account.AccountID
}

// SetRestriction records the restriction state of a customer. Restriction state is
// owned by an administrative collaborator; the ledger itself never calls this.
func (s *Store) SetRestriction(r domain.CustomerRestriction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restrictions[r.CustomerID] = r
}

// AuditEvents returns a copy of every audit event recorded so far.
func (s *Store) AuditEvents() []domain.AuditEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.AuditEvent, len(s.auditEvents))
	copy(out, s.auditEvents)
	return out
}

// EntriesByAccount returns every committed entry of an account in commit order.
func (s *Store) EntriesByAccount(accountID string) []domain.LedgerEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.LedgerEntry
	for _, code := range s.entryOrder {
		if e := s.entries[code]; e.AccountID == accountID {
			out = append(out, cloneEntry(e))
		}
	}
	return out
}

// --- AccountReader ---

func (s *Store) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byNumber[accountNumber]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, accountNumber)
	}
	acc := cloneAccount(s.accounts[id])
	return &acc, nil
}

func (s *Store) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: id %s", apperrors.ErrAccountNotFound, accountID)
	}
	acc = cloneAccount(acc)
	return &acc, nil
}

func (s *Store) ListAccountsByCustomer(ctx context.Context, customerID string) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Account, 0)
	for _, acc := range s.accounts {
		if acc.CustomerID == customerID {
			out = append(out, cloneAccount(acc))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].AccountNumber < out[j].AccountNumber
	})
	return out, nil
}

// --- LedgerEntryReader ---

func (s *Store) FindEntryByCode(ctx context.Context, transactionCode string) (*domain.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[transactionCode]
	if !ok {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionCode)
	}
	e = cloneEntry(e)
	return &e, nil
}

func (s *Store) ListEntriesByAccount(ctx context.Context, accountID string, limit int, after *portsrepo.EntryCursor) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		return []domain.LedgerEntry{}, nil
	}
	s.mu.RLock()
	matched := make([]domain.LedgerEntry, 0)
	for _, code := range s.entryOrder {
		if e := s.entries[code]; e.AccountID == accountID {
			matched = append(matched, cloneEntry(e))
		}
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return newerThan(matched[i], matched[j]) })

	out := make([]domain.LedgerEntry, 0, limit)
	for _, e := range matched {
		if after != nil && !olderThanCursor(e, *after) {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *Store) ListPendingEntries(ctx context.Context) ([]domain.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.LedgerEntry, 0)
	for _, code := range s.entryOrder {
		if e := s.entries[code]; e.IsPending() {
			out = append(out, cloneEntry(e))
		}
	}
	return out, nil
}

// --- CustomerRestrictionReader ---

func (s *Store) FindRestriction(ctx context.Context, customerID string) (*domain.CustomerRestriction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.restrictions[customerID]
	if !ok {
		return &domain.CustomerRestriction{CustomerID: customerID}, nil
	}
	return &r, nil
}

// --- AuditWriter ---

func (s *Store) SaveAuditEvent(ctx context.Context, event domain.AuditEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auditEvents = append(s.auditEvents, event)
	return nil
}

// --- helpers ---

func newerThan(a, b domain.LedgerEntry) bool {
	if pa, pb := a.PostedAt(), b.PostedAt(); !pa.Equal(pb) {
		return pa.After(pb)
	}
	return a.EntryID > b.EntryID
}

func olderThanCursor(e domain.LedgerEntry, c portsrepo.EntryCursor) bool {
	if p := e.PostedAt(); !p.Equal(c.PostedAt) {
		return p.Before(c.PostedAt)
	}
	return e.EntryID < c.EntryID
}

func cloneAccount(a domain.Account) domain.Account {
	if a.ApprovedAt != nil {
		t := *a.ApprovedAt
		a.ApprovedAt = &t
	}
	return a
}

func cloneEntry(e domain.LedgerEntry) domain.LedgerEntry {
	if e.Transfer != nil {
		leg := *e.Transfer
		e.Transfer = &leg
	}
	if e.ResolvedAt != nil {
		t := *e.ResolvedAt
		e.ResolvedAt = &t
	}
	return e
}
