package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/account_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/account_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/account_ledger/internal/core/ports/services"
	"github.com/SscSPs/account_ledger/internal/core/services"
	"github.com/SscSPs/account_ledger/internal/platform/config"
	"github.com/SscSPs/account_ledger/internal/repositories/database/memory"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	numberA = "1000000001"
	numberB = "1000000002"
	adminID = "admin-1"
)

// ledgerSuite runs services against the in-memory store so unit of work and
// locking behave as they do in production.
type ledgerSuite struct {
	suite.Suite
	ctx       context.Context
	store     *memory.Store
	cfg       *config.Config
	container *portssvc.ServiceContainer
}

func (s *ledgerSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore(memory.WithLockTimeout(2 * time.Second))
	s.cfg = &config.Config{
		ApprovalThreshold:  domain.MustParseMoney("500.00"),
		WithdrawalLimitCap: domain.MustParseMoney("1000.00"),
		AuditTimeout:       time.Second,
	}
	s.container = services.NewServiceContainer(s.cfg, s.store.RepositoryProvider())

	s.seedAccount("acc-a", "cust-a", numberA, "1000.00", domain.AccountActive)
	s.seedAccount("acc-b", "cust-b", numberB, "200.00", domain.AccountActive)
}

func (s *ledgerSuite) seedAccount(id, customerID, number, balance string, status domain.AccountStatus) {
	s.store.PutAccount(domain.Account{
		AccountID:     id,
		CustomerID:    customerID,
		AccountNumber: number,
		Class:         domain.Checking,
		Status:        status,
		Balance:       domain.MustParseMoney(balance),
	})
}

func (s *ledgerSuite) balance(number string) domain.Money {
	acc, err := s.store.FindAccountByNumber(s.ctx, number)
	s.Require().NoError(err)
	return acc.Balance
}

func (s *ledgerSuite) entries(accountID string) []domain.LedgerEntry {
	return s.store.EntriesByAccount(accountID)
}

// assertLedgerConsistent checks every committed entry and that each balance
// equals the after-balance of its account's latest completed entry.
func (s *ledgerSuite) assertLedgerConsistent(accountID, number string) {
	var last *domain.LedgerEntry
	for _, e := range s.entries(accountID) {
		s.NoError(e.Validate())
		if e.Status == domain.StatusCompleted {
			e := e
			last = &e
		}
	}
	if last != nil {
		s.Equal(last.BalanceAfter, s.balance(number), "balance of %s diverges from its journal", number)
	}
	s.False(s.balance(number).IsNegative())
}

// MockAuditWriter is a mock type for the AuditWriter interface
type MockAuditWriter struct {
	mock.Mock
}

func (m *MockAuditWriter) SaveAuditEvent(ctx context.Context, event domain.AuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockRestrictionReader is a mock type for the CustomerRestrictionReader interface
type MockRestrictionReader struct {
	mock.Mock
}

func (m *MockRestrictionReader) FindRestriction(ctx context.Context, customerID string) (*domain.CustomerRestriction, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerRestriction), args.Error(1)
}

var (
	_ portsrepo.AuditWriter               = (*MockAuditWriter)(nil)
	_ portsrepo.CustomerRestrictionReader = (*MockRestrictionReader)(nil)
)
