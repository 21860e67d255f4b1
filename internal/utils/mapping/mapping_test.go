package mapping_test

import (
	"testing"
	"time"

	"github.com/SscSPs/account_ledger/internal/core/domain"
	"github.com/SscSPs/account_ledger/internal/models"
	"github.com/SscSPs/account_ledger/internal/utils/mapping"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerEntryMapping_TransferLeg(t *testing.T) {
	resolvedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	entry := domain.LedgerEntry{
		EntryID:         "e1",
		TransactionCode: "TXN1",
		AccountID:       "acc-a",
		AccountNumber:   "0702346800",
		Kind:            domain.KindTransfer,
		Amount:          domain.MustParseMoney("-750.00"),
		BalanceBefore:   domain.MustParseMoney("1000.00"),
		BalanceAfter:    domain.MustParseMoney("250.00"),
		Description:     "Transfer to 0702346801 - car [APPROVED]",
		Status:          domain.StatusCompleted,
		Transfer:        &domain.TransferLeg{Direction: domain.LegOut, CounterpartyAccountNumber: "0702346801"},
		ResolvedBy:      "admin",
		ResolvedAt:      &resolvedAt,
		CreatedAt:       resolvedAt.Add(-time.Hour),
		CreatedBy:       "user",
	}

	m := mapping.ToModelLedgerEntry(entry)
	assert.True(t, m.Amount.Equal(decimal.RequireFromString("-750")))
	assert.Equal(t, "DEBIT", m.Direction.String)
	assert.False(t, m.Remark.Valid)

	back, err := mapping.ToDomainLedgerEntry(m)
	require.NoError(t, err)
	assert.Equal(t, entry, back)
}

func TestLedgerEntryMapping_RejectsSubCentAmounts(t *testing.T) {
	_, err := mapping.ToDomainLedgerEntry(models.LedgerEntry{
		TransactionCode: "TXN2",
		Amount:          decimal.RequireFromString("1.005"),
	})
	assert.ErrorContains(t, err, "TXN2 amount")
}

func TestAccountMapping_NullableApproval(t *testing.T) {
	acc, err := mapping.ToDomainAccount(models.Account{
		AccountID: "a", Status: "PENDING", Balance: decimal.RequireFromString("12.50"),
	})
	require.NoError(t, err)
	assert.Nil(t, acc.ApprovedAt)
	assert.Empty(t, acc.ApprovedBy)
	assert.Equal(t, domain.MustParseMoney("12.50"), acc.Balance)
}

func TestAccountMapping_RoundTrip(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	approved := created.Add(time.Hour)
	account := domain.Account{
		AccountID:     "a",
		CustomerID:    "c",
		AccountNumber: "0702346800",
		Class:         domain.Savings,
		Status:        domain.AccountActive,
		Balance:       domain.MaxMoney,
		ApprovedBy:    "admin-1",
		ApprovedAt:    &approved,
		AuditFields: domain.AuditFields{
			CreatedAt:     created,
			CreatedBy:     "user-c",
			LastUpdatedAt: approved,
			LastUpdatedBy: "admin-1",
		},
	}

	back, err := mapping.ToDomainAccount(mapping.ToModelAccount(account))
	require.NoError(t, err)
	assert.Equal(t, account, back)
}

func TestAuditMapping_Details(t *testing.T) {
	m, err := mapping.ToModelAuditEvent(domain.AuditEvent{EventID: "ev", Details: map[string]string{"amount": "1.00"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"1.00"}`, string(m.Details))
	assert.Nil(t, m.CustomerID)
}
