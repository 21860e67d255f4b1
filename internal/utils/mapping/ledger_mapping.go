package mapping

import (
	"fmt"

	"github.com/SscSPs/account_ledger/internal/core/domain"
	"github.com/SscSPs/account_ledger/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	m := models.LedgerEntry{
		EntryID:         d.EntryID,
		TransactionCode: d.TransactionCode,
		AccountID:       d.AccountID,
		AccountNumber:   d.AccountNumber,
		Kind:            string(d.Kind),
		Amount:          d.Amount.Decimal(),
		BalanceBefore:   d.BalanceBefore.Decimal(),
		BalanceAfter:    d.BalanceAfter.Decimal(),
		Description:     d.Description,
		Remark:          nullString(d.Remark),
		Status:          string(d.Status),
		ResolvedBy:      nullString(d.ResolvedBy),
		ResolvedAt:      nullTime(d.ResolvedAt),
		CreatedAt:       d.CreatedAt,
		CreatedBy:       d.CreatedBy,
	}
	if d.Transfer != nil {
		m.Direction = nullString(string(d.Transfer.Direction))
		m.CounterpartyAccountNumber = nullString(d.Transfer.CounterpartyAccountNumber)
	}
	return m
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) (domain.LedgerEntry, error) {
	amount, err := toMoney(m.TransactionCode, "amount", m.Amount)
	if err != nil {
		return domain.LedgerEntry{}, err
	}
	before, err := toMoney(m.TransactionCode, "balance_before", m.BalanceBefore)
	if err != nil {
		return domain.LedgerEntry{}, err
	}
	after, err := toMoney(m.TransactionCode, "balance_after", m.BalanceAfter)
	if err != nil {
		return domain.LedgerEntry{}, err
	}

	d := domain.LedgerEntry{
		EntryID:         m.EntryID,
		TransactionCode: m.TransactionCode,
		AccountID:       m.AccountID,
		AccountNumber:   m.AccountNumber,
		Kind:            domain.EntryKind(m.Kind),
		Amount:          amount,
		BalanceBefore:   before,
		BalanceAfter:    after,
		Description:     m.Description,
		Remark:          m.Remark.String,
		Status:          domain.EntryStatus(m.Status),
		ResolvedBy:      m.ResolvedBy.String,
		ResolvedAt:      timePtr(m.ResolvedAt),
		CreatedAt:       m.CreatedAt,
		CreatedBy:       m.CreatedBy,
	}
	if m.Direction.Valid {
		d.Transfer = &domain.TransferLeg{
			Direction:                 domain.LegDirection(m.Direction.String),
			CounterpartyAccountNumber: m.CounterpartyAccountNumber.String,
		}
	}
	return d, nil
}

// ToDomainLedgerEntrySlice converts a slice of model LedgerEntries to domain LedgerEntries
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) ([]domain.LedgerEntry, error) {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		d, err := ToDomainLedgerEntry(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}

func toMoney(code, column string, v decimal.Decimal) (domain.Money, error) {
	m, err := domain.MoneyFromDecimal(v)
	if err != nil {
		return 0, fmt.Errorf("entry %s %s: %w", code, column, err)
	}
	return m, nil
}
