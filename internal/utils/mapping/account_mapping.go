package mapping

import (
	"fmt"

	"github.com/SscSPs/account_ledger/internal/core/domain"
	"github.com/SscSPs/account_ledger/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:     d.AccountID,
		CustomerID:    d.CustomerID,
		AccountNumber: d.AccountNumber,
		Class:         string(d.Class),
		Status:        string(d.Status),
		Balance:       d.Balance.Decimal(),
		ApprovedBy:    nullString(d.ApprovedBy),
		ApprovedAt:    nullTime(d.ApprovedAt),
		AuditFields:   toModelStamps(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account.
// It fails if the stored balance has more precision than Money carries.
func ToDomainAccount(m models.Account) (domain.Account, error) {
	balance, err := domain.MoneyFromDecimal(m.Balance)
	if err != nil {
		return domain.Account{}, fmt.Errorf("account %s balance: %w", m.AccountID, err)
	}
	return domain.Account{
		AccountID:     m.AccountID,
		CustomerID:    m.CustomerID,
		AccountNumber: m.AccountNumber,
		Class:         domain.AccountClass(m.Class),
		Status:        domain.AccountStatus(m.Status),
		Balance:       balance,
		ApprovedBy:    m.ApprovedBy.String,
		ApprovedAt:    timePtr(m.ApprovedAt),
		AuditFields:   toDomainStamps(m.AuditFields),
	}, nil
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) ([]domain.Account, error) {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		d, err := ToDomainAccount(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}

// Accounts are the only mutable rows, so they alone carry update stamps.
func toModelStamps(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

func toDomainStamps(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}
