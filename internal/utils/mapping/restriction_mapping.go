package mapping

import (
	"github.com/SscSPs/account_ledger/internal/core/domain"
	"github.com/SscSPs/account_ledger/internal/models"
)

// ToDomainRestriction converts a model CustomerRestriction to a domain CustomerRestriction
func ToDomainRestriction(m models.CustomerRestriction) domain.CustomerRestriction {
	return domain.CustomerRestriction{
		CustomerID:   m.CustomerID,
		IsRestricted: m.IsRestricted,
		Kind:         domain.RestrictionKind(m.Kind.String),
		Reason:       m.Reason.String,
		AppliedBy:    m.AppliedBy.String,
		AppliedAt:    timePtr(m.AppliedAt),
	}
}
