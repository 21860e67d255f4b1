package dto

import (
	"time"

	"github.com/SscSPs/account_ledger/internal/core/domain"
)

// LedgerEntryResponse defines the data returned for a ledger entry.
type LedgerEntryResponse struct {
	EntryID                   string              `json:"entryID"`
	TransactionCode           string              `json:"transactionCode"`
	AccountNumber             string              `json:"accountNumber"`
	Kind                      domain.EntryKind    `json:"kind"`
	Direction                 domain.LegDirection `json:"direction,omitempty"`
	CounterpartyAccountNumber string              `json:"counterpartyAccountNumber,omitempty"`
	Amount                    domain.Money        `json:"amount"`
	BalanceBefore             domain.Money        `json:"balanceBefore"`
	BalanceAfter              domain.Money        `json:"balanceAfter"`
	Description               string              `json:"description"`
	Remark                    string              `json:"remark,omitempty"`
	Status                    domain.EntryStatus  `json:"status"`
	ResolvedBy                string              `json:"resolvedBy,omitempty"`
	ResolvedAt                *time.Time          `json:"resolvedAt,omitempty"`
	CreatedAt                 time.Time           `json:"createdAt"`
	CreatedBy                 string              `json:"createdBy"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to its DTO.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	res := LedgerEntryResponse{
		EntryID:         e.EntryID,
		TransactionCode: e.TransactionCode,
		AccountNumber:   e.AccountNumber,
		Kind:            e.Kind,
		Amount:          e.Amount,
		BalanceBefore:   e.BalanceBefore,
		BalanceAfter:    e.BalanceAfter,
		Description:     e.Description,
		Remark:          e.Remark,
		Status:          e.Status,
		ResolvedBy:      e.ResolvedBy,
		ResolvedAt:      e.ResolvedAt,
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
	}
	if e.Transfer != nil {
		res.Direction = e.Transfer.Direction
		res.CounterpartyAccountNumber = e.Transfer.CounterpartyAccountNumber
	}
	return res
}

// ToLedgerEntryResponses converts a slice of domain.LedgerEntry to DTOs.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToLedgerEntryResponse(&entries[i])
	}
	return responses
}

// ListEntriesParams defines query parameters for an account statement.
type ListEntriesParams struct {
	Limit     int    `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// ListEntriesResponse wraps a page of ledger entries.
type ListEntriesResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken string                `json:"nextToken,omitempty"`
}

// ListPendingResponse wraps the entries awaiting approval.
type ListPendingResponse struct {
	Entries []LedgerEntryResponse `json:"entries"`
}
