package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/account_ledger/internal/apperrors"
	"github.com/SscSPs/account_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/account_ledger/internal/core/ports/repositories"
	"github.com/google/uuid"
)

// ledgerJournal is the append-only record of balance mutations. It is used
// inside units of work opened by the transfer, approval, adjustment and account
// services and never opens one itself.
type ledgerJournal struct {
	BaseService
}

// append validates entry and inserts it.
func (j *ledgerJournal) append(ctx context.Context, tx portsrepo.TxRepositories, entry domain.LedgerEntry) (domain.LedgerEntry, error) {
	if entry.EntryID == "" {
		entry.EntryID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = j.now()
	}
	if err := entry.Validate(); err != nil {
		j.LogError(ctx, err, "Refusing to append ledger entry", slog.String("transaction_code", entry.TransactionCode))
		return domain.LedgerEntry{}, err
	}
	if err := tx.Ledger().InsertEntry(ctx, entry); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateTransactionCode) {
			j.LogError(ctx, err, "Transaction code collision", slog.String("transaction_code", entry.TransactionCode))
		}
		return domain.LedgerEntry{}, fmt.Errorf("failed to append entry %s: %w", entry.TransactionCode, err)
	}
	return entry, nil
}

// resolve persists the final state of a pending entry.
func (j *ledgerJournal) resolve(ctx context.Context, tx portsrepo.TxRepositories, entry domain.LedgerEntry) error {
	if err := entry.Validate(); err != nil {
		j.LogError(ctx, err, "Refusing to resolve ledger entry", slog.String("transaction_code", entry.TransactionCode))
		return err
	}
	if err := tx.Ledger().UpdateEntry(ctx, entry); err != nil {
		return fmt.Errorf("failed to resolve entry %s: %w", entry.TransactionCode, err)
	}
	return nil
}

// post applies entry.Amount to a locked account and appends the entry with the
// resulting before and after balances. account is updated in place.
func (j *ledgerJournal) post(ctx context.Context, tx portsrepo.TxRepositories, account *domain.Account, entry domain.LedgerEntry) (domain.LedgerEntry, error) {
	before := account.Balance
	after, err := mutateBalance(ctx, tx, account, entry.Amount, entry.Kind, entry.CreatedBy)
	if err != nil {
		return domain.LedgerEntry{}, err
	}
	entry.AccountID = account.AccountID
	entry.AccountNumber = account.AccountNumber
	entry.BalanceBefore = before
	entry.BalanceAfter = after
	entry.Status = domain.StatusCompleted
	return j.append(ctx, tx, entry)
}

// postInboundLeg credits the receiving side of a transfer under the -IN code.
func (j *ledgerJournal) postInboundLeg(ctx context.Context, tx portsrepo.TxRepositories, receiver *domain.Account, senderNumber, code string, amount domain.Money, note, actorID string) (domain.LedgerEntry, error) {
	return j.post(ctx, tx, receiver, domain.LedgerEntry{
		TransactionCode: domain.InboundLegCode(code),
		Kind:            domain.KindTransfer,
		Amount:          amount,
		Description:     inboundDescription(senderNumber, note),
		Transfer:        &domain.TransferLeg{Direction: domain.LegIn, CounterpartyAccountNumber: senderNumber},
		CreatedBy:       actorID,
	})
}
