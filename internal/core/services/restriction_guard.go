package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/account_ledger/internal/apperrors"
	"github.com/SscSPs/account_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/account_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/account_ledger/internal/core/ports/services"
)

type restrictionGuard struct {
	BaseService
	restrictionRepo portsrepo.CustomerRestrictionReader
	withdrawalCap   domain.Money
}

// NewRestrictionGuard creates the guard consulted before every balance mutation.
// withdrawalCap applies only to customers under a WITHDRAWAL_LIMIT restriction.
func NewRestrictionGuard(repo portsrepo.CustomerRestrictionReader, withdrawalCap domain.Money, options ...ServiceOption) portssvc.RestrictionGuard {
	return &restrictionGuard{
		BaseService:     newBaseService(options...),
		restrictionRepo: repo,
		withdrawalCap:   withdrawalCap,
	}
}

var _ portssvc.RestrictionGuard = (*restrictionGuard)(nil)

func (g *restrictionGuard) Check(ctx context.Context, customerID string, op domain.OperationKind, amount domain.Money) error {
	state, err := g.restrictionRepo.FindRestriction(ctx, customerID)
	if err != nil {
		return fmt.Errorf("failed to load restriction state for customer %s: %w", customerID, err)
	}
	if err := evaluateRestriction(state, op, amount, g.withdrawalCap); err != nil {
		g.LogWarn(ctx, "Operation blocked by customer restriction",
			slog.String("customer_id", customerID),
			slog.String("operation", string(op)),
			slog.String("restriction", string(state.Kind)))
		return err
	}
	return nil
}

// evaluateRestriction applies the restriction policy table. Unknown kinds block.
func evaluateRestriction(state *domain.CustomerRestriction, op domain.OperationKind, amount, withdrawalCap domain.Money) error {
	if state == nil || !state.IsRestricted {
		return nil
	}

	blocked := func(defaultReason string) error {
		reason := state.Reason
		if reason == "" {
			reason = defaultReason
		}
		return apperrors.NewRestrictedError(string(state.Kind), reason)
	}

	switch state.Kind {
	case domain.RestrictionFrozen:
		return blocked("account is frozen")
	case domain.RestrictionPendingVerification:
		return blocked("customer verification is pending")
	case domain.RestrictionSuspiciousActivity:
		return blocked("account is under review for suspicious activity")
	case domain.RestrictionTransferBlocked:
		if op == domain.OpTransfer {
			return blocked("transfers are blocked")
		}
		return nil
	case domain.RestrictionWithdrawalLimit:
		if (op == domain.OpDebit || op == domain.OpTransfer) && amount > withdrawalCap {
			return apperrors.NewRestrictedError(string(state.Kind),
				fmt.Sprintf("amount %s exceeds withdrawal limit %s", amount, withdrawalCap))
		}
		return nil
	default:
		return blocked("unrecognised restriction")
	}
}
