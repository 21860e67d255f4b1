package services_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/account_ledger/internal/apperrors"
	"github.com/SscSPs/account_ledger/internal/core/domain"
	"github.com/SscSPs/account_ledger/internal/core/services"
	"github.com/SscSPs/account_ledger/internal/dto"
	"github.com/stretchr/testify/suite"
)

type ApprovalServiceTestSuite struct {
	ledgerSuite
	fixedNow time.Time
}

func TestApprovalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ApprovalServiceTestSuite))
}

func (s *ApprovalServiceTestSuite) SetupTest() {
	s.ledgerSuite.SetupTest()
	s.fixedNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	clock := services.WithClock(func() time.Time { return s.fixedNow })
	s.container = services.NewServiceContainer(s.cfg, s.store.RepositoryProvider(), clock)
}

func (s *ApprovalServiceTestSuite) queueLargeTransfer() string {
	res, err := s.container.Transfer.InitiateTransfer(s.ctx, dto.TransferRequest{
		FromAccountNumber: numberA,
		ToAccountNumber:   numberB,
		Amount:            domain.MustParseMoney("750.00"),
		Description:       "car",
	}, domain.Actor{ID: "user-a", CustomerID: "cust-a"})
	s.Require().NoError(err)
	s.Require().Equal(domain.StatusPendingApproval, res.Status)
	return res.TransactionCode
}

func (s *ApprovalServiceTestSuite) entry(code string) domain.LedgerEntry {
	e, err := s.store.FindEntryByCode(s.ctx, code)
	s.Require().NoError(err)
	return *e
}

func (s *ApprovalServiceTestSuite) TestApprove_UsesResolutionClock() {
	code := s.queueLargeTransfer()

	res, err := s.container.Approval.ApproveTransfer(s.ctx, code, adminID)
	s.Require().NoError(err)
	s.Equal(s.fixedNow, res.ResolvedAt)
	s.Equal("Approved by admin-1 on 2026-03-01T09:30:00Z", res.Remark)

	approved := s.entry(code)
	s.Equal(domain.MustParseMoney("1000.00"), approved.BalanceBefore)
	s.Equal(domain.MustParseMoney("250.00"), approved.BalanceAfter)
	s.Require().NotNil(approved.ResolvedAt)
	s.Equal(s.fixedNow, *approved.ResolvedAt)

	inbound := s.entry(domain.InboundLegCode(code))
	s.Equal(domain.MustParseMoney("200.00"), inbound.BalanceBefore)
	s.Equal(domain.MustParseMoney("950.00"), inbound.BalanceAfter)
	s.Equal("Transfer from "+numberA+" - car", inbound.Description)
}

func (s *ApprovalServiceTestSuite) TestApprove_StatementOrderFollowsApproval() {
	code := s.queueLargeTransfer()

	s.fixedNow = s.fixedNow.Add(time.Minute)
	credit, err := s.container.Adjustment.AdminCredit(s.ctx, dto.AdjustmentRequest{
		AccountNumber: numberA, Amount: domain.MustParseMoney("100.00"), Description: "bonus",
	}, adminID)
	s.Require().NoError(err)

	s.fixedNow = s.fixedNow.Add(time.Minute)
	_, err = s.container.Approval.ApproveTransfer(s.ctx, code, adminID)
	s.Require().NoError(err)

	page, err := s.container.Account.ListEntries(s.ctx, numberA, dto.ListEntriesParams{Limit: 1})
	s.Require().NoError(err)
	s.Require().Len(page.Entries, 1)
	s.Equal(code, page.Entries[0].TransactionCode)
	s.Equal(s.balance(numberA), page.Entries[0].BalanceAfter)
	s.Equal(domain.MustParseMoney("350.00"), page.Entries[0].BalanceAfter)
	s.Require().NotEmpty(page.NextToken)

	next, err := s.container.Account.ListEntries(s.ctx, numberA, dto.ListEntriesParams{Limit: 1, NextToken: page.NextToken})
	s.Require().NoError(err)
	s.Require().Len(next.Entries, 1)
	s.Equal(credit.TransactionCode, next.Entries[0].TransactionCode)
	s.Empty(next.NextToken)
}

func (s *ApprovalServiceTestSuite) TestApprove_RebasesOnCurrentBalance() {
	code := s.queueLargeTransfer()

	_, err := s.container.Adjustment.AdminCredit(s.ctx, dto.AdjustmentRequest{
		AccountNumber: numberA, Amount: domain.MustParseMoney("100.00"), Description: "bonus",
	}, adminID)
	s.Require().NoError(err)

	_, err = s.container.Approval.ApproveTransfer(s.ctx, code, adminID)
	s.Require().NoError(err)

	approved := s.entry(code)
	s.Equal(domain.MustParseMoney("1100.00"), approved.BalanceBefore)
	s.Equal(domain.MustParseMoney("350.00"), approved.BalanceAfter)
	s.NoError(approved.Validate())
	s.assertLedgerConsistent("acc-a", numberA)
}

func (s *ApprovalServiceTestSuite) TestApprove_InsufficientFundsLeavesEntryPending() {
	code := s.queueLargeTransfer()

	_, err := s.container.Adjustment.AdminDebit(s.ctx, dto.AdjustmentRequest{
		AccountNumber: numberA, Amount: domain.MustParseMoney("500.00"), Description: "fee",
	}, adminID)
	s.Require().NoError(err)

	_, err = s.container.Approval.ApproveTransfer(s.ctx, code, adminID)
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)

	s.Equal(domain.StatusPendingApproval, s.entry(code).Status)
	s.Equal(domain.MustParseMoney("500.00"), s.balance(numberA))
	s.Equal(domain.MustParseMoney("200.00"), s.balance(numberB))
	s.Empty(s.entries("acc-b"))
}

func (s *ApprovalServiceTestSuite) TestApprove_InactiveReceiverLeavesEntryPending() {
	code := s.queueLargeTransfer()
	s.seedAccount("acc-b", "cust-b", numberB, "200.00", domain.AccountClosed)

	_, err := s.container.Approval.ApproveTransfer(s.ctx, code, adminID)
	s.ErrorIs(err, apperrors.ErrAccountNotActive)
	s.Equal(domain.StatusPendingApproval, s.entry(code).Status)
	s.Equal(domain.MustParseMoney("1000.00"), s.balance(numberA))
}

func (s *ApprovalServiceTestSuite) TestApprove_Twice() {
	code := s.queueLargeTransfer()

	_, err := s.container.Approval.ApproveTransfer(s.ctx, code, adminID)
	s.Require().NoError(err)

	_, err = s.container.Approval.ApproveTransfer(s.ctx, code, adminID)
	s.ErrorIs(err, apperrors.ErrAlreadyProcessed)
	_, err = s.container.Approval.RejectTransfer(s.ctx, code, "late", adminID)
	s.ErrorIs(err, apperrors.ErrAlreadyProcessed)

	s.Equal(domain.MustParseMoney("250.00"), s.balance(numberA))
	s.Equal(domain.MustParseMoney("950.00"), s.balance(numberB))
	s.Len(s.entries("acc-b"), 1)
	s.Len(s.store.AuditEvents(), 1)
}

func (s *ApprovalServiceTestSuite) TestApprove_ConcurrentCallsSettleOnce() {
	code := s.queueLargeTransfer()

	var wg sync.WaitGroup
	results := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.container.Approval.ApproveTransfer(s.ctx, code, adminID)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		s.ErrorIs(err, apperrors.ErrAlreadyProcessed)
	}
	s.Equal(1, succeeded)
	s.Equal(domain.MustParseMoney("250.00"), s.balance(numberA))
	s.Equal(domain.MustParseMoney("950.00"), s.balance(numberB))
}

func (s *ApprovalServiceTestSuite) TestReject_WithReason() {
	code := s.queueLargeTransfer()

	res, err := s.container.Approval.RejectTransfer(s.ctx, code, "  suspicious payee ", adminID)
	s.Require().NoError(err)
	s.Equal(domain.StatusRejected, res.Status)
	s.Equal("suspicious payee", res.Remark)

	rejected := s.entry(code)
	s.Equal(domain.StatusRejected, rejected.Status)
	s.Contains(rejected.Description, "[REJECTED]")
	s.NotContains(rejected.Description, "[PENDING APPROVAL]")
	s.Equal(adminID, rejected.ResolvedBy)
	s.Equal(domain.MustParseMoney("1000.00"), s.balance(numberA))
	s.Empty(s.entries("acc-b"))

	events := s.store.AuditEvents()
	s.Require().Len(events, 1)
	s.Equal(domain.AuditTransactionRejected, events[0].Action)
	s.Equal("suspicious payee", events[0].Details["reason"])
}

func (s *ApprovalServiceTestSuite) TestReject_DefaultRemark() {
	code := s.queueLargeTransfer()

	res, err := s.container.Approval.RejectTransfer(s.ctx, code, "", adminID)
	s.Require().NoError(err)
	s.Equal("Rejected by admin-1 on 2026-03-01T09:30:00Z", res.Remark)

	_, err = s.container.Approval.ApproveTransfer(s.ctx, code, adminID)
	s.ErrorIs(err, apperrors.ErrAlreadyProcessed)
	s.Equal(domain.MustParseMoney("1000.00"), s.balance(numberA))
}

func (s *ApprovalServiceTestSuite) TestResolve_UnknownOrCompletedCode() {
	_, err := s.container.Approval.ApproveTransfer(s.ctx, "TXNUNKNOWN", adminID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.container.Approval.RejectTransfer(s.ctx, "", "x", adminID)
	s.ErrorIs(err, apperrors.ErrValidation)

	res, err := s.container.Transfer.InitiateTransfer(s.ctx, dto.TransferRequest{
		FromAccountNumber: numberA, ToAccountNumber: numberB, Amount: domain.MustParseMoney("10.00"), Description: "small",
	}, domain.Actor{ID: adminID})
	s.Require().NoError(err)

	_, err = s.container.Approval.ApproveTransfer(s.ctx, res.TransactionCode, adminID)
	s.True(errors.Is(err, apperrors.ErrAlreadyProcessed))
}

func (s *ApprovalServiceTestSuite) TestListPending_OldestFirst() {
	first := s.queueLargeTransfer()
	s.fixedNow = s.fixedNow.Add(time.Minute)
	second := s.queueLargeTransfer()

	pending, err := s.container.Approval.ListPendingApprovals(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(pending, 2)
	s.Equal(first, pending[0].TransactionCode)
	s.Equal(second, pending[1].TransactionCode)
}
