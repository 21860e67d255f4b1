package handlers_test

import (
	"context"

	"github.com/SscSPs/account_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/account_ledger/internal/core/ports/services"
	"github.com/SscSPs/account_ledger/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccount(ctx context.Context, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccountsByCustomer(ctx context.Context, customerID string) ([]domain.Account, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListEntries(ctx context.Context, accountNumber string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, accountNumber, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}

func (m *MockAccountService) OpenAccount(ctx context.Context, req dto.OpenAccountRequest, actorID string) (*domain.Account, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ReviewAccount(ctx context.Context, accountNumber string, req dto.ReviewAccountRequest, actorID string) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Mock TransferService ---
type MockTransferService struct {
	mock.Mock
}

func (m *MockTransferService) InitiateTransfer(ctx context.Context, req dto.TransferRequest, actor domain.Actor) (*dto.TransferResult, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TransferResult), args.Error(1)
}

// --- Mock ApprovalService ---
type MockApprovalService struct {
	mock.Mock
}

func (m *MockApprovalService) ApproveTransfer(ctx context.Context, transactionCode string, approverID string) (*dto.ResolutionResult, error) {
	args := m.Called(ctx, transactionCode, approverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ResolutionResult), args.Error(1)
}

func (m *MockApprovalService) RejectTransfer(ctx context.Context, transactionCode string, reason string, approverID string) (*dto.ResolutionResult, error) {
	args := m.Called(ctx, transactionCode, reason, approverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ResolutionResult), args.Error(1)
}

func (m *MockApprovalService) ListPendingApprovals(ctx context.Context) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

// --- Mock AdjustmentService ---
type MockAdjustmentService struct {
	mock.Mock
}

func (m *MockAdjustmentService) AdminCredit(ctx context.Context, req dto.AdjustmentRequest, actorID string) (*dto.AdjustmentResult, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AdjustmentResult), args.Error(1)
}

func (m *MockAdjustmentService) AdminDebit(ctx context.Context, req dto.AdjustmentRequest, actorID string) (*dto.AdjustmentResult, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AdjustmentResult), args.Error(1)
}

// Ensure mocks implement the interfaces
var (
	_ portssvc.AccountSvcFacade = (*MockAccountService)(nil)
	_ portssvc.TransferSvc      = (*MockTransferService)(nil)
	_ portssvc.ApprovalSvc      = (*MockApprovalService)(nil)
	_ portssvc.AdjustmentSvc    = (*MockAdjustmentService)(nil)
)
