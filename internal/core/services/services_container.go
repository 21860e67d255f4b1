package services

import (
	portsrepo "github.com/SscSPs/account_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/account_ledger/internal/core/ports/services"
	"github.com/SscSPs/account_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, options ...ServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Guard and audit recorder are leaves; every balance-affecting service uses them.
	container.Guard = NewRestrictionGuard(repos.RestrictionRepo, cfg.WithdrawalLimitCap, options...)
	container.Audit = NewAuditRecorder(repos.AuditRepo, cfg.AuditTimeout, options...)

	container.Account = NewAccountService(repos, container.Audit, options...)
	container.Transfer = NewTransferService(repos, container.Guard, cfg.ApprovalThreshold, options...)
	container.Approval = NewApprovalService(repos, container.Audit, options...)
	container.Adjustment = NewAdjustmentService(repos, container.Guard, container.Audit, options...)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade = (*accountService)(nil)
	_ portssvc.TransferSvc      = (*transferService)(nil)
	_ portssvc.ApprovalSvc      = (*approvalService)(nil)
	_ portssvc.AdjustmentSvc    = (*adjustmentService)(nil)
)
