package handlers

import (
	"context"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/account_ledger/internal/core/ports/services"
	"github.com/SscSPs/account_ledger/internal/dto"
	"github.com/SscSPs/account_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// adminHandler serves the operator endpoints: adjustments, approvals and account review.
type adminHandler struct {
	accountService    portssvc.AccountWriterSvc
	approvalService   portssvc.ApprovalSvc
	adjustmentService portssvc.AdjustmentSvc
}

func newAdminHandler(accounts portssvc.AccountWriterSvc, approvals portssvc.ApprovalSvc, adjustments portssvc.AdjustmentSvc) *adminHandler {
	return &adminHandler{
		accountService:    accounts,
		approvalService:   approvals,
		adjustmentService: adjustments,
	}
}

func registerAdminRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newAdminHandler(services.Account, services.Approval, services.Adjustment)

	admin := rg.Group("/admin", middleware.RequireRole(middleware.RoleAdmin))
	{
		admin.POST("/accounts/:accountNumber/review", h.reviewAccount)
		admin.POST("/credits", h.adminCredit)
		admin.POST("/debits", h.adminDebit)
		admin.GET("/approvals", h.listPendingApprovals)
		admin.POST("/approvals/:transactionCode/approve", h.approveTransfer)
		admin.POST("/approvals/:transactionCode/reject", h.rejectTransfer)
	}
}

// reviewAccount godoc
// @Summary Approve or reject a pending account
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   accountNumber path string true "10-digit account number"
// @Param   review body dto.ReviewAccountRequest true "Decision"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Account already reviewed"
// @Failure 500 {object} map[string]string "Failed to review account"
// @Security BearerAuth
// @Router /admin/accounts/{accountNumber}/review [post]
func (h *adminHandler) reviewAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	p, ok := principal(c, logger)
	if !ok {
		return
	}
	var req dto.ReviewAccountRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	account, err := h.accountService.ReviewAccount(c.Request.Context(), c.Param("accountNumber"), req, p.ActorID)
	if err != nil {
		respondError(c, logger, err, "Failed to review account")
		return
	}
	logger.Info("Account reviewed", slog.String("account_number", account.AccountNumber), slog.String("status", string(account.Status)))
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// adminCredit godoc
// @Summary Credit an account
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   adjustment body dto.AdjustmentRequest true "Credit details"
// @Success 200 {object} dto.AdjustmentResult
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 403 {object} map[string]string "Forbidden or customer restricted"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Account not active"
// @Failure 503 {object} map[string]string "Ledger busy, retry"
// @Failure 500 {object} map[string]string "Failed to credit account"
// @Security BearerAuth
// @Router /admin/credits [post]
func (h *adminHandler) adminCredit(c *gin.Context) {
	h.adjust(c, h.adjustmentService.AdminCredit, "Failed to credit account")
}

// adminDebit godoc
// @Summary Debit an account
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   adjustment body dto.AdjustmentRequest true "Debit details"
// @Success 200 {object} dto.AdjustmentResult
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 403 {object} map[string]string "Forbidden or customer restricted"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Account not active"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Failure 503 {object} map[string]string "Ledger busy, retry"
// @Failure 500 {object} map[string]string "Failed to debit account"
// @Security BearerAuth
// @Router /admin/debits [post]
func (h *adminHandler) adminDebit(c *gin.Context) {
	h.adjust(c, h.adjustmentService.AdminDebit, "Failed to debit account")
}

type adjustFunc func(ctx context.Context, req dto.AdjustmentRequest, actorID string) (*dto.AdjustmentResult, error)

func (h *adminHandler) adjust(c *gin.Context, apply adjustFunc, failureMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	p, ok := principal(c, logger)
	if !ok {
		return
	}
	var req dto.AdjustmentRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	res, err := apply(c.Request.Context(), req, p.ActorID)
	if err != nil {
		respondError(c, logger, err, failureMsg)
		return
	}
	logger.Info("Adjustment applied", slog.String("transaction_code", res.TransactionCode))
	c.JSON(http.StatusOK, res)
}

// listPendingApprovals godoc
// @Summary List transfers awaiting approval
// @Description Oldest first
// @Tags admin
// @Produce  json
// @Success 200 {object} dto.ListPendingResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list pending approvals"
// @Security BearerAuth
// @Router /admin/approvals [get]
func (h *adminHandler) listPendingApprovals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entries, err := h.approvalService.ListPendingApprovals(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list pending approvals")
		return
	}
	c.JSON(http.StatusOK, dto.ListPendingResponse{Entries: dto.ToLedgerEntryResponses(entries)})
}

// approveTransfer godoc
// @Summary Approve a pending transfer
// @Description Settles a queued transfer against the sender's current balance
// @Tags admin
// @Produce  json
// @Param   transactionCode path string true "Transaction code"
// @Success 200 {object} dto.ResolutionResult
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Already processed or receiver not active"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Failure 503 {object} map[string]string "Ledger busy, retry"
// @Failure 500 {object} map[string]string "Failed to approve transfer"
// @Security BearerAuth
// @Router /admin/approvals/{transactionCode}/approve [post]
func (h *adminHandler) approveTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	p, ok := principal(c, logger)
	if !ok {
		return
	}
	res, err := h.approvalService.ApproveTransfer(c.Request.Context(), c.Param("transactionCode"), p.ActorID)
	if err != nil {
		respondError(c, logger, err, "Failed to approve transfer")
		return
	}
	c.JSON(http.StatusOK, res)
}

// rejectTransfer godoc
// @Summary Reject a pending transfer
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   transactionCode path string true "Transaction code"
// @Param   rejection body dto.RejectTransferRequest false "Optional reason"
// @Success 200 {object} dto.ResolutionResult
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Already processed"
// @Failure 500 {object} map[string]string "Failed to reject transfer"
// @Security BearerAuth
// @Router /admin/approvals/{transactionCode}/reject [post]
func (h *adminHandler) rejectTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	p, ok := principal(c, logger)
	if !ok {
		return
	}
	var req dto.RejectTransferRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, logger, &req) {
		return
	}

	res, err := h.approvalService.RejectTransfer(c.Request.Context(), c.Param("transactionCode"), req.Reason, p.ActorID)
	if err != nil {
		respondError(c, logger, err, "Failed to reject transfer")
		return
	}
	c.JSON(http.StatusOK, res)
}
