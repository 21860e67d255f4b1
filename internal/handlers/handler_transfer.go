package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/account_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/account_ledger/internal/core/ports/services"
	"github.com/SscSPs/account_ledger/internal/dto"
	"github.com/SscSPs/account_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type transferHandler struct {
	transferService portssvc.TransferSvc
}

func newTransferHandler(ts portssvc.TransferSvc) *transferHandler {
	return &transferHandler{transferService: ts}
}

func registerTransferRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvc) {
	h := newTransferHandler(transferService)
	rg.POST("/transfers", h.initiateTransfer)
}

// initiateTransfer godoc
// @Summary Initiate a transfer between two accounts
// @Description Transfers below the approval threshold settle at once (201). Larger transfers are queued for admin approval (202) and move no money until approved.
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Success 201 {object} dto.TransferResult "Completed"
// @Success 202 {object} dto.TransferResult "Pending approval"
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden or customer restricted"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Account not active"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Failure 503 {object} map[string]string "Ledger busy, retry"
// @Failure 500 {object} map[string]string "Failed to process transfer"
// @Security BearerAuth
// @Router /transfers [post]
func (h *transferHandler) initiateTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	p, ok := principal(c, logger)
	if !ok {
		return
	}
	var req dto.TransferRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	actor := domain.Actor{ID: p.ActorID}
	if !p.IsAdmin() {
		actor.CustomerID = p.CustomerID
	}

	res, err := h.transferService.InitiateTransfer(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to process transfer")
		return
	}

	status := http.StatusCreated
	if res.RequiresApproval {
		status = http.StatusAccepted
	}
	logger.Info("Transfer accepted", slog.String("transaction_code", res.TransactionCode), slog.String("status", string(res.Status)))
	c.JSON(status, res)
}
