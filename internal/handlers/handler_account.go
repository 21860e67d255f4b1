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

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.openAccount)
		accounts.GET("/:accountNumber", h.getAccount)
		accounts.GET("/:accountNumber/entries", h.listEntries)
	}
	rg.GET("/customers/:customerID/accounts", h.listCustomerAccounts)
}

// principal fetches the caller or answers 401.
func principal(c *gin.Context, logger *slog.Logger) (middleware.Principal, bool) {
	p, ok := middleware.GetPrincipalFromContext(c)
	if !ok {
		logger.Error("Principal not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return p, ok
}

// canAccessCustomer reports whether p may see data of customerID.
func canAccessCustomer(p middleware.Principal, customerID string) bool {
	return p.IsAdmin() || p.CustomerID == customerID
}

// openAccount godoc
// @Summary Open a new account
// @Description Opens a PENDING account for a customer, optionally with an opening deposit. Customers may only open accounts for themselves.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.OpenAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to open account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) openAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	p, ok := principal(c, logger)
	if !ok {
		return
	}
	var req dto.OpenAccountRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	if !canAccessCustomer(p, req.CustomerID) {
		logger.Warn("Customer attempted to open an account for someone else", slog.String("customer_id", req.CustomerID))
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	account, err := h.accountService.OpenAccount(c.Request.Context(), req, p.ActorID)
	if err != nil {
		respondError(c, logger, err, "Failed to open account")
		return
	}

	logger.Info("Account opened", slog.String("account_number", account.AccountNumber))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// loadVisibleAccount fetches an account and enforces customer ownership.
func (h *accountHandler) loadVisibleAccount(c *gin.Context, logger *slog.Logger, p middleware.Principal) (*domain.Account, bool) {
	account, err := h.accountService.GetAccount(c.Request.Context(), c.Param("accountNumber"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve account")
		return nil, false
	}
	if !canAccessCustomer(p, account.CustomerID) {
		logger.Warn("Customer forbidden to access account", slog.String("account_number", account.AccountNumber))
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return nil, false
	}
	return account, true
}

// getAccount godoc
// @Summary Get an account by number
// @Description Retrieves an account and its current balance
// @Tags accounts
// @Produce  json
// @Param   accountNumber path string true "10-digit account number"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Malformed account number"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (another customer's account)"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Security BearerAuth
// @Router /accounts/{accountNumber} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	p, ok := principal(c, logger)
	if !ok {
		return
	}
	account, ok := h.loadVisibleAccount(c, logger, p)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listEntries godoc
// @Summary List ledger entries of an account
// @Description Lists an account's ledger entries newest first using token-based pagination
// @Tags accounts
// @Produce  json
// @Param   accountNumber path string true "10-digit account number"
// @Param   limit query int false "Number of entries to return (default 20, max 100)"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Security BearerAuth
// @Router /accounts/{accountNumber}/entries [get]
func (h *accountHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	p, ok := principal(c, logger)
	if !ok {
		return
	}
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	account, ok := h.loadVisibleAccount(c, logger, p)
	if !ok {
		return
	}

	res, err := h.accountService.ListEntries(c.Request.Context(), account.AccountNumber, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list entries")
		return
	}
	c.JSON(http.StatusOK, res)
}

// listCustomerAccounts godoc
// @Summary List accounts of a customer
// @Tags accounts
// @Produce  json
// @Param   customerID path string true "Customer ID"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Security BearerAuth
// @Router /customers/{customerID}/accounts [get]
func (h *accountHandler) listCustomerAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	p, ok := principal(c, logger)
	if !ok {
		return
	}
	customerID := c.Param("customerID")
	if !canAccessCustomer(p, customerID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	accounts, err := h.accountService.ListAccountsByCustomer(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, logger, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}
