package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/account_ledger/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// busyRetryAfterSeconds is sent in Retry-After when a lock could not be taken in time.
const busyRetryAfterSeconds = "1"

// respondError maps a service error onto an HTTP response. Unknown errors are
// logged and reported as 500 without leaking their text.
func respondError(c *gin.Context, logger *slog.Logger, err error, failureMsg string) {
	var restricted *apperrors.RestrictedError
	switch {
	case errors.As(err, &restricted):
		logger.Warn("Operation blocked by restriction", slog.String("kind", restricted.Kind))
		c.JSON(http.StatusForbidden, gin.H{"error": "Account restricted", "kind": restricted.Kind, "reason": restricted.Reason})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		logger.Info("Insufficient funds", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrAccountNotActive), errors.Is(err, apperrors.ErrAlreadyProcessed):
		logger.Info("Conflicting state", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case apperrors.IsRetryable(err):
		logger.Warn("Ledger busy", slog.String("error", err.Error()))
		c.Header("Retry-After", busyRetryAfterSeconds)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Ledger is busy, retry shortly"})
	default:
		logger.Error(failureMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": failureMsg})
	}
}

// bindJSON binds the request body, answering 400 on failure.
func bindJSON(c *gin.Context, logger *slog.Logger, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		logger.Warn("Failed to bind JSON", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return false
	}
	return true
}
