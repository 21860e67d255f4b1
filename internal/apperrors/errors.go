package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller may not act on the resource.
var ErrForbidden = errors.New("forbidden")

// Ledger errors. Validation and resource errors may be retried by the caller
// once the condition is corrected; ErrBusy may be retried as is.
var (
	ErrInvalidAmount     = fmt.Errorf("%w: amount must be positive", ErrValidation)
	ErrSelfTransfer      = fmt.Errorf("%w: cannot transfer to the same account", ErrValidation)
	ErrAccountNotFound   = fmt.Errorf("account %w", ErrNotFound)
	ErrAccountNotActive  = errors.New("account is not active")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrRestrictedAccount = errors.New("account is restricted")
	ErrAlreadyProcessed  = errors.New("transaction already processed")
	ErrBusy              = errors.New("resource busy, retry later")
)

// Fatal conditions. They indicate a programming bug and must never be swallowed.
var (
	ErrInvariantViolation       = errors.New("ledger invariant violation")
	ErrDuplicateTransactionCode = errors.New("duplicate transaction code")
)

// RestrictedError carries the restriction that blocked an operation.
type RestrictedError struct {
	Kind   string
	Reason string
}

func (e *RestrictedError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %s", ErrRestrictedAccount.Error(), e.Kind)
	}
	return fmt.Sprintf("%s: %s (%s)", ErrRestrictedAccount.Error(), e.Kind, e.Reason)
}

// Unwrap lets errors.Is(err, ErrRestrictedAccount) match.
func (e *RestrictedError) Unwrap() error {
	return ErrRestrictedAccount
}

// NewRestrictedError builds a RestrictedError for the given kind and reason.
func NewRestrictedError(kind, reason string) error {
	return &RestrictedError{Kind: kind, Reason: reason}
}

// AppError wraps infrastructure failures with a status hint for the transport layer.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// IsRetryable reports whether the caller may retry the same request unchanged.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrBusy)
}

// IsFatal reports whether err signals a broken ledger invariant.
func IsFatal(err error) bool {
	return errors.Is(err, ErrInvariantViolation) || errors.Is(err, ErrDuplicateTransactionCode)
}
