package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/account_ledger/internal/middleware"
	"github.com/SscSPs/account_ledger/internal/utils"
)

// BaseService provides common functionality for all services
type BaseService struct {
	clock   func() time.Time
	newCode func(now time.Time) (string, error)
}

// ServiceOption is a functional option for configuring the ledger services.
type ServiceOption func(*BaseService)

// WithClock overrides the time source.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.clock = clock
	}
}

// WithCodeGenerator overrides how transaction codes are generated.
func WithCodeGenerator(gen func(now time.Time) (string, error)) ServiceOption {
	return func(s *BaseService) {
		s.newCode = gen
	}
}

func newBaseService(options ...ServiceOption) BaseService {
	base := BaseService{
		clock:   time.Now,
		newCode: utils.NewTransactionCode,
	}
	for _, option := range options {
		option(&base)
	}
	return base
}

func (s *BaseService) now() time.Time {
	return s.clock().UTC()
}

func (s *BaseService) nextTransactionCode() (string, error) {
	return s.newCode(s.now())
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}
