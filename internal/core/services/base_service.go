package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/budget_ledger/internal/events"
	"github.com/SscSPs/budget_ledger/internal/middleware"
)

// serviceOptions holds dependencies shared by every service and settable through ServiceOption.
type serviceOptions struct {
	clock      func() time.Time
	dispatcher events.Dispatcher
}

// ServiceOption is a functional option for configuring services
type ServiceOption func(*serviceOptions)

// WithClock overrides time.Now, mainly for tests.
func WithClock(clock func() time.Time) ServiceOption {
	return func(o *serviceOptions) {
		o.clock = clock
	}
}

// WithEventDispatcher sets where committed-write events are sent.
func WithEventDispatcher(dispatcher events.Dispatcher) ServiceOption {
	return func(o *serviceOptions) {
		o.dispatcher = dispatcher
	}
}

func applyOptions(options []ServiceOption) serviceOptions {
	o := serviceOptions{}
	for _, option := range options {
		option(&o)
	}
	return o
}

// BaseService provides common functionality for all services
type BaseService struct {
	clock func() time.Time
}

func newBaseService(o serviceOptions) BaseService {
	return BaseService{clock: o.clock}
}

// Now returns the current UTC time from the configured clock.
func (s *BaseService) Now() time.Time {
	if s.clock != nil {
		return s.clock().UTC()
	}
	return time.Now().UTC()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogWarn logs a caller-fixable rejection.
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Warn(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}
