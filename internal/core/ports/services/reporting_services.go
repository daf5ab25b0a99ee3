package services

import (
	"context"
	"time"

	"github.com/SscSPs/budget_ledger/internal/core/domain"
	"github.com/SscSPs/budget_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountBalanceQuerySvc derives balances from the entry stream.
type AccountBalanceQuerySvc interface {
	// TotalsForUser returns one row per account of the user, zero balances included.
	TotalsForUser(ctx context.Context, userID string, asOf *time.Time) ([]domain.AccountBalance, error)

	// BalanceForAccount sums every entry of the account.
	BalanceForAccount(ctx context.Context, accountID string) (decimal.Decimal, error)
}

// BudgetPeriodSpentQuerySvc computes how much landed in expense accounts during a period.
type BudgetPeriodSpentQuerySvc interface {
	Total(ctx context.Context, period domain.BudgetPeriod) (decimal.Decimal, error)
}

// BudgetPeriodAggregatesSvc recomputes and caches a period's aggregates.
type BudgetPeriodAggregatesSvc interface {
	Execute(ctx context.Context, period domain.BudgetPeriod) error
}

// BudgetPeriodSvc exposes cached budget period figures to callers.
type BudgetPeriodSvc interface {
	// GetSummary reads cached values; the result is always marked stale.
	GetSummary(ctx context.Context, userID, budgetPeriodID string) (*domain.BudgetPeriodSummary, error)

	// RefreshSummary recomputes the cache synchronously and returns the new summary.
	RefreshSummary(ctx context.Context, userID, budgetPeriodID string) (*domain.BudgetPeriodSummary, error)
}

// ExchangeRateSvcFacade manages FX rates used for display restatement only.
type ExchangeRateSvcFacade interface {
	CreateExchangeRate(ctx context.Context, userID string, req dto.CreateExchangeRateRequest) (*domain.ExchangeRate, error)

	// ConvertForDisplay restates amount in toCurrency using the latest rate on or before asOf.
	ConvertForDisplay(ctx context.Context, amount decimal.Decimal, fromCurrency, toCurrency string, asOf time.Time) (*decimal.Decimal, error)
}
