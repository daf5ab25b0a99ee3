package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/budget_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository derives balances and spend totals from the entry stream.
// Implementations are pure reads and may run against a replica.
type ReportingRepository interface {
	// SumBalancesByUser returns one row per account of the user, zero-balance accounts included.
	// Only entries whose transaction has effective_at <= asOf count when asOf is set.
	SumBalancesByUser(ctx context.Context, userID string, asOf *time.Time) ([]domain.AccountBalance, error)

	// SumBalanceForAccount sums every entry of the account.
	SumBalanceForAccount(ctx context.Context, accountID string) (decimal.Decimal, error)

	// SumSpentForBudgetPeriod sums categorized entries on EXPENSE accounts whose
	// transaction is attributed to the period.
	SumSpentForBudgetPeriod(ctx context.Context, budgetPeriodID string) (decimal.Decimal, error)
}
