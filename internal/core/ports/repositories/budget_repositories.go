package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/budget_ledger/internal/core/domain"
)

// BudgetReader exposes the budget/category directory the ledger consumes.
type BudgetReader interface {
	// FindCategoriesByIDs retrieves multiple categories in one round trip.
	FindCategoriesByIDs(ctx context.Context, categoryIDs []string) (map[string]domain.Category, error)

	FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)

	FindBudgetPeriodByID(ctx context.Context, budgetPeriodID string) (*domain.BudgetPeriod, error)

	// FindBudgetPeriodCovering returns the period of budgetID with start_at <= at < end_at.
	FindBudgetPeriodCovering(ctx context.Context, budgetID string, at time.Time) (*domain.BudgetPeriod, error)
}

// BudgetWriter seeds the directory. Budget management itself lives outside the ledger.
type BudgetWriter interface {
	SaveBudget(ctx context.Context, budget domain.Budget) error
	SaveCategory(ctx context.Context, category domain.Category) error
	SaveBudgetPeriod(ctx context.Context, period domain.BudgetPeriod) error
}

// BudgetRepositoryFacade combines all budget-related repository interfaces
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
