package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/SscSPs/budget_ledger/internal/core/domain"
	"github.com/SscSPs/budget_ledger/internal/core/money"
	portsrepo "github.com/SscSPs/budget_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_ledger/internal/core/ports/services"
)

type budgetPeriodAggregates struct {
	BaseService
	spent      portssvc.BudgetPeriodSpentQuerySvc
	aggregates portsrepo.CachedAggregateRepository
}

// NewBudgetPeriodAggregates creates the action that recomputes and caches a period's spent total.
func NewBudgetPeriodAggregates(spent portssvc.BudgetPeriodSpentQuerySvc, aggregates portsrepo.CachedAggregateRepository, options ...ServiceOption) portssvc.BudgetPeriodAggregatesSvc {
	return &budgetPeriodAggregates{
		BaseService: newBaseService(applyOptions(options)),
		spent:       spent,
		aggregates:  aggregates,
	}
}

var _ portssvc.BudgetPeriodAggregatesSvc = (*budgetPeriodAggregates)(nil)

func (a *budgetPeriodAggregates) Execute(ctx context.Context, period domain.BudgetPeriod) error {
	total, err := a.spent.Total(ctx, period)
	if err != nil {
		return err
	}

	aggregate := domain.CachedAggregate{
		AggregateID:  uuid.NewString(),
		Ref:          period.AggregateRef(),
		Key:          domain.AggregateSpent,
		ValueDecimal: &total,
		RefreshedAt:  a.Now(),
	}
	if err := a.aggregates.UpsertAggregate(ctx, aggregate); err != nil {
		a.LogError(ctx, err, "Failed to cache budget period aggregate", slog.String("budget_period_id", period.BudgetPeriodID))
		return fmt.Errorf("failed to cache spent for budget period %s: %w", period.BudgetPeriodID, err)
	}

	a.LogDebug(ctx, "Budget period aggregate refreshed",
		slog.String("budget_period_id", period.BudgetPeriodID),
		slog.String("spent", money.String(total)))
	return nil
}
