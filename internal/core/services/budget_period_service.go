package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/budget_ledger/internal/apperrors"
	"github.com/SscSPs/budget_ledger/internal/core/domain"
	"github.com/SscSPs/budget_ledger/internal/core/money"
	portsrepo "github.com/SscSPs/budget_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_ledger/internal/core/ports/services"
)

type budgetPeriodService struct {
	BaseService
	budgetRepo portsrepo.BudgetReader
	aggregates portsrepo.CachedAggregateRepository
	refresher  portssvc.BudgetPeriodAggregatesSvc
}

func NewBudgetPeriodService(budgetRepo portsrepo.BudgetReader, aggregates portsrepo.CachedAggregateRepository, refresher portssvc.BudgetPeriodAggregatesSvc, options ...ServiceOption) portssvc.BudgetPeriodSvc {
	return &budgetPeriodService{
		BaseService: newBaseService(applyOptions(options)),
		budgetRepo:  budgetRepo,
		aggregates:  aggregates,
		refresher:   refresher,
	}
}

var _ portssvc.BudgetPeriodSvc = (*budgetPeriodService)(nil)

func (s *budgetPeriodService) GetSummary(ctx context.Context, userID, budgetPeriodID string) (*domain.BudgetPeriodSummary, error) {
	period, err := s.loadOwnedPeriod(ctx, userID, budgetPeriodID)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, period)
}

func (s *budgetPeriodService) RefreshSummary(ctx context.Context, userID, budgetPeriodID string) (*domain.BudgetPeriodSummary, error) {
	period, err := s.loadOwnedPeriod(ctx, userID, budgetPeriodID)
	if err != nil {
		return nil, err
	}
	if err := s.refresher.Execute(ctx, *period); err != nil {
		return nil, err
	}
	return s.summarize(ctx, period)
}

// summarize reads the cached spent value. A period that was never refreshed reports
// zero spent and no refresh time.
func (s *budgetPeriodService) summarize(ctx context.Context, period *domain.BudgetPeriod) (*domain.BudgetPeriodSummary, error) {
	summary := &domain.BudgetPeriodSummary{
		BudgetPeriodID: period.BudgetPeriodID,
		Amount:         money.Normalize(period.Amount),
		Spent:          decimal.Zero,
		CurrencyCode:   period.CurrencyCode,
		Stale:          true,
	}

	cached, err := s.aggregates.FindAggregate(ctx, period.AggregateRef(), domain.AggregateSpent, nil)
	switch {
	case err == nil:
		if cached.ValueDecimal != nil {
			summary.Spent = money.Normalize(*cached.ValueDecimal)
		}
		refreshedAt := cached.RefreshedAt
		summary.RefreshedAt = &refreshedAt
	case errors.Is(err, apperrors.ErrNotFound):
	default:
		return nil, fmt.Errorf("failed to read cached aggregate: %w", err)
	}

	summary.Remaining = money.Remaining(summary.Amount, summary.Spent)
	summary.UsagePercent = money.UsagePercent(summary.Spent, summary.Amount)
	return summary, nil
}

func (s *budgetPeriodService) loadOwnedPeriod(ctx context.Context, userID, budgetPeriodID string) (*domain.BudgetPeriod, error) {
	period, err := s.budgetRepo.FindBudgetPeriodByID(ctx, budgetPeriodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrBudgetPeriodNotFound, budgetPeriodID)
		}
		return nil, fmt.Errorf("failed to load budget period: %w", err)
	}
	budget, err := s.budgetRepo.FindBudgetByID(ctx, period.BudgetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrBudgetPeriodNotFound, budgetPeriodID)
		}
		return nil, fmt.Errorf("failed to load budget: %w", err)
	}
	if budget.UserID != userID {
		return nil, fmt.Errorf("%w: %s", ErrBudgetPeriodNotFound, budgetPeriodID)
	}
	return period, nil
}
