package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/budget_ledger/internal/apperrors"
	"github.com/SscSPs/budget_ledger/internal/core/domain"
)

func (s *Store) SaveBudget(ctx context.Context, budget domain.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.budgets[budget.BudgetID]; exists {
		return apperrors.NewDuplicateError("budgets_pkey", fmt.Errorf("budget %s exists", budget.BudgetID))
	}
	s.budgets[budget.BudgetID] = budget
	return nil
}

func (s *Store) SaveCategory(ctx context.Context, category domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.categories[category.CategoryID]; exists {
		return apperrors.NewDuplicateError("categories_pkey", fmt.Errorf("category %s exists", category.CategoryID))
	}
	if category.BudgetID != nil {
		if _, ok := s.budgets[*category.BudgetID]; !ok {
			return fmt.Errorf("category %s references missing budget %s", category.CategoryID, *category.BudgetID)
		}
	}
	s.categories[category.CategoryID] = category
	return nil
}

func (s *Store) SaveBudgetPeriod(ctx context.Context, period domain.BudgetPeriod) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.periods[period.BudgetPeriodID]; exists {
		return apperrors.NewDuplicateError("budget_periods_pkey", fmt.Errorf("budget period %s exists", period.BudgetPeriodID))
	}
	if _, ok := s.budgets[period.BudgetID]; !ok {
		return fmt.Errorf("budget period %s references missing budget %s", period.BudgetPeriodID, period.BudgetID)
	}
	if !period.EndAt.After(period.StartAt) {
		return fmt.Errorf("%w: budget period must end after it starts", apperrors.ErrValidation)
	}
	s.periods[period.BudgetPeriodID] = period
	return nil
}

func (s *Store) FindCategoriesByIDs(ctx context.Context, categoryIDs []string) (map[string]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := make(map[string]domain.Category, len(categoryIDs))
	for _, id := range categoryIDs {
		if category, ok := s.categories[id]; ok {
			found[id] = category
		}
	}
	return found, nil
}

func (s *Store) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	budget, ok := s.budgets[budgetID]
	if !ok {
		return nil, apperrors.NewNotFoundError("budget " + budgetID)
	}
	return &budget, nil
}

func (s *Store) FindBudgetPeriodByID(ctx context.Context, budgetPeriodID string) (*domain.BudgetPeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	period, ok := s.periods[budgetPeriodID]
	if !ok {
		return nil, apperrors.NewNotFoundError("budget period " + budgetPeriodID)
	}
	return &period, nil
}

// FindBudgetPeriodCovering returns the period of the budget containing at. When periods
// overlap the one that started last wins.
func (s *Store) FindBudgetPeriodCovering(ctx context.Context, budgetID string, at time.Time) (*domain.BudgetPeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var best *domain.BudgetPeriod
	for _, period := range s.periods {
		if period.BudgetID != budgetID || !period.Contains(at) {
			continue
		}
		if best == nil || period.StartAt.After(best.StartAt) {
			p := period
			best = &p
		}
	}
	if best == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("budget period of %s covering %s", budgetID, at.Format(time.RFC3339)))
	}
	return best, nil
}
