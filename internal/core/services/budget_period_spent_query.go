package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/budget_ledger/internal/core/domain"
	"github.com/SscSPs/budget_ledger/internal/core/money"
	portsrepo "github.com/SscSPs/budget_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_ledger/internal/core/ports/services"
)

type budgetPeriodSpentQuery struct {
	reportingRepo portsrepo.ReportingRepository
}

// NewBudgetPeriodSpentQuery sums expense-account entries of transactions assigned to a period.
func NewBudgetPeriodSpentQuery(reportingRepo portsrepo.ReportingRepository) portssvc.BudgetPeriodSpentQuerySvc {
	return &budgetPeriodSpentQuery{reportingRepo: reportingRepo}
}

func (q *budgetPeriodSpentQuery) Total(ctx context.Context, period domain.BudgetPeriod) (decimal.Decimal, error) {
	spent, err := q.reportingRepo.SumSpentForBudgetPeriod(ctx, period.BudgetPeriodID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum spent for budget period %s: %w", period.BudgetPeriodID, err)
	}
	return money.Normalize(spent), nil
}
