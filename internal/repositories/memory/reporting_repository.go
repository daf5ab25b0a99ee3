package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/budget_ledger/internal/core/domain"
)

// SumBalancesByUser returns a row for every account of the user. With asOf set only
// transactions effective on or before it count.
func (s *Store) SumBalancesByUser(ctx context.Context, userID string, asOf *time.Time) ([]domain.AccountBalance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sums := make(map[string]decimal.Decimal)
	for _, txn := range s.transactions {
		if txn.UserID != userID || (asOf != nil && txn.EffectiveAt.After(*asOf)) {
			continue
		}
		for _, e := range txn.Entries {
			sums[e.AccountID] = sums[e.AccountID].Add(e.Amount)
		}
	}

	rows := make([]domain.AccountBalance, 0)
	for _, account := range s.accounts {
		if account.UserID != userID {
			continue
		}
		rows = append(rows, domain.AccountBalance{
			AccountID:     account.AccountID,
			Name:          account.Name,
			AccountType:   account.AccountType,
			CurrencyCode:  account.CurrencyCode,
			IsFundamental: account.IsFundamental,
			Balance:       sums[account.AccountID],
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows, nil
}

func (s *Store) SumBalanceForAccount(ctx context.Context, accountID string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := decimal.Zero
	for _, txn := range s.transactions {
		for _, e := range txn.Entries {
			if e.AccountID == accountID {
				sum = sum.Add(e.Amount)
			}
		}
	}
	return sum, nil
}

// SumSpentForBudgetPeriod adds the expense-account entries of the period's transactions
// whose effective category (entry category, else transaction category) exists.
func (s *Store) SumSpentForBudgetPeriod(ctx context.Context, budgetPeriodID string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := decimal.Zero
	for _, txn := range s.transactions {
		if txn.BudgetPeriodID == nil || *txn.BudgetPeriodID != budgetPeriodID {
			continue
		}
		for _, e := range txn.Entries {
			account, ok := s.accounts[e.AccountID]
			if !ok || account.AccountType != domain.Expense {
				continue
			}
			categoryID := e.CategoryID
			if categoryID == nil {
				categoryID = txn.CategoryID
			}
			if categoryID == nil {
				continue
			}
			if _, ok := s.categories[*categoryID]; !ok {
				continue
			}
			sum = sum.Add(e.Amount)
		}
	}
	return sum, nil
}
