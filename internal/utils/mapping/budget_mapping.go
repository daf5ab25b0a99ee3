package mapping

import (
	"github.com/SscSPs/budget_ledger/internal/core/domain"
	"github.com/SscSPs/budget_ledger/internal/models"
)

func ToModelBudget(d domain.Budget) models.Budget {
	return models.Budget{BudgetID: d.BudgetID, UserID: d.UserID, Name: d.Name, CurrencyCode: d.CurrencyCode}
}

func ToDomainBudget(m models.Budget) domain.Budget {
	return domain.Budget{BudgetID: m.BudgetID, UserID: m.UserID, Name: m.Name, CurrencyCode: m.CurrencyCode}
}

func ToModelCategory(d domain.Category) models.Category {
	return models.Category{CategoryID: d.CategoryID, UserID: d.UserID, Name: d.Name, BudgetID: d.BudgetID}
}

func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{CategoryID: m.CategoryID, UserID: m.UserID, Name: m.Name, BudgetID: m.BudgetID}
}

// ToModelBudgetPeriod converts a domain BudgetPeriod to a model BudgetPeriod
func ToModelBudgetPeriod(d domain.BudgetPeriod) models.BudgetPeriod {
	return models.BudgetPeriod{
		BudgetPeriodID: d.BudgetPeriodID,
		BudgetID:       d.BudgetID,
		StartAt:        d.StartAt,
		EndAt:          d.EndAt,
		Amount:         d.Amount,
		CurrencyCode:   d.CurrencyCode,
	}
}

// ToDomainBudgetPeriod converts a model BudgetPeriod to a domain BudgetPeriod
func ToDomainBudgetPeriod(m models.BudgetPeriod) domain.BudgetPeriod {
	return domain.BudgetPeriod{
		BudgetPeriodID: m.BudgetPeriodID,
		BudgetID:       m.BudgetID,
		StartAt:        m.StartAt,
		EndAt:          m.EndAt,
		Amount:         m.Amount,
		CurrencyCode:   m.CurrencyCode,
	}
}
