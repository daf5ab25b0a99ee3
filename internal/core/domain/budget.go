package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget groups budget periods for a user.
type Budget struct {
	BudgetID     string `json:"budgetID"`
	UserID       string `json:"userID"`
	Name         string `json:"name"`
	CurrencyCode string `json:"currencyCode"`
}

// Category tags transactions and entries; it may link to a budget.
type Category struct {
	CategoryID string  `json:"categoryID"`
	UserID     string  `json:"userID"`
	Name       string  `json:"name"`
	BudgetID   *string `json:"budgetID,omitempty"`
}

// BudgetPeriod is the half-open range [StartAt, EndAt) of a budget.
type BudgetPeriod struct {
	BudgetPeriodID string          `json:"budgetPeriodID"`
	BudgetID       string          `json:"budgetID"`
	StartAt        time.Time       `json:"startAt"`
	EndAt          time.Time       `json:"endAt"`
	Amount         decimal.Decimal `json:"amount"`
	CurrencyCode   string          `json:"currencyCode"`
}

// Contains reports whether at falls inside the period.
func (p BudgetPeriod) Contains(at time.Time) bool {
	return !at.Before(p.StartAt) && at.Before(p.EndAt)
}

// AggregateRef implements Aggregatable.
func (p BudgetPeriod) AggregateRef() AggregateRef {
	return AggregateRef{Kind: AggregatableBudgetPeriod, ID: p.BudgetPeriodID}
}

// BudgetPeriodSummary is the cached spend picture of a period.
// Values derived from Spent are only as fresh as RefreshedAt.
type BudgetPeriodSummary struct {
	BudgetPeriodID string          `json:"budgetPeriodID"`
	Amount         decimal.Decimal `json:"amount"`
	Spent          decimal.Decimal `json:"spent"`
	Remaining      decimal.Decimal `json:"remaining"`
	UsagePercent   decimal.Decimal `json:"usagePercent"`
	CurrencyCode   string          `json:"currencyCode"`
	RefreshedAt    *time.Time      `json:"refreshedAt"`
	Stale          bool            `json:"stale"` // always true: cached values are eventually consistent
}
