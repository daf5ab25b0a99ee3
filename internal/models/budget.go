package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Budget struct {
	BudgetID     string `db:"budget_id"`
	UserID       string `db:"user_id"`
	Name         string `db:"name"`
	CurrencyCode string `db:"currency_code"`
}

type Category struct {
	CategoryID string  `db:"category_id"`
	UserID     string  `db:"user_id"`
	Name       string  `db:"name"`
	BudgetID   *string `db:"budget_id"`
}

// BudgetPeriod is a row of budget_periods; end_at is exclusive.
type BudgetPeriod struct {
	BudgetPeriodID string          `db:"budget_period_id"`
	BudgetID       string          `db:"budget_id"`
	StartAt        time.Time       `db:"start_at"`
	EndAt          time.Time       `db:"end_at"`
	Amount         decimal.Decimal `db:"amount"`
	CurrencyCode   string          `db:"currency_code"`
}
