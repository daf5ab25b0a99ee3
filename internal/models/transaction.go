package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the transactions table. Entries live in their own table.
type Transaction struct {
	TransactionID  string     `db:"transaction_id"`
	UserID         string     `db:"user_id"`
	Description    string     `db:"description"`
	EffectiveAt    time.Time  `db:"effective_at"`
	PostedAt       *time.Time `db:"posted_at"`
	Reference      *string    `db:"reference"`
	Source         *string    `db:"source"`
	IdempotencyKey *string    `db:"idempotency_key"`
	CategoryID     *string    `db:"category_id"`
	BudgetPeriodID *string    `db:"budget_period_id"`
	AuditFields
}

// Entry is a row of the entries table.
type Entry struct {
	EntryID       string           `db:"entry_id"`
	TransactionID string           `db:"transaction_id"`
	AccountID     string           `db:"account_id"`
	Amount        decimal.Decimal  `db:"amount"` // signed
	CurrencyCode  string           `db:"currency_code"`
	AmountBase    *decimal.Decimal `db:"amount_base"`
	CategoryID    *string          `db:"category_id"`
	Memo          *string          `db:"memo"`
}
