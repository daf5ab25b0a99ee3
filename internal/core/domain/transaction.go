package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a balanced financial event made of two or more entries.
// Entries never change once the transaction is persisted.
type Transaction struct {
	TransactionID  string     `json:"transactionID"`
	UserID         string     `json:"userID"`
	Description    string     `json:"description"`
	EffectiveAt    time.Time  `json:"effectiveAt"` // accounting date
	PostedAt       *time.Time `json:"postedAt,omitempty"`
	Reference      *string    `json:"reference,omitempty"`
	Source         *string    `json:"source,omitempty"`
	IdempotencyKey *string    `json:"idempotencyKey,omitempty"` // unique per user
	CategoryID     *string    `json:"categoryID,omitempty"`
	BudgetPeriodID *string    `json:"budgetPeriodID,omitempty"`
	AuditFields

	Entries      []Entry       `json:"entries,omitempty"`
	BudgetPeriod *BudgetPeriod `json:"budgetPeriod,omitempty"`
}

// IsMultiCurrency reports whether the entries post in more than one currency.
func (t Transaction) IsMultiCurrency() bool {
	seen := ""
	for _, e := range t.Entries {
		if seen == "" {
			seen = e.CurrencyCode
			continue
		}
		if e.CurrencyCode != seen {
			return true
		}
	}
	return false
}

// Entry is a single signed posting against one account.
type Entry struct {
	EntryID       string           `json:"entryID"`
	TransactionID string           `json:"transactionID"`
	AccountID     string           `json:"accountID"`
	Amount        decimal.Decimal  `json:"amount"`       // signed, in the account's currency
	CurrencyCode  string           `json:"currencyCode"` // always equals the account currency
	AmountBase    *decimal.Decimal `json:"amountBase,omitempty"`
	CategoryID    *string          `json:"categoryID,omitempty"`
	Memo          *string          `json:"memo,omitempty"`
}

// BaseAmount returns the amount restated in the default currency, falling back to Amount.
func (e Entry) BaseAmount() decimal.Decimal {
	if e.AmountBase != nil {
		return *e.AmountBase
	}
	return e.Amount
}
