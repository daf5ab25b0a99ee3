package models

// AccountType mirrors the account_type column.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// Account is a row of the accounts table.
type Account struct {
	AccountID     string      `db:"account_id"`
	UserID        string      `db:"user_id"`
	Name          string      `db:"name"`
	AccountType   AccountType `db:"account_type"`
	Subtype       *string     `db:"subtype"` // Nullable
	CurrencyCode  string      `db:"currency_code"`
	IsArchived    bool        `db:"is_archived"`
	IsFundamental bool        `db:"is_fundamental"`
	AuditFields
}
