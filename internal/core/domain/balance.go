package domain

import "github.com/shopspring/decimal"

// AccountBalance is a point-in-time balance of one account.
type AccountBalance struct {
	AccountID     string          `json:"accountID"`
	Name          string          `json:"name"`
	AccountType   AccountType     `json:"accountType"`
	CurrencyCode  string          `json:"currencyCode"`
	IsFundamental bool            `json:"isFundamental"`
	Balance       decimal.Decimal `json:"balance"`

	// Display-only restatement in the default currency; nil when no rate is known.
	BalanceInDefault    *decimal.Decimal `json:"balanceInDefault,omitempty"`
	DefaultCurrencyCode string           `json:"defaultCurrencyCode,omitempty"`
}
