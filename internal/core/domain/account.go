package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// AccountSubtype refines an account type. The empty subtype means none.
type AccountSubtype string

const (
	SubtypeNone           AccountSubtype = ""
	SubtypeLoanReceivable AccountSubtype = "LOAN_RECEIVABLE"
	SubtypeLoanPayable    AccountSubtype = "LOAN_PAYABLE"
)

// AllowedFor reports whether the subtype may be attached to an account of type t.
func (s AccountSubtype) AllowedFor(t AccountType) bool {
	switch s {
	case SubtypeNone:
		return true
	case SubtypeLoanReceivable:
		return t == Asset
	case SubtypeLoanPayable:
		return t == Liability
	}
	return false
}

// Account represents a financial account owned by a single user.
type Account struct {
	AccountID     string         `json:"accountID"`
	UserID        string         `json:"userID"`
	Name          string         `json:"name"` // unique per user
	AccountType   AccountType    `json:"accountType"`
	Subtype       AccountSubtype `json:"subtype,omitempty"`
	CurrencyCode  string         `json:"currencyCode"`
	IsArchived    bool           `json:"isArchived"`
	IsFundamental bool           `json:"isFundamental"` // system-managed sink/source account
	AuditFields
}
