package services

import "github.com/SscSPs/budget_ledger/internal/apperrors"

// LedgerError is a coded rejection. It unwraps to its apperrors kind, so both
// errors.Is(err, ErrUnbalancedEntries) and errors.Is(err, apperrors.ErrValidation) hold.
type LedgerError struct {
	Code    string
	Kind    error
	Message string
}

func (e *LedgerError) Error() string { return e.Message }

func (e *LedgerError) Unwrap() error { return e.Kind }

func newLedgerError(code string, kind error, message string) *LedgerError {
	return &LedgerError{Code: code, Kind: kind, Message: message}
}

// Validation
var (
	ErrInsufficientEntries    = newLedgerError("InsufficientEntries", apperrors.ErrValidation, "a transaction needs at least two entries")
	ErrUnbalancedEntries      = newLedgerError("UnbalancedEntries", apperrors.ErrValidation, "entries do not sum to zero")
	ErrAmountMustBeNonZero    = newLedgerError("AmountMustBeNonZero", apperrors.ErrValidation, "amount must be non-zero")
	ErrCurrencyMismatch       = newLedgerError("CurrencyMismatch", apperrors.ErrValidation, "entry currency does not match its account")
	ErrMixedBudgetAssignments = newLedgerError("MixedBudgetAssignments", apperrors.ErrValidation, "entries reference more than one budget")
	ErrAccountArchived        = newLedgerError("AccountArchived", apperrors.ErrValidation, "account is archived")
	ErrAccountSubtypeMismatch = newLedgerError("AccountSubtypeMismatch", apperrors.ErrValidation, "account subtype does not fit the operation")
	ErrReservedAccountName    = newLedgerError("ReservedAccountName", apperrors.ErrValidation, "account name is reserved for system accounts")
)

// Ownership
var (
	ErrAccountOwnershipMismatch  = newLedgerError("AccountOwnershipMismatch", apperrors.ErrForbidden, "account belongs to another user")
	ErrCategoryOwnershipMismatch = newLedgerError("CategoryOwnershipMismatch", apperrors.ErrForbidden, "category belongs to another user")
)

// Not found
var (
	ErrAccountNotFound      = newLedgerError("AccountNotFound", apperrors.ErrNotFound, "account not found")
	ErrCategoryNotFound     = newLedgerError("CategoryNotFound", apperrors.ErrNotFound, "category not found")
	ErrBudgetPeriodNotFound = newLedgerError("BudgetPeriodNotFound", apperrors.ErrNotFound, "no budget period covers the date")
	ErrTransactionNotFound  = newLedgerError("TransactionNotFound", apperrors.ErrNotFound, "transaction not found")
)

// ErrFundamentalAccountNotFound means bootstrap did not leave the account behind. It is a broken
// invariant, not an ordinary lookup miss.
var ErrFundamentalAccountNotFound = newLedgerError("FundamentalAccountNotFound", apperrors.ErrInternal, "fundamental account missing after bootstrap")

// ErrInsufficientFunds is a best-effort guard computed from a balance snapshot.
var ErrInsufficientFunds = newLedgerError("InsufficientFunds", apperrors.ErrUnprocessable, "account balance does not cover the amount")

// Conflicts with current state
var (
	ErrAccountHasEntries           = newLedgerError("AccountHasEntries", apperrors.ErrConflict, "account owns entries")
	ErrFundamentalAccountImmutable = newLedgerError("FundamentalAccountImmutable", apperrors.ErrConflict, "fundamental accounts are system managed")
)
