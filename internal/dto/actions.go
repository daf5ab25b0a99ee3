package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterFlowRequest records money leaving (expense) or entering (income) the tracked system.
type RegisterFlowRequest struct {
	AccountID      string          `json:"accountID" binding:"required"`
	Amount         decimal.Decimal `json:"amount" swaggertype:"string"`
	Description    string          `json:"description" binding:"required,max=500"`
	EffectiveAt    time.Time       `json:"effectiveAt" binding:"required"`
	CategoryID     *string         `json:"categoryID,omitempty"`
	IdempotencyKey *string         `json:"idempotencyKey,omitempty" binding:"omitempty,max=255"`
	Reference      *string         `json:"reference,omitempty"`
	Memo           *string         `json:"memo,omitempty"`
}

// TransferRequest moves value between two accounts of the same user.
// ToAmount is required when the currencies differ; AmountBase is required when
// neither side is in the default currency.
type TransferRequest struct {
	FromAccountID  string           `json:"fromAccountID" binding:"required"`
	ToAccountID    string           `json:"toAccountID" binding:"required,nefield=FromAccountID"`
	Amount         decimal.Decimal  `json:"amount" swaggertype:"string"`
	ToAmount       *decimal.Decimal `json:"toAmount,omitempty" swaggertype:"string"`
	AmountBase     *decimal.Decimal `json:"amountBase,omitempty" swaggertype:"string"`
	Description    string           `json:"description" binding:"required,max=500"`
	EffectiveAt    time.Time        `json:"effectiveAt" binding:"required"`
	IdempotencyKey *string          `json:"idempotencyKey,omitempty" binding:"omitempty,max=255"`
}

// DebtKind selects the direction of a loan movement.
type DebtKind string

const (
	DebtLend    DebtKind = "LEND"
	DebtCollect DebtKind = "COLLECT"
	DebtBorrow  DebtKind = "BORROW"
	DebtRepay   DebtKind = "REPAY"
)

// DebtRequest moves money between a cash account and a loan account.
type DebtRequest struct {
	Kind           DebtKind        `json:"kind" binding:"required,oneof=LEND COLLECT BORROW REPAY"`
	AccountID      string          `json:"accountID" binding:"required"`
	LoanAccountID  string          `json:"loanAccountID" binding:"required,nefield=AccountID"`
	Amount         decimal.Decimal `json:"amount" swaggertype:"string"`
	Description    string          `json:"description" binding:"required,max=500"`
	EffectiveAt    time.Time       `json:"effectiveAt" binding:"required"`
	IdempotencyKey *string         `json:"idempotencyKey,omitempty" binding:"omitempty,max=255"`
}
