package dto

import (
	"time"

	"github.com/SscSPs/budget_ledger/internal/core/domain"
	"github.com/SscSPs/budget_ledger/internal/core/money"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest is one signed posting of a new transaction.
type CreateEntryRequest struct {
	AccountID    string           `json:"accountID" binding:"required"`
	Amount       decimal.Decimal  `json:"amount" swaggertype:"string"`
	CurrencyCode *string          `json:"currencyCode,omitempty" binding:"omitempty,currency"`
	AmountBase   *decimal.Decimal `json:"amountBase,omitempty" swaggertype:"string"`
	CategoryID   *string          `json:"categoryID,omitempty"`
	Memo         *string          `json:"memo,omitempty" binding:"omitempty,max=500"`
}

// CreateTransactionRequest carries a balanced set of entries and header details.
type CreateTransactionRequest struct {
	Description    string               `json:"description" binding:"required,max=500"`
	EffectiveAt    time.Time            `json:"effectiveAt" binding:"required"`
	PostedAt       *time.Time           `json:"postedAt,omitempty"`
	Reference      *string              `json:"reference,omitempty"`
	Source         *string              `json:"source,omitempty"`
	IdempotencyKey *string              `json:"idempotencyKey,omitempty" binding:"omitempty,max=255"`
	CategoryID     *string              `json:"categoryID,omitempty"`
	Entries        []CreateEntryRequest `json:"entries" binding:"dive"`
}

// UpdateTransactionRequest edits header fields only. Nil fields are left unchanged;
// an empty CategoryID clears the category.
type UpdateTransactionRequest struct {
	Description *string    `json:"description,omitempty" binding:"omitempty,min=1,max=500"`
	EffectiveAt *time.Time `json:"effectiveAt,omitempty"`
	Reference   *string    `json:"reference,omitempty"`
	CategoryID  *string    `json:"categoryID,omitempty"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// EntryResponse defines the data returned for an entry.
type EntryResponse struct {
	EntryID      string  `json:"entryID"`
	AccountID    string  `json:"accountID"`
	Amount       string  `json:"amount"`
	CurrencyCode string  `json:"currencyCode"`
	AmountBase   *string `json:"amountBase,omitempty"`
	CategoryID   *string `json:"categoryID,omitempty"`
	Memo         *string `json:"memo,omitempty"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID  string          `json:"transactionID"`
	Description    string          `json:"description"`
	EffectiveAt    time.Time       `json:"effectiveAt"`
	PostedAt       *time.Time      `json:"postedAt,omitempty"`
	Reference      *string         `json:"reference,omitempty"`
	Source         *string         `json:"source,omitempty"`
	IdempotencyKey *string         `json:"idempotencyKey,omitempty"`
	CategoryID     *string         `json:"categoryID,omitempty"`
	BudgetPeriodID *string         `json:"budgetPeriodID,omitempty"`
	Entries        []EntryResponse `json:"entries"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}

// ListTransactionsResponse is one page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToEntryResponse converts a domain.Entry; amounts are rendered at ledger scale.
func ToEntryResponse(e domain.Entry) EntryResponse {
	resp := EntryResponse{
		EntryID:      e.EntryID,
		AccountID:    e.AccountID,
		Amount:       money.String(e.Amount),
		CurrencyCode: e.CurrencyCode,
		CategoryID:   e.CategoryID,
		Memo:         e.Memo,
	}
	if e.AmountBase != nil {
		base := money.String(*e.AmountBase)
		resp.AmountBase = &base
	}
	return resp
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	entries := make([]EntryResponse, len(txn.Entries))
	for i, e := range txn.Entries {
		entries[i] = ToEntryResponse(e)
	}
	return TransactionResponse{
		TransactionID:  txn.TransactionID,
		Description:    txn.Description,
		EffectiveAt:    txn.EffectiveAt,
		PostedAt:       txn.PostedAt,
		Reference:      txn.Reference,
		Source:         txn.Source,
		IdempotencyKey: txn.IdempotencyKey,
		CategoryID:     txn.CategoryID,
		BudgetPeriodID: txn.BudgetPeriodID,
		Entries:        entries,
		CreatedAt:      txn.CreatedAt,
		CreatedBy:      txn.CreatedBy,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
