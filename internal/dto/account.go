package dto

import (
	"time"

	"github.com/SscSPs/budget_ledger/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name         string                `json:"name" binding:"required,max=255"`
	AccountType  domain.AccountType    `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	Subtype      domain.AccountSubtype `json:"subtype" binding:"omitempty,oneof=LOAN_RECEIVABLE LOAN_PAYABLE"`
	CurrencyCode string                `json:"currencyCode" binding:"required,currency"`
}

// EnsureFundamentalAccountsRequest asks for the external sink/source accounts of a currency.
type EnsureFundamentalAccountsRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,currency"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string                `json:"accountID"`
	Name          string                `json:"name"`
	AccountType   domain.AccountType    `json:"accountType"`
	Subtype       domain.AccountSubtype `json:"subtype,omitempty"`
	CurrencyCode  string                `json:"currencyCode"`
	IsArchived    bool                  `json:"isArchived"`
	IsFundamental bool                  `json:"isFundamental"`
	CreatedAt     time.Time             `json:"createdAt"`
	CreatedBy     string                `json:"createdBy"`
	LastUpdatedAt time.Time             `json:"lastUpdatedAt"`
	LastUpdatedBy string                `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Name:          acc.Name,
		AccountType:   acc.AccountType,
		Subtype:       acc.Subtype,
		CurrencyCode:  acc.CurrencyCode,
		IsArchived:    acc.IsArchived,
		IsFundamental: acc.IsFundamental,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsResponse wraps a list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	IncludeArchived bool `form:"includeArchived"`
}

// AccountBalanceResponse defines the data returned for a single account balance query.
type AccountBalanceResponse struct {
	AccountID    string `json:"accountID"`
	CurrencyCode string `json:"currencyCode"`
	Balance      string `json:"balance"`
	Display      string `json:"display"`
}
