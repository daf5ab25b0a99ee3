package services

import (
	"context"

	"github.com/SscSPs/budget_ledger/internal/core/domain"
	"github.com/SscSPs/budget_ledger/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccount returns the account if it belongs to userID.
	GetAccount(ctx context.Context, userID, accountID string) (*domain.Account, error)

	// ListAccounts returns the user's accounts ordered by name.
	ListAccounts(ctx context.Context, userID string, includeArchived bool) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error)

	// ArchiveAccount hides an account from new postings. Fundamental accounts cannot be archived.
	ArchiveAccount(ctx context.Context, userID, accountID string) (*domain.Account, error)

	// DeleteAccount removes an account that owns no entries and is not fundamental.
	DeleteAccount(ctx context.Context, userID, accountID string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}

// FundamentalAccountSvc bootstraps and resolves the system-managed counter-accounts.
type FundamentalAccountSvc interface {
	// EnsureFundamentalAccounts makes sure the External Expense and External Income accounts
	// of the currency exist. Calling it repeatedly creates nothing new.
	EnsureFundamentalAccounts(ctx context.Context, userID, currencyCode string) ([]domain.Account, error)

	// ResolveFundamentalAccount ensures and returns the fundamental account of the given type:
	// EXPENSE and INCOME map to the external sink/source, EQUITY to Currency Exchange.
	ResolveFundamentalAccount(ctx context.Context, userID, currencyCode string, accountType domain.AccountType) (*domain.Account, error)
}
