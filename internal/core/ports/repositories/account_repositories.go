package repositories

import (
	"context"

	"github.com/SscSPs/budget_ledger/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts in one round trip. Missing IDs are simply absent from the map.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// FindFundamentalAccount looks up the system-managed account matching all of the given attributes.
	FindFundamentalAccount(ctx context.Context, userID, name string, accountType domain.AccountType, currencyCode string) (*domain.Account, error)

	// ListAccountsByUser returns the user's accounts ordered by name.
	ListAccountsByUser(ctx context.Context, userID string, includeArchived bool) ([]domain.Account, error)

	// CountEntriesForAccount returns how many entries post against the account.
	CountEntriesForAccount(ctx context.Context, accountID string) (int64, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. A name clash for the same user fails with
	// a DuplicateError on ConstraintAccountUserName.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates name and archive state of an existing account.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account row.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
