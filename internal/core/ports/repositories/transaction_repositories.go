package repositories

import (
	"context"

	"github.com/SscSPs/budget_ledger/internal/core/domain"
)

// TransactionReader defines read operations for ledger transactions.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction with its entries.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionByIdempotencyKey retrieves the user's transaction registered under key, with entries.
	FindTransactionByIdempotencyKey(ctx context.Context, userID, idempotencyKey string) (*domain.Transaction, error)

	// ListTransactionsByUser retrieves a page of the user's transactions, newest effective date first.
	// It returns the transactions (with entries), a token for the next page, and an error.
	ListTransactionsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for ledger transactions.
type TransactionWriter interface {
	// SaveTransaction persists the header and every entry in one atomic unit.
	// Nothing is observable if any part fails.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransactionDetails rewrites the editable header fields. Entries are untouched.
	UpdateTransactionDetails(ctx context.Context, txn domain.Transaction) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
