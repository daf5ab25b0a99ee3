package services

import (
	"context"

	"github.com/SscSPs/budget_ledger/internal/core/domain"
	"github.com/SscSPs/budget_ledger/internal/dto"
)

// LedgerWriterSvc is the transactional write path of the ledger.
type LedgerWriterSvc interface {
	// CreateTransaction validates and atomically persists a balanced transaction.
	// A repeated idempotency key returns the existing transaction.
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// UpdateTransactionDetails edits description, date, reference or category. Entries never change.
	UpdateTransactionDetails(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
}

// LedgerReaderSvc reads transactions back.
type LedgerReaderSvc interface {
	GetTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// LedgerTransactionSvcFacade combines all transaction-related service interfaces
type LedgerTransactionSvcFacade interface {
	LedgerWriterSvc
	LedgerReaderSvc
}

// LedgerActionSvc builds common transactions against fundamental counter-accounts.
type LedgerActionSvc interface {
	RegisterExpense(ctx context.Context, userID string, req dto.RegisterFlowRequest) (*domain.Transaction, error)
	RegisterIncome(ctx context.Context, userID string, req dto.RegisterFlowRequest) (*domain.Transaction, error)
	TransferFunds(ctx context.Context, userID string, req dto.TransferRequest) (*domain.Transaction, error)
	RecordDebt(ctx context.Context, userID string, req dto.DebtRequest) (*domain.Transaction, error)
}
