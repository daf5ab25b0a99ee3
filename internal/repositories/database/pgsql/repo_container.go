package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/budget_ledger/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every repository to the primary pool. Reporting reads go
// to replica when it is not nil.
func NewRepositoryProvider(primary, replica *pgxpool.Pool) portsrepo.RepositoryProvider {
	readPool := primary
	if replica != nil {
		readPool = replica
	}

	return portsrepo.RepositoryProvider{
		AccountRepo:         newPgxAccountRepository(primary),
		TransactionRepo:     newPgxTransactionRepository(primary),
		BudgetRepo:          newPgxBudgetRepository(primary),
		ReportingRepo:       newReportingRepository(readPool),
		CachedAggregateRepo: newPgxCachedAggregateRepository(primary),
		ExchangeRateRepo:    newPgxExchangeRateRepository(primary),
	}
}
