// Package memory holds in-process repositories. They enforce the same unique constraints
// and all-or-nothing writes as the Postgres schema, so services behave identically on both.
package memory

import (
	"sync"

	"github.com/SscSPs/budget_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_ledger/internal/core/ports/repositories"
)

type aggregateKey struct {
	ref   domain.AggregateRef
	key   domain.AggregateKey
	scope string
}

// Store is a concurrency-safe in-memory ledger database.
type Store struct {
	mu sync.RWMutex

	accounts     map[string]domain.Account
	transactions map[string]domain.Transaction
	idempotency  map[string]string // userID + "\x00" + key -> transaction id
	budgets      map[string]domain.Budget
	categories   map[string]domain.Category
	periods      map[string]domain.BudgetPeriod
	aggregates   map[aggregateKey]domain.CachedAggregate
	rates        []domain.ExchangeRate
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		accounts:     make(map[string]domain.Account),
		transactions: make(map[string]domain.Transaction),
		idempotency:  make(map[string]string),
		budgets:      make(map[string]domain.Budget),
		categories:   make(map[string]domain.Category),
		periods:      make(map[string]domain.BudgetPeriod),
		aggregates:   make(map[aggregateKey]domain.CachedAggregate),
	}
}

// NewRepositoryProvider exposes the store through every repository port.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:         store,
		TransactionRepo:     store,
		BudgetRepo:          store,
		ReportingRepo:       store,
		CachedAggregateRepo: store,
		ExchangeRateRepo:    store,
	}
}

var (
	_ portsrepo.AccountRepositoryFacade      = (*Store)(nil)
	_ portsrepo.TransactionRepositoryFacade  = (*Store)(nil)
	_ portsrepo.BudgetRepositoryFacade       = (*Store)(nil)
	_ portsrepo.ReportingRepository          = (*Store)(nil)
	_ portsrepo.CachedAggregateRepository    = (*Store)(nil)
	_ portsrepo.ExchangeRateRepositoryFacade = (*Store)(nil)
)

func idempotencyIndex(userID, key string) string {
	return userID + "\x00" + key
}

func copyTransaction(txn domain.Transaction) domain.Transaction {
	txn.Entries = append([]domain.Entry(nil), txn.Entries...)
	txn.BudgetPeriod = nil
	return txn
}
