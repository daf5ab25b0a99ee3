package services

import (
	portsrepo "github.com/SscSPs/budget_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_ledger/internal/core/ports/services"
)

// NewServiceContainer creates a new container with all services initialized
func NewServiceContainer(repos portsrepo.RepositoryProvider, defaultCurrency string, options ...ServiceOption) *portssvc.ServiceContainer {
	fundamentals := NewFundamentalAccountService(repos.AccountRepo, defaultCurrency, options...)
	ledger := NewLedgerTransactionService(repos, options...)
	rates := NewExchangeRateService(repos.ExchangeRateRepo, options...)
	spent := NewBudgetPeriodSpentQuery(repos.ReportingRepo)
	aggregates := NewBudgetPeriodAggregates(spent, repos.CachedAggregateRepo, options...)

	return &portssvc.ServiceContainer{
		Account:       NewAccountService(repos.AccountRepo, options...),
		Fundamental:   fundamentals,
		Ledger:        ledger,
		Actions:       NewLedgerActionService(repos, fundamentals, ledger, defaultCurrency, options...),
		Balances:      NewAccountBalanceQuery(repos.ReportingRepo, rates, defaultCurrency, options...),
		Spent:         spent,
		Aggregates:    aggregates,
		BudgetPeriods: NewBudgetPeriodService(repos.BudgetRepo, repos.CachedAggregateRepo, aggregates, options...),
		ExchangeRate:  rates,
	}
}
