package services

// ServiceContainer holds instances of all the application services.
// Handlers and background workers reach the ledger only through it.
type ServiceContainer struct {
	Account       AccountSvcFacade
	Fundamental   FundamentalAccountSvc
	Ledger        LedgerTransactionSvcFacade
	Actions       LedgerActionSvc
	Balances      AccountBalanceQuerySvc
	Spent         BudgetPeriodSpentQuerySvc
	Aggregates    BudgetPeriodAggregatesSvc
	BudgetPeriods BudgetPeriodSvc
	ExchangeRate  ExchangeRateSvcFacade
}
