package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/budget_ledger/internal/core/domain"
	"github.com/SscSPs/budget_ledger/internal/core/money"
	portssvc "github.com/SscSPs/budget_ledger/internal/core/ports/services"
	"github.com/SscSPs/budget_ledger/internal/core/services"
	"github.com/SscSPs/budget_ledger/internal/dto"
	"github.com/SscSPs/budget_ledger/internal/repositories/memory"
)

type ledgerFixture struct {
	ctx    context.Context
	store  *memory.Store
	svc    *portssvc.ServiceContainer
	userID string
}

func newLedgerFixture(t *testing.T, options ...services.ServiceOption) *ledgerFixture {
	t.Helper()
	store := memory.NewStore()
	return &ledgerFixture{
		ctx:    context.Background(),
		store:  store,
		svc:    services.NewServiceContainer(memory.NewRepositoryProvider(store), "USD", options...),
		userID: uuid.NewString(),
	}
}

func (f *ledgerFixture) account(t *testing.T, name string, accountType domain.AccountType, currency string) domain.Account {
	t.Helper()
	return f.accountWithSubtype(t, name, accountType, domain.SubtypeNone, currency)
}

func (f *ledgerFixture) accountWithSubtype(t *testing.T, name string, accountType domain.AccountType, subtype domain.AccountSubtype, currency string) domain.Account {
	t.Helper()
	acc, err := f.svc.Account.CreateAccount(f.ctx, f.userID, dto.CreateAccountRequest{
		Name:         name,
		AccountType:  accountType,
		Subtype:      subtype,
		CurrencyCode: currency,
	})
	require.NoError(t, err)
	return *acc
}

func (f *ledgerFixture) income(t *testing.T, accountID, amount string, at time.Time, categoryID *string) *domain.Transaction {
	t.Helper()
	txn, err := f.svc.Actions.RegisterIncome(f.ctx, f.userID, dto.RegisterFlowRequest{
		AccountID:   accountID,
		Amount:      decimal.RequireFromString(amount),
		Description: "Salary",
		EffectiveAt: at,
		CategoryID:  categoryID,
	})
	require.NoError(t, err)
	return txn
}

func (f *ledgerFixture) expense(t *testing.T, accountID, amount string, at time.Time, categoryID *string) *domain.Transaction {
	t.Helper()
	txn, err := f.svc.Actions.RegisterExpense(f.ctx, f.userID, dto.RegisterFlowRequest{
		AccountID:   accountID,
		Amount:      decimal.RequireFromString(amount),
		Description: "Shopping",
		EffectiveAt: at,
		CategoryID:  categoryID,
	})
	require.NoError(t, err)
	return txn
}

// budgetWithPeriod seeds a November 2025 budget period and a category linked to it.
func (f *ledgerFixture) budgetWithPeriod(t *testing.T, amount string) (domain.Category, domain.BudgetPeriod) {
	t.Helper()
	budget := domain.Budget{BudgetID: uuid.NewString(), UserID: f.userID, Name: "Household", CurrencyCode: "USD"}
	require.NoError(t, f.store.SaveBudget(f.ctx, budget))
	category := domain.Category{CategoryID: uuid.NewString(), UserID: f.userID, Name: "Groceries", BudgetID: &budget.BudgetID}
	require.NoError(t, f.store.SaveCategory(f.ctx, category))
	period := domain.BudgetPeriod{
		BudgetPeriodID: uuid.NewString(),
		BudgetID:       budget.BudgetID,
		StartAt:        day(2025, 11, 1),
		EndAt:          day(2025, 12, 1),
		Amount:         decimal.RequireFromString(amount),
		CurrencyCode:   "USD",
	}
	require.NoError(t, f.store.SaveBudgetPeriod(f.ctx, period))
	return category, period
}

func (f *ledgerFixture) balanceOf(t *testing.T, accountID string) string {
	t.Helper()
	balance, err := f.svc.Balances.BalanceForAccount(f.ctx, accountID)
	require.NoError(t, err)
	return money.String(balance)
}

func (f *ledgerFixture) transactionCount(t *testing.T) int {
	t.Helper()
	resp, err := f.svc.Ledger.ListTransactions(f.ctx, f.userID, dto.ListTransactionsParams{Limit: 100})
	require.NoError(t, err)
	return len(resp.Transactions)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEnsureFundamentalAccountsIsIdempotent(t *testing.T) {
	f := newLedgerFixture(t)

	for i := 0; i < 5; i++ {
		accounts, err := f.svc.Fundamental.EnsureFundamentalAccounts(f.ctx, f.userID, "EUR")
		require.NoError(t, err)
		require.Len(t, accounts, 2)
	}

	accounts, err := f.svc.Account.ListAccounts(f.ctx, f.userID, true)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "External Expense (EUR)", accounts[0].Name)
	assert.Equal(t, "External Income (EUR)", accounts[1].Name)
	for _, acc := range accounts {
		assert.True(t, acc.IsFundamental)
		assert.Equal(t, "EUR", acc.CurrencyCode)
	}
}

func TestEnsureFundamentalAccountsConcurrently(t *testing.T) {
	f := newLedgerFixture(t)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Fundamental.EnsureFundamentalAccounts(f.ctx, f.userID, "USD")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	accounts, err := f.svc.Account.ListAccounts(f.ctx, f.userID, true)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "External Expense", accounts[0].Name, "default currency carries no suffix")
}

func TestResolveFundamentalAccountNameTakenByRegularAccount(t *testing.T) {
	f := newLedgerFixture(t)
	require.NoError(t, f.store.SaveAccount(f.ctx, domain.Account{
		AccountID: uuid.NewString(), UserID: f.userID, Name: "External Expense (GBP)",
		AccountType: domain.Expense, CurrencyCode: "GBP",
	}))

	_, err := f.svc.Fundamental.ResolveFundamentalAccount(f.ctx, f.userID, "GBP", domain.Expense)

	assert.ErrorIs(t, err, services.ErrFundamentalAccountNotFound)
}

func TestCreateTransactionIdempotency(t *testing.T) {
	f := newLedgerFixture(t)
	checking := f.account(t, "Checking", domain.Asset, "USD")
	equity := f.account(t, "Opening Balance", domain.Equity, "USD")
	key := "import-2025-11-05-001"

	first, err := f.svc.Ledger.CreateTransaction(f.ctx, f.userID, dto.CreateTransactionRequest{
		Description: "Opening balance", EffectiveAt: day(2025, 11, 5), IdempotencyKey: &key,
		Entries: []dto.CreateEntryRequest{entry(checking.AccountID, "500"), entry(equity.AccountID, "-500")},
	})
	require.NoError(t, err)

	second, err := f.svc.Ledger.CreateTransaction(f.ctx, f.userID, dto.CreateTransactionRequest{
		Description: "Different payload", EffectiveAt: day(2025, 11, 6), IdempotencyKey: &key,
		Entries: []dto.CreateEntryRequest{entry(checking.AccountID, "1"), entry(equity.AccountID, "-1")},
	})
	require.NoError(t, err)

	assert.Equal(t, first.TransactionID, second.TransactionID)
	assert.Equal(t, 1, f.transactionCount(t))
	assert.Equal(t, "500.000000", f.balanceOf(t, checking.AccountID))
}

func TestCreateTransactionIdempotencyUnderRace(t *testing.T) {
	f := newLedgerFixture(t)
	checking := f.account(t, "Checking", domain.Asset, "USD")
	equity := f.account(t, "Opening Balance", domain.Equity, "USD")
	key := "mobile-retry-42"

	const callers = 24
	ids := make(chan string, callers)
	errs := make(chan error, callers)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			txn, err := f.svc.Ledger.CreateTransaction(f.ctx, f.userID, dto.CreateTransactionRequest{
				Description: "Opening balance", EffectiveAt: day(2025, 11, 5), IdempotencyKey: &key,
				Entries: []dto.CreateEntryRequest{entry(checking.AccountID, "75"), entry(equity.AccountID, "-75")},
			})
			if err != nil {
				errs <- err
				return
			}
			ids <- txn.TransactionID
		}()
	}
	close(start)
	wg.Wait()
	close(ids)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	seen := map[string]struct{}{}
	for id := range ids {
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, 1, "every caller gets the same transaction")
	assert.Equal(t, 1, f.transactionCount(t))
	assert.Equal(t, "75.000000", f.balanceOf(t, checking.AccountID))
}

func TestCreateTransactionIsAtomic(t *testing.T) {
	f := newLedgerFixture(t)
	checking := f.account(t, "Checking", domain.Asset, "USD")
	savings := f.account(t, "Savings", domain.Asset, "USD")
	equity := f.account(t, "Opening Balance", domain.Equity, "USD")

	_, err := f.svc.Ledger.CreateTransaction(f.ctx, f.userID, dto.CreateTransactionRequest{
		Description: "Split", EffectiveAt: day(2025, 11, 5),
		Entries: []dto.CreateEntryRequest{
			entry(checking.AccountID, "10"),
			entry(savings.AccountID, "20"),
			entry(uuid.NewString(), "-15"),
			entry(equity.AccountID, "-15"),
		},
	})

	require.ErrorIs(t, err, services.ErrAccountNotFound)
	assert.Equal(t, 0, f.transactionCount(t))
	for _, id := range []string{checking.AccountID, savings.AccountID, equity.AccountID} {
		count, err := f.store.CountEntriesForAccount(f.ctx, id)
		require.NoError(t, err)
		assert.Zero(t, count)
	}
}

func TestRejectionScenarios(t *testing.T) {
	f := newLedgerFixture(t)
	checking := f.account(t, "Checking", domain.Asset, "USD")
	equity := f.account(t, "Opening Balance", domain.Equity, "USD")
	eur := "EUR"
	eurEntry := entry(checking.AccountID, "50")
	eurEntry.CurrencyCode = &eur

	tests := []struct {
		name    string
		entries []dto.CreateEntryRequest
		want    error
	}{
		{"unbalanced", []dto.CreateEntryRequest{entry(checking.AccountID, "100"), entry(equity.AccountID, "-50")}, services.ErrUnbalancedEntries},
		{"single entry", []dto.CreateEntryRequest{entry(checking.AccountID, "50")}, services.ErrInsufficientEntries},
		{"zero amount", []dto.CreateEntryRequest{entry(checking.AccountID, "0"), entry(equity.AccountID, "0")}, services.ErrAmountMustBeNonZero},
		{"zero amount in unbalanced entries", []dto.CreateEntryRequest{entry(checking.AccountID, "0"), entry(equity.AccountID, "100"), entry(checking.AccountID, "-50")}, services.ErrUnbalancedEntries},
		{"currency mismatch", []dto.CreateEntryRequest{eurEntry, entry(equity.AccountID, "-50")}, services.ErrCurrencyMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Ledger.CreateTransaction(f.ctx, f.userID, dto.CreateTransactionRequest{
				Description: tt.name, EffectiveAt: day(2025, 11, 5), Entries: tt.entries,
			})
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Equal(t, 0, f.transactionCount(t))
}

func TestCrossUserAccountIsRejected(t *testing.T) {
	f := newLedgerFixture(t)
	checking := f.account(t, "Checking", domain.Asset, "USD")

	other := newLedgerFixture(t)
	other.store = f.store
	other.svc = f.svc
	otherChecking := other.account(t, "Checking", domain.Asset, "USD")

	for _, amounts := range [][2]string{{"10", "-10"}, {"10", "-999"}} {
		_, err := f.svc.Ledger.CreateTransaction(f.ctx, f.userID, dto.CreateTransactionRequest{
			Description: "Steal", EffectiveAt: day(2025, 11, 5),
			Entries: []dto.CreateEntryRequest{entry(checking.AccountID, amounts[0]), entry(otherChecking.AccountID, amounts[1])},
		})
		assert.ErrorIs(t, err, services.ErrAccountOwnershipMismatch)
	}
}

func TestAccountBalancesAsOf(t *testing.T) {
	f := newLedgerFixture(t)
	checking := f.account(t, "Checking", domain.Asset, "USD")
	savings := f.account(t, "Savings", domain.Asset, "USD")

	f.income(t, checking.AccountID, "1000", day(2025, 11, 5), nil)
	f.expense(t, checking.AccountID, "200", day(2025, 12, 10), nil)

	asOf := day(2025, 11, 30)
	november, err := f.svc.Balances.TotalsForUser(f.ctx, f.userID, &asOf)
	require.NoError(t, err)
	allTime, err := f.svc.Balances.TotalsForUser(f.ctx, f.userID, nil)
	require.NoError(t, err)

	byID := func(rows []domain.AccountBalance) map[string]string {
		out := map[string]string{}
		for _, r := range rows {
			out[r.AccountID] = money.String(r.Balance)
		}
		return out
	}
	assert.Equal(t, "1000.000000", byID(november)[checking.AccountID])
	assert.Equal(t, "800.000000", byID(allTime)[checking.AccountID])
	assert.Equal(t, "0.000000", byID(allTime)[savings.AccountID], "accounts without entries are listed")
	assert.Len(t, allTime, 4, "checking, savings and both external accounts")
}

func TestBalancesRestatedInDefaultCurrency(t *testing.T) {
	f := newLedgerFixture(t)
	wallet := f.account(t, "Euro Wallet", domain.Asset, "EUR")
	f.income(t, wallet.AccountID, "100", day(2025, 11, 5), nil)

	_, err := f.svc.ExchangeRate.CreateExchangeRate(f.ctx, f.userID, dto.CreateExchangeRateRequest{
		FromCurrencyCode: "EUR", ToCurrencyCode: "USD", Rate: decimal.RequireFromString("1.1"), DateEffective: day(2025, 11, 1),
	})
	require.NoError(t, err)

	rows, err := f.svc.Balances.TotalsForUser(f.ctx, f.userID, nil)
	require.NoError(t, err)
	for _, row := range rows {
		if row.AccountID != wallet.AccountID {
			continue
		}
		require.NotNil(t, row.BalanceInDefault)
		assert.Equal(t, "110.000000", money.String(*row.BalanceInDefault))
		assert.Equal(t, "USD", row.DefaultCurrencyCode)
	}
}

func TestBudgetPeriodSpent(t *testing.T) {
	f := newLedgerFixture(t)
	checking := f.account(t, "Checking", domain.Asset, "USD")
	category, period := f.budgetWithPeriod(t, "500")

	f.income(t, checking.AccountID, "1000", day(2025, 10, 31), nil)
	first := f.expense(t, checking.AccountID, "120.00", day(2025, 11, 3), &category.CategoryID)
	f.expense(t, checking.AccountID, "55.50", day(2025, 11, 18), &category.CategoryID)
	f.income(t, checking.AccountID, "300.00", day(2025, 11, 20), &category.CategoryID)

	require.NotNil(t, first.BudgetPeriodID)
	assert.Equal(t, period.BudgetPeriodID, *first.BudgetPeriodID)

	spent, err := f.svc.Spent.Total(f.ctx, period)
	require.NoError(t, err)
	assert.Equal(t, "175.500000", money.String(spent))
}

func TestReplayedExpenseCarriesBudgetPeriod(t *testing.T) {
	f := newLedgerFixture(t)
	checking := f.account(t, "Checking", domain.Asset, "USD")
	category, period := f.budgetWithPeriod(t, "500")
	f.income(t, checking.AccountID, "1000", day(2025, 10, 31), nil)

	key := "groceries-2025-11-03"
	req := dto.RegisterFlowRequest{
		AccountID:      checking.AccountID,
		Amount:         decimal.RequireFromString("42"),
		Description:    "Shopping",
		EffectiveAt:    day(2025, 11, 3),
		CategoryID:     &category.CategoryID,
		IdempotencyKey: &key,
	}
	first, err := f.svc.Actions.RegisterExpense(f.ctx, f.userID, req)
	require.NoError(t, err)
	require.NotNil(t, first.BudgetPeriod)

	again, err := f.svc.Actions.RegisterExpense(f.ctx, f.userID, req)
	require.NoError(t, err)
	assert.Equal(t, first.TransactionID, again.TransactionID)
	require.NotNil(t, again.BudgetPeriod)
	assert.Equal(t, period.BudgetPeriodID, again.BudgetPeriod.BudgetPeriodID)
	assert.Equal(t, 2, f.transactionCount(t))
}

func TestBudgetPeriodSummaryIsCachedAndStale(t *testing.T) {
	f := newLedgerFixture(t)
	checking := f.account(t, "Checking", domain.Asset, "USD")
	category, period := f.budgetWithPeriod(t, "500")
	f.income(t, checking.AccountID, "1000", day(2025, 10, 31), nil)
	f.expense(t, checking.AccountID, "175.5", day(2025, 11, 3), &category.CategoryID)

	before, err := f.svc.BudgetPeriods.GetSummary(f.ctx, f.userID, period.BudgetPeriodID)
	require.NoError(t, err)
	assert.True(t, before.Stale)
	assert.Nil(t, before.RefreshedAt, "never refreshed")
	assert.Equal(t, "0.000000", money.String(before.Spent))

	after, err := f.svc.BudgetPeriods.RefreshSummary(f.ctx, f.userID, period.BudgetPeriodID)
	require.NoError(t, err)
	assert.True(t, after.Stale)
	assert.NotNil(t, after.RefreshedAt)
	assert.Equal(t, "175.500000", money.String(after.Spent))
	assert.Equal(t, "324.500000", money.String(after.Remaining))
	assert.Equal(t, "35.100000", money.String(after.UsagePercent))

	_, err = f.svc.BudgetPeriods.GetSummary(f.ctx, uuid.NewString(), period.BudgetPeriodID)
	assert.ErrorIs(t, err, services.ErrBudgetPeriodNotFound)
}

func TestRegisterExpenseChecksFunds(t *testing.T) {
	f := newLedgerFixture(t)
	checking := f.account(t, "Checking", domain.Asset, "USD")
	card := f.account(t, "Credit Card", domain.Liability, "USD")

	_, err := f.svc.Actions.RegisterExpense(f.ctx, f.userID, dto.RegisterFlowRequest{
		AccountID: checking.AccountID, Amount: decimal.RequireFromString("10"), Description: "Coffee", EffectiveAt: day(2025, 11, 5),
	})
	assert.ErrorIs(t, err, services.ErrInsufficientFunds)

	f.expense(t, card.AccountID, "10", day(2025, 11, 5), nil)
	assert.Equal(t, "-10.000000", f.balanceOf(t, card.AccountID), "liabilities may go negative")

	_, err = f.svc.Actions.RegisterExpense(f.ctx, f.userID, dto.RegisterFlowRequest{
		AccountID: checking.AccountID, Amount: decimal.RequireFromString("-3"), Description: "Refund?", EffectiveAt: day(2025, 11, 5),
	})
	assert.ErrorIs(t, err, services.ErrAmountMustBeNonZero)
}

func TestRegisterActionsRejectForeignAccount(t *testing.T) {
	f := newLedgerFixture(t)
	other := newLedgerFixture(t)
	foreign := other.account(t, "Checking", domain.Asset, "USD")

	_, err := f.svc.Actions.RegisterIncome(f.ctx, f.userID, dto.RegisterFlowRequest{
		AccountID: foreign.AccountID, Amount: decimal.RequireFromString("10"), Description: "Gift", EffectiveAt: day(2025, 11, 5),
	})
	assert.ErrorIs(t, err, services.ErrAccountNotFound)
}

func TestTransferFunds(t *testing.T) {
	f := newLedgerFixture(t)
	checking := f.account(t, "Checking", domain.Asset, "USD")
	savings := f.account(t, "Savings", domain.Asset, "USD")
	wallet := f.account(t, "Euro Wallet", domain.Asset, "EUR")
	f.income(t, checking.AccountID, "1000", day(2025, 11, 1), nil)

	same, err := f.svc.Actions.TransferFunds(f.ctx, f.userID, dto.TransferRequest{
		FromAccountID: checking.AccountID, ToAccountID: savings.AccountID,
		Amount: decimal.RequireFromString("250"), Description: "Save", EffectiveAt: day(2025, 11, 2),
	})
	require.NoError(t, err)
	assert.Len(t, same.Entries, 2)

	toAmount := decimal.RequireFromString("100")
	cross, err := f.svc.Actions.TransferFunds(f.ctx, f.userID, dto.TransferRequest{
		FromAccountID: checking.AccountID, ToAccountID: wallet.AccountID,
		Amount: decimal.RequireFromString("110"), ToAmount: &toAmount, Description: "Trip", EffectiveAt: day(2025, 11, 3),
	})
	require.NoError(t, err)
	require.Len(t, cross.Entries, 4)

	baseSum := decimal.Zero
	for _, e := range cross.Entries {
		baseSum = baseSum.Add(e.BaseAmount())
	}
	assert.True(t, baseSum.IsZero())

	assert.Equal(t, "640.000000", f.balanceOf(t, checking.AccountID))
	assert.Equal(t, "250.000000", f.balanceOf(t, savings.AccountID))
	assert.Equal(t, "100.000000", f.balanceOf(t, wallet.AccountID))

	usdFX, err := f.svc.Fundamental.ResolveFundamentalAccount(f.ctx, f.userID, "USD", domain.Equity)
	require.NoError(t, err)
	eurFX, err := f.svc.Fundamental.ResolveFundamentalAccount(f.ctx, f.userID, "EUR", domain.Equity)
	require.NoError(t, err)
	assert.Equal(t, "Currency Exchange", usdFX.Name)
	assert.Equal(t, "Currency Exchange (EUR)", eurFX.Name)
	assert.Equal(t, "110.000000", f.balanceOf(t, usdFX.AccountID))
	assert.Equal(t, "-100.000000", f.balanceOf(t, eurFX.AccountID))
}

func TestTransferBetweenForeignCurrenciesNeedsBase(t *testing.T) {
	f := newLedgerFixture(t)
	wallet := f.account(t, "Euro Wallet", domain.Asset, "EUR")
	pounds := f.account(t, "Pound Wallet", domain.Asset, "GBP")
	toAmount := decimal.RequireFromString("85")

	_, err := f.svc.Actions.TransferFunds(f.ctx, f.userID, dto.TransferRequest{
		FromAccountID: wallet.AccountID, ToAccountID: pounds.AccountID,
		Amount: decimal.RequireFromString("100"), ToAmount: &toAmount, Description: "Swap", EffectiveAt: day(2025, 11, 3),
	})
	assert.Error(t, err)
	assert.Equal(t, 0, f.transactionCount(t))
}

func TestRecordDebt(t *testing.T) {
	f := newLedgerFixture(t)
	checking := f.account(t, "Checking", domain.Asset, "USD")
	receivable := f.accountWithSubtype(t, "Loan to Sam", domain.Asset, domain.SubtypeLoanReceivable, "USD")
	payable := f.accountWithSubtype(t, "Loan from Bank", domain.Liability, domain.SubtypeLoanPayable, "USD")

	debt := func(kind dto.DebtKind, loanID, amount string) error {
		_, err := f.svc.Actions.RecordDebt(f.ctx, f.userID, dto.DebtRequest{
			Kind: kind, AccountID: checking.AccountID, LoanAccountID: loanID,
			Amount: decimal.RequireFromString(amount), Description: string(kind), EffectiveAt: day(2025, 11, 5),
		})
		return err
	}

	require.NoError(t, debt(dto.DebtBorrow, payable.AccountID, "500"))
	require.NoError(t, debt(dto.DebtLend, receivable.AccountID, "80"))
	require.NoError(t, debt(dto.DebtCollect, receivable.AccountID, "30"))
	require.NoError(t, debt(dto.DebtRepay, payable.AccountID, "100"))

	assert.Equal(t, "350.000000", f.balanceOf(t, checking.AccountID))
	assert.Equal(t, "50.000000", f.balanceOf(t, receivable.AccountID))
	assert.Equal(t, "-400.000000", f.balanceOf(t, payable.AccountID))

	assert.ErrorIs(t, debt(dto.DebtLend, payable.AccountID, "1"), services.ErrAccountSubtypeMismatch)
}

func TestAccountLifecycle(t *testing.T) {
	f := newLedgerFixture(t)
	checking := f.account(t, "Checking", domain.Asset, "USD")
	spare := f.account(t, "Spare", domain.Asset, "USD")
	f.income(t, checking.AccountID, "10", day(2025, 11, 5), nil)

	_, err := f.svc.Account.CreateAccount(f.ctx, f.userID, dto.CreateAccountRequest{Name: "Checking", AccountType: domain.Asset, CurrencyCode: "USD"})
	assert.Error(t, err, "names are unique per user")

	_, err = f.svc.Account.CreateAccount(f.ctx, f.userID, dto.CreateAccountRequest{Name: "External Income (JPY)", AccountType: domain.Income, CurrencyCode: "JPY"})
	assert.ErrorIs(t, err, services.ErrReservedAccountName)

	assert.ErrorIs(t, f.svc.Account.DeleteAccount(f.ctx, f.userID, checking.AccountID), services.ErrAccountHasEntries)
	assert.NoError(t, f.svc.Account.DeleteAccount(f.ctx, f.userID, spare.AccountID))

	archived, err := f.svc.Account.ArchiveAccount(f.ctx, f.userID, checking.AccountID)
	require.NoError(t, err)
	assert.True(t, archived.IsArchived)

	_, err = f.svc.Actions.RegisterIncome(f.ctx, f.userID, dto.RegisterFlowRequest{
		AccountID: checking.AccountID, Amount: decimal.RequireFromString("1"), Description: "late", EffectiveAt: day(2025, 11, 6),
	})
	assert.ErrorIs(t, err, services.ErrAccountArchived)

	sink, err := f.svc.Fundamental.ResolveFundamentalAccount(f.ctx, f.userID, "USD", domain.Income)
	require.NoError(t, err)
	_, err = f.svc.Account.ArchiveAccount(f.ctx, f.userID, sink.AccountID)
	assert.ErrorIs(t, err, services.ErrFundamentalAccountImmutable)
}

func TestListTransactionsPaginates(t *testing.T) {
	f := newLedgerFixture(t)
	checking := f.account(t, "Checking", domain.Asset, "USD")
	for i := 1; i <= 5; i++ {
		f.income(t, checking.AccountID, "1", day(2025, 11, i), nil)
	}

	page1, err := f.svc.Ledger.ListTransactions(f.ctx, f.userID, dto.ListTransactionsParams{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page1.Transactions, 2)
	require.NotNil(t, page1.NextToken)
	assert.True(t, page1.Transactions[0].EffectiveAt.Equal(day(2025, 11, 5)), "newest first")

	page2, err := f.svc.Ledger.ListTransactions(f.ctx, f.userID, dto.ListTransactionsParams{Limit: 2, NextToken: page1.NextToken})
	require.NoError(t, err)
	require.Len(t, page2.Transactions, 2)
	assert.True(t, page2.Transactions[0].EffectiveAt.Equal(day(2025, 11, 3)))

	page3, err := f.svc.Ledger.ListTransactions(f.ctx, f.userID, dto.ListTransactionsParams{Limit: 2, NextToken: page2.NextToken})
	require.NoError(t, err)
	assert.Len(t, page3.Transactions, 1)
	assert.Nil(t, page3.NextToken)
}
