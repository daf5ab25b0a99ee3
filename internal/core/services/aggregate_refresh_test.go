package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/budget_ledger/internal/core/domain"
	"github.com/SscSPs/budget_ledger/internal/core/money"
	"github.com/SscSPs/budget_ledger/internal/core/services"
	"github.com/SscSPs/budget_ledger/internal/dto"
	"github.com/SscSPs/budget_ledger/internal/events"
	"github.com/SscSPs/budget_ledger/internal/jobs"
	"github.com/SscSPs/budget_ledger/internal/jobs/inmemory"
	"github.com/SscSPs/budget_ledger/internal/repositories/memory"
)

type recordingPublisher struct {
	jobs []*jobs.RefreshBudgetPeriodJob
}

func (p *recordingPublisher) PublishRefreshBudgetPeriod(ctx context.Context, job *jobs.RefreshBudgetPeriodJob) error {
	p.jobs = append(p.jobs, job)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func TestAggregateRefreshListenerRefreshesOldAndNewPeriod(t *testing.T) {
	publisher := &recordingPublisher{}
	listener := services.NewAggregateRefreshListener(publisher)
	oldPeriod, newPeriod := uuid.NewString(), uuid.NewString()

	err := listener.Handle(context.Background(), events.TransactionUpdated{
		Transaction:            domain.Transaction{TransactionID: "t1", BudgetPeriodID: &newPeriod},
		PreviousBudgetPeriodID: &oldPeriod,
	})

	require.NoError(t, err)
	require.Len(t, publisher.jobs, 2)
	assert.Equal(t, newPeriod, publisher.jobs[0].BudgetPeriodID)
	assert.Equal(t, oldPeriod, publisher.jobs[1].BudgetPeriodID)
	assert.Equal(t, "t1", publisher.jobs[1].TriggeredBy)
}

func TestAggregateRefreshListenerSkipsUnbudgeted(t *testing.T) {
	publisher := &recordingPublisher{}
	listener := services.NewAggregateRefreshListener(publisher)

	require.NoError(t, listener.Handle(context.Background(), events.TransactionCreated{Transaction: domain.Transaction{TransactionID: "t2"}}))
	assert.Empty(t, publisher.jobs)
}

func TestCreatedTransactionsRefreshCacheAsynchronously(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := events.NewBus()
	queue := inmemory.NewQueue(16, inmemory.NewStore(), inmemory.WithWorkers(2), inmemory.WithRetryBackoff(10*time.Millisecond))
	services.NewAggregateRefreshListener(queue).Register(bus)

	f := newLedgerFixture(t, services.WithEventDispatcher(bus))
	repos := memory.NewRepositoryProvider(f.store)
	require.NoError(t, queue.Start(ctx, services.NewRefreshBudgetPeriodJobHandler(repos.BudgetRepo, f.svc.Aggregates)))
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
		defer stopCancel()
		_ = queue.Stop(stopCtx)
	}()

	checking := f.account(t, "Checking", domain.Asset, "USD")
	category, period := f.budgetWithPeriod(t, "200")
	f.income(t, checking.AccountID, "1000", day(2025, 10, 1), nil)
	f.expense(t, checking.AccountID, "50", day(2025, 11, 10), &category.CategoryID)

	require.Eventually(t, func() bool {
		summary, err := f.svc.BudgetPeriods.GetSummary(ctx, f.userID, period.BudgetPeriodID)
		return err == nil && summary.RefreshedAt != nil && money.String(summary.Spent) == "50.000000"
	}, 2*time.Second, 10*time.Millisecond)

	// Moving the transaction out of the period refreshes the period it left.
	txns, err := f.svc.Ledger.ListTransactions(ctx, f.userID, dto.ListTransactionsParams{Limit: 1})
	require.NoError(t, err)
	moved := day(2025, 12, 15)
	_, err = f.svc.Ledger.UpdateTransactionDetails(ctx, f.userID, txns.Transactions[0].TransactionID, dto.UpdateTransactionRequest{EffectiveAt: &moved})
	require.ErrorIs(t, err, services.ErrBudgetPeriodNotFound, "no December period exists")

	empty := ""
	_, err = f.svc.Ledger.UpdateTransactionDetails(ctx, f.userID, txns.Transactions[0].TransactionID, dto.UpdateTransactionRequest{EffectiveAt: &moved, CategoryID: &empty})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		summary, err := f.svc.BudgetPeriods.GetSummary(ctx, f.userID, period.BudgetPeriodID)
		return err == nil && money.String(summary.Spent) == "0.000000"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestFullRefreshQueueDoesNotDelayWrites(t *testing.T) {
	bus := events.NewBus()
	queue := inmemory.NewQueue(1, inmemory.NewStore(), inmemory.WithWorkers(1))
	services.NewAggregateRefreshListener(queue).Register(bus)

	f := newLedgerFixture(t, services.WithEventDispatcher(bus))
	checking := f.account(t, "Checking", domain.Asset, "USD")
	category, period := f.budgetWithPeriod(t, "200")
	f.income(t, checking.AccountID, "1000", day(2025, 10, 1), nil)

	for i, amount := range []string{"30", "45"} {
		reqCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		started := time.Now()
		_, err := f.svc.Actions.RegisterExpense(reqCtx, f.userID, dto.RegisterFlowRequest{
			AccountID:   checking.AccountID,
			Amount:      decimal.RequireFromString(amount),
			Description: "Groceries",
			EffectiveAt: day(2025, 11, 10+i),
			CategoryID:  &category.CategoryID,
		})
		cancel()
		require.NoError(t, err)
		assert.Less(t, time.Since(started), 250*time.Millisecond, "expense %d waited on the refresh queue", i)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	repos := memory.NewRepositoryProvider(f.store)
	require.NoError(t, queue.Start(ctx, services.NewRefreshBudgetPeriodJobHandler(repos.BudgetRepo, f.svc.Aggregates)))
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
		defer stopCancel()
		_ = queue.Stop(stopCtx)
	}()

	require.Eventually(t, func() bool {
		summary, err := f.svc.BudgetPeriods.GetSummary(ctx, f.userID, period.BudgetPeriodID)
		return err == nil && summary.RefreshedAt != nil && money.String(summary.Spent) == "75.000000"
	}, 2*time.Second, 10*time.Millisecond)
}
