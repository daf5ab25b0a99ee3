package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/budget_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_ledger/internal/core/ports/services"
	"github.com/SscSPs/budget_ledger/internal/events"
	"github.com/SscSPs/budget_ledger/internal/jobs"
	"github.com/SscSPs/budget_ledger/internal/middleware"
)

// AggregateRefreshListener turns committed ledger writes into budget period refresh jobs.
type AggregateRefreshListener struct {
	publisher jobs.Publisher
}

func NewAggregateRefreshListener(publisher jobs.Publisher) *AggregateRefreshListener {
	return &AggregateRefreshListener{publisher: publisher}
}

// Register subscribes the listener to transaction events on bus.
func (l *AggregateRefreshListener) Register(bus *events.Bus) {
	bus.Subscribe(events.TransactionCreatedEvent, l.Handle)
	bus.Subscribe(events.TransactionUpdatedEvent, l.Handle)
}

// Handle enqueues one refresh per affected budget period. An update that moved the
// transaction refreshes both the old and the new period.
func (l *AggregateRefreshListener) Handle(ctx context.Context, event events.Event) error {
	var transactionID string
	var periodIDs []string

	switch e := event.(type) {
	case events.TransactionCreated:
		transactionID = e.Transaction.TransactionID
		if e.Transaction.BudgetPeriodID != nil {
			periodIDs = append(periodIDs, *e.Transaction.BudgetPeriodID)
		}
	case events.TransactionUpdated:
		transactionID = e.Transaction.TransactionID
		if e.Transaction.BudgetPeriodID != nil {
			periodIDs = append(periodIDs, *e.Transaction.BudgetPeriodID)
		}
		if e.PreviousBudgetPeriodID != nil {
			periodIDs = append(periodIDs, *e.PreviousBudgetPeriodID)
		}
	default:
		return nil
	}

	// Jobs outlive the request that triggered them.
	publishCtx := context.WithoutCancel(ctx)
	var errs []error
	for _, periodID := range uniqueStrings(periodIDs) {
		job := &jobs.RefreshBudgetPeriodJob{BudgetPeriodID: periodID, TriggeredBy: transactionID}
		if err := l.publisher.PublishRefreshBudgetPeriod(publishCtx, job); err != nil {
			errs = append(errs, fmt.Errorf("enqueue refresh of budget period %s: %w", periodID, err))
			continue
		}
		middleware.GetLoggerFromCtx(ctx).Debug("Budget period refresh enqueued",
			slog.String("budget_period_id", periodID),
			slog.String("job_id", job.JobID))
	}
	return errors.Join(errs...)
}

// NewRefreshBudgetPeriodJobHandler returns the worker-side handler for refresh jobs.
func NewRefreshBudgetPeriodJobHandler(budgetRepo portsrepo.BudgetReader, aggregates portssvc.BudgetPeriodAggregatesSvc) jobs.JobHandler {
	return func(ctx context.Context, job jobs.Job) error {
		refresh, ok := job.(*jobs.RefreshBudgetPeriodJob)
		if !ok {
			return fmt.Errorf("unexpected job type %s", job.GetType())
		}
		period, err := budgetRepo.FindBudgetPeriodByID(ctx, refresh.BudgetPeriodID)
		if err != nil {
			return fmt.Errorf("load budget period %s: %w", refresh.BudgetPeriodID, err)
		}
		return aggregates.Execute(ctx, *period)
	}
}
