// Package events is the in-process bus the ledger uses to announce committed writes.
package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/budget_ledger/internal/core/domain"
)

// Event names.
const (
	TransactionCreatedEvent = "ledger.transaction.created"
	TransactionUpdatedEvent = "ledger.transaction.updated"
)

// Event is anything that can be dispatched on the bus.
type Event interface {
	Name() string
}

// TransactionCreated is emitted after a transaction and its entries have been committed.
// The transaction carries its entries and budget period.
type TransactionCreated struct {
	Transaction domain.Transaction
	OccurredAt  time.Time
}

func (TransactionCreated) Name() string { return TransactionCreatedEvent }

// TransactionUpdated is emitted after header details of a transaction changed.
type TransactionUpdated struct {
	Transaction            domain.Transaction
	PreviousBudgetPeriodID *string
	OccurredAt             time.Time
}

func (TransactionUpdated) Name() string { return TransactionUpdatedEvent }

// Handler reacts to a dispatched event.
type Handler func(ctx context.Context, event Event) error

// Dispatcher delivers events to their subscribers.
type Dispatcher interface {
	Dispatch(ctx context.Context, event Event) error
}

// Bus is a synchronous, concurrency-safe Dispatcher.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]Handler)}
}

// Subscribe registers h for events with the given name.
func (b *Bus) Subscribe(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], h)
}

// Dispatch calls every subscriber of the event in registration order.
// All handlers run even if one fails; the failures are joined.
func (b *Bus) Dispatch(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Name()]...)
	b.mu.RUnlock()

	var errs []error
	for _, h := range handlers {
		if err := h(ctx, event); err != nil {
			errs = append(errs, fmt.Errorf("handler for %s: %w", event.Name(), err))
		}
	}
	return errors.Join(errs...)
}

var _ Dispatcher = (*Bus)(nil)
