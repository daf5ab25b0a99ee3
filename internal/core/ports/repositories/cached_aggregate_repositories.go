package repositories

import (
	"context"

	"github.com/SscSPs/budget_ledger/internal/core/domain"
)

// CachedAggregateRepository stores recomputed values keyed by (ref, key, scope).
type CachedAggregateRepository interface {
	// UpsertAggregate inserts or replaces the value stored under the aggregate's key.
	UpsertAggregate(ctx context.Context, aggregate domain.CachedAggregate) error

	// FindAggregate returns apperrors.ErrNotFound when nothing has been computed yet.
	FindAggregate(ctx context.Context, ref domain.AggregateRef, key domain.AggregateKey, scope *string) (*domain.CachedAggregate, error)
}
