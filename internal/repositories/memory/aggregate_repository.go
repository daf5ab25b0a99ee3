package memory

import (
	"context"

	"github.com/SscSPs/budget_ledger/internal/apperrors"
	"github.com/SscSPs/budget_ledger/internal/core/domain"
)

func newAggregateKey(ref domain.AggregateRef, key domain.AggregateKey, scope *string) aggregateKey {
	k := aggregateKey{ref: ref, key: key}
	if scope != nil {
		k.scope = *scope
	}
	return k
}

// UpsertAggregate replaces the value of an existing (ref, key, scope) row, keeping its id.
func (s *Store) UpsertAggregate(ctx context.Context, aggregate domain.CachedAggregate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := newAggregateKey(aggregate.Ref, aggregate.Key, aggregate.Scope)
	if existing, ok := s.aggregates[k]; ok {
		aggregate.AggregateID = existing.AggregateID
	}
	s.aggregates[k] = aggregate
	return nil
}

func (s *Store) FindAggregate(ctx context.Context, ref domain.AggregateRef, key domain.AggregateKey, scope *string) (*domain.CachedAggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	aggregate, ok := s.aggregates[newAggregateKey(ref, key, scope)]
	if !ok {
		return nil, apperrors.NewNotFoundError("cached aggregate " + string(key) + " of " + ref.ID)
	}
	return &aggregate, nil
}
