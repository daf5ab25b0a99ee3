package mapping

import (
	"github.com/SscSPs/budget_ledger/internal/core/domain"
	"github.com/SscSPs/budget_ledger/internal/models"
)

// ToModelCachedAggregate flattens the aggregate ref and folds a nil scope into ''.
func ToModelCachedAggregate(d domain.CachedAggregate) models.CachedAggregate {
	return models.CachedAggregate{
		AggregateID:      d.AggregateID,
		AggregatableType: string(d.Ref.Kind),
		AggregatableID:   d.Ref.ID,
		Key:              string(d.Key),
		Scope:            ScopeColumn(d.Scope),
		ValueDecimal:     d.ValueDecimal,
		ValueInt:         d.ValueInt,
		ValueJSON:        d.ValueJSON,
		RefreshedAt:      d.RefreshedAt,
	}
}

func ToDomainCachedAggregate(m models.CachedAggregate) domain.CachedAggregate {
	var scope *string
	if m.Scope != "" {
		s := m.Scope
		scope = &s
	}
	return domain.CachedAggregate{
		AggregateID:  m.AggregateID,
		Ref:          domain.AggregateRef{Kind: domain.AggregatableKind(m.AggregatableType), ID: m.AggregatableID},
		Key:          domain.AggregateKey(m.Key),
		Scope:        scope,
		ValueDecimal: m.ValueDecimal,
		ValueInt:     m.ValueInt,
		ValueJSON:    m.ValueJSON,
		RefreshedAt:  m.RefreshedAt,
	}
}

// ScopeColumn is the stored form of an optional scope.
func ScopeColumn(scope *string) string {
	if scope == nil {
		return ""
	}
	return *scope
}
