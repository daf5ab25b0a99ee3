package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// AggregatableKind names an entity type that can own cached aggregates.
type AggregatableKind string

const (
	AggregatableBudgetPeriod AggregatableKind = "BUDGET_PERIOD"
)

// AggregateKey names a cached value.
type AggregateKey string

const (
	AggregateSpent AggregateKey = "SPENT"
)

// AggregateRef is the stable (kind, id) key of an aggregatable entity.
type AggregateRef struct {
	Kind AggregatableKind `json:"kind"`
	ID   string           `json:"id"`
}

// Aggregatable is implemented by entities that own cached aggregates.
type Aggregatable interface {
	AggregateRef() AggregateRef
}

// CachedAggregate is a recomputed value stored under (ref, key, scope).
type CachedAggregate struct {
	AggregateID  string           `json:"aggregateID"`
	Ref          AggregateRef     `json:"ref"`
	Key          AggregateKey     `json:"key"`
	Scope        *string          `json:"scope,omitempty"`
	ValueDecimal *decimal.Decimal `json:"valueDecimal,omitempty"`
	ValueInt     *int64           `json:"valueInt,omitempty"`
	ValueJSON    json.RawMessage  `json:"valueJSON,omitempty"`
	RefreshedAt  time.Time        `json:"refreshedAt"`
}
