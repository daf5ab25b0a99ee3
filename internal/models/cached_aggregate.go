package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CachedAggregate is a row of cached_aggregates. Scope is stored as '' when unset
// so the unique key treats it as a value.
type CachedAggregate struct {
	AggregateID      string           `db:"aggregate_id"`
	AggregatableType string           `db:"aggregatable_type"`
	AggregatableID   string           `db:"aggregatable_id"`
	Key              string           `db:"key"`
	Scope            string           `db:"scope"`
	ValueDecimal     *decimal.Decimal `db:"value_decimal"`
	ValueInt         *int64           `db:"value_int"`
	ValueJSON        []byte           `db:"value_json"`
	RefreshedAt      time.Time        `db:"refreshed_at"`
}
