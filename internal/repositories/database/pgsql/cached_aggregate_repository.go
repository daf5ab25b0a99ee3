package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/budget_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/budget_ledger/internal/models"
	"github.com/SscSPs/budget_ledger/internal/utils/mapping"
)

type PgxCachedAggregateRepository struct {
	BaseRepository
}

func newPgxCachedAggregateRepository(pool *pgxpool.Pool) *PgxCachedAggregateRepository {
	return &PgxCachedAggregateRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CachedAggregateRepository = (*PgxCachedAggregateRepository)(nil)

// UpsertAggregate replaces the values under (type, id, key, scope); the row id of the
// first insert is kept.
func (r *PgxCachedAggregateRepository) UpsertAggregate(ctx context.Context, aggregate domain.CachedAggregate) error {
	m := mapping.ToModelCachedAggregate(aggregate)
	query := `
		INSERT INTO cached_aggregates (aggregate_id, aggregatable_type, aggregatable_id, key, scope,
			value_decimal, value_int, value_json, refreshed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT ON CONSTRAINT ` + portsrepo.ConstraintCachedAggregateKey + ` DO UPDATE
		SET value_decimal = EXCLUDED.value_decimal,
			value_int = EXCLUDED.value_int,
			value_json = EXCLUDED.value_json,
			refreshed_at = EXCLUDED.refreshed_at;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AggregateID, m.AggregatableType, m.AggregatableID, m.Key, m.Scope,
		m.ValueDecimal, m.ValueInt, m.ValueJSON, m.RefreshedAt)
	return translateError(err, "cached aggregate "+m.Key+" of "+m.AggregatableID)
}

func (r *PgxCachedAggregateRepository) FindAggregate(ctx context.Context, ref domain.AggregateRef, key domain.AggregateKey, scope *string) (*domain.CachedAggregate, error) {
	query := `
		SELECT aggregate_id, aggregatable_type, aggregatable_id, key, scope, value_decimal, value_int, value_json, refreshed_at
		FROM cached_aggregates
		WHERE aggregatable_type = $1 AND aggregatable_id = $2 AND key = $3 AND scope = $4;
	`
	rows, _ := r.Pool.Query(ctx, query, string(ref.Kind), ref.ID, string(key), mapping.ScopeColumn(scope))
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.CachedAggregate])
	if err != nil {
		return nil, translateError(err, "cached aggregate "+string(key)+" of "+ref.ID)
	}
	aggregate := mapping.ToDomainCachedAggregate(m)
	return &aggregate, nil
}
