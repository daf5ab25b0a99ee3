package repositories

// Unique constraints the services react to. Adapters report violations of these
// through apperrors.DuplicateError carrying the same name.
const (
	// ConstraintAccountUserName guards (user_id, name) on accounts.
	ConstraintAccountUserName = "accounts_user_id_name_key"

	// ConstraintTransactionIdempotencyKey guards (user_id, idempotency_key) on transactions.
	ConstraintTransactionIdempotencyKey = "transactions_user_id_idempotency_key_key"

	// ConstraintCachedAggregateKey guards (aggregatable_type, aggregatable_id, key, scope).
	ConstraintCachedAggregateKey = "cached_aggregates_ref_key_scope_key"
)

// DefaultPageSize is used when a list call passes a non-positive limit.
const DefaultPageSize = 20
