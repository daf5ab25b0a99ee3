package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/budget_ledger/internal/apperrors"
	"github.com/SscSPs/budget_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/budget_ledger/internal/models"
	"github.com/SscSPs/budget_ledger/internal/utils/mapping"
	"github.com/SscSPs/budget_ledger/internal/utils/pagination"
)

const transactionColumns = `transaction_id, user_id, description, effective_at, posted_at, reference, source,
	idempotency_key, category_id, budget_period_id, created_at, created_by, last_updated_at, last_updated_by`

const entryColumns = `entry_id, transaction_id, account_id, amount, currency_code, amount_base, category_id, memo`

// PgxTransactionRepository stores transaction headers and their entries.
type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// SaveTransaction writes the header and all entries inside one database transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	m := mapping.ToModelTransaction(txn)
	headerQuery := `
		INSERT INTO transactions (transaction_id, user_id, description, effective_at, posted_at, reference, source,
			idempotency_key, category_id, budget_period_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, headerQuery,
		m.TransactionID,
		m.UserID,
		m.Description,
		m.EffectiveAt,
		m.PostedAt,
		m.Reference,
		m.Source,
		m.IdempotencyKey,
		m.CategoryID,
		m.BudgetPeriodID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "transaction "+m.TransactionID)
	}

	entryQuery := `
		INSERT INTO entries (entry_id, transaction_id, account_id, line_no, amount, currency_code, amount_base, category_id, memo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	batch := &pgx.Batch{}
	for i, e := range txn.Entries {
		me := mapping.ToModelEntry(e)
		batch.Queue(entryQuery,
			me.EntryID,
			m.TransactionID,
			me.AccountID,
			i,
			me.Amount,
			me.CurrencyCode,
			me.AmountBase,
			me.CategoryID,
			me.Memo,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for range txn.Entries {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return translateError(err, "entries of transaction "+m.TransactionID)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close entry batch for transaction %s: %w", m.TransactionID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateTransactionDetails rewrites the editable header columns. Entries are never touched.
func (r *PgxTransactionRepository) UpdateTransactionDetails(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET description = $1, effective_at = $2, reference = $3, category_id = $4, budget_period_id = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE transaction_id = $8;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Description, m.EffectiveAt, m.Reference, m.CategoryID, m.BudgetPeriodID,
		m.LastUpdatedAt, m.LastUpdatedBy, m.TransactionID)
	if err != nil {
		return translateError(err, "transaction "+m.TransactionID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction " + m.TransactionID)
	}
	return nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	return r.findOne(ctx, "transaction "+transactionID, query, transactionID)
}

func (r *PgxTransactionRepository) FindTransactionByIdempotencyKey(ctx context.Context, userID, idempotencyKey string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 AND idempotency_key = $2;`
	return r.findOne(ctx, "transaction with idempotency key "+idempotencyKey, query, userID, idempotencyKey)
}

func (r *PgxTransactionRepository) findOne(ctx context.Context, what, query string, args ...any) (*domain.Transaction, error) {
	rows, _ := r.Pool.Query(ctx, query, args...)
	header, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, translateError(err, what)
	}

	entries, err := r.loadEntries(ctx, []string{header.TransactionID})
	if err != nil {
		return nil, err
	}
	txn := mapping.ToDomainTransaction(header, entries[header.TransactionID])
	return &txn, nil
}

// ListTransactionsByUser pages newest first on (effective_at, created_at, transaction_id).
func (r *PgxTransactionRepository) ListTransactionsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = portsrepo.DefaultPageSize
	}

	args := []any{userID}
	cursorClause := ""
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		cursorClause = `AND (effective_at, created_at, transaction_id) < ($2, $3, $4::uuid)`
		args = append(args, cursor.EffectiveAt, cursor.CreatedAt, cursor.ID)
	}
	args = append(args, limit+1)

	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions
		WHERE user_id = $1 %s
		ORDER BY effective_at DESC, created_at DESC, transaction_id DESC
		LIMIT $%d;
	`, transactionColumns, cursorClause, len(args))

	rows, _ := r.Pool.Query(ctx, query, args...)
	headers, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions for user %s: %w", userID, err)
	}

	var next *string
	if len(headers) > limit {
		headers = headers[:limit]
		last := headers[len(headers)-1]
		token := pagination.EncodeToken(pagination.Cursor{EffectiveAt: last.EffectiveAt, CreatedAt: last.CreatedAt, ID: last.TransactionID})
		next = &token
	}

	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.TransactionID
	}
	entries, err := r.loadEntries(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	txns := make([]domain.Transaction, len(headers))
	for i, h := range headers {
		txns[i] = mapping.ToDomainTransaction(h, entries[h.TransactionID])
	}
	return txns, next, nil
}

// loadEntries returns the entries of each transaction in posting order.
func (r *PgxTransactionRepository) loadEntries(ctx context.Context, transactionIDs []string) (map[string][]models.Entry, error) {
	grouped := make(map[string][]models.Entry, len(transactionIDs))
	if len(transactionIDs) == 0 {
		return grouped, nil
	}

	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE transaction_id = ANY($1::uuid[])
		ORDER BY transaction_id, line_no;
	`
	rows, _ := r.Pool.Query(ctx, query, transactionIDs)
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Entry])
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	for _, m := range ms {
		grouped[m.TransactionID] = append(grouped[m.TransactionID], m)
	}
	return grouped, nil
}
