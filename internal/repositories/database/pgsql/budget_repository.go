package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/budget_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/budget_ledger/internal/models"
	"github.com/SscSPs/budget_ledger/internal/utils/mapping"
)

const budgetPeriodColumns = `budget_period_id, budget_id, start_at, end_at, amount, currency_code`

// PgxBudgetRepository reads the budget, category and period directory.
type PgxBudgetRepository struct {
	BaseRepository
}

func newPgxBudgetRepository(pool *pgxpool.Pool) *PgxBudgetRepository {
	return &PgxBudgetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)
	_, err := r.Pool.Exec(ctx,
		`INSERT INTO budgets (budget_id, user_id, name, currency_code) VALUES ($1, $2, $3, $4);`,
		m.BudgetID, m.UserID, m.Name, m.CurrencyCode)
	return translateError(err, "budget "+m.BudgetID)
}

func (r *PgxBudgetRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	_, err := r.Pool.Exec(ctx,
		`INSERT INTO categories (category_id, user_id, name, budget_id) VALUES ($1, $2, $3, $4);`,
		m.CategoryID, m.UserID, m.Name, m.BudgetID)
	return translateError(err, "category "+m.CategoryID)
}

func (r *PgxBudgetRepository) SaveBudgetPeriod(ctx context.Context, period domain.BudgetPeriod) error {
	m := mapping.ToModelBudgetPeriod(period)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO budget_periods (budget_period_id, budget_id, start_at, end_at, amount, currency_code)
		VALUES ($1, $2, $3, $4, $5, $6);
	`, m.BudgetPeriodID, m.BudgetID, m.StartAt, m.EndAt, m.Amount, m.CurrencyCode)
	return translateError(err, "budget period "+m.BudgetPeriodID)
}

func (r *PgxBudgetRepository) FindCategoriesByIDs(ctx context.Context, categoryIDs []string) (map[string]domain.Category, error) {
	result := make(map[string]domain.Category, len(categoryIDs))
	categoryIDs = wellFormedIDs(categoryIDs)
	if len(categoryIDs) == 0 {
		return result, nil
	}

	rows, _ := r.Pool.Query(ctx,
		`SELECT category_id, user_id, name, budget_id FROM categories WHERE category_id = ANY($1::uuid[]);`,
		categoryIDs)
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Category])
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	for _, m := range ms {
		result[m.CategoryID] = mapping.ToDomainCategory(m)
	}
	return result, nil
}

func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	rows, _ := r.Pool.Query(ctx,
		`SELECT budget_id, user_id, name, currency_code FROM budgets WHERE budget_id = $1;`, budgetID)
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Budget])
	if err != nil {
		return nil, translateError(err, "budget "+budgetID)
	}
	budget := mapping.ToDomainBudget(m)
	return &budget, nil
}

func (r *PgxBudgetRepository) FindBudgetPeriodByID(ctx context.Context, budgetPeriodID string) (*domain.BudgetPeriod, error) {
	query := `SELECT ` + budgetPeriodColumns + ` FROM budget_periods WHERE budget_period_id = $1;`
	return r.findPeriod(ctx, "budget period "+budgetPeriodID, query, budgetPeriodID)
}

// FindBudgetPeriodCovering picks the latest-starting period containing at.
func (r *PgxBudgetRepository) FindBudgetPeriodCovering(ctx context.Context, budgetID string, at time.Time) (*domain.BudgetPeriod, error) {
	query := `
		SELECT ` + budgetPeriodColumns + `
		FROM budget_periods
		WHERE budget_id = $1 AND start_at <= $2 AND end_at > $2
		ORDER BY start_at DESC
		LIMIT 1;
	`
	return r.findPeriod(ctx, fmt.Sprintf("budget period of %s covering %s", budgetID, at.Format(time.RFC3339)), query, budgetID, at)
}

func (r *PgxBudgetRepository) findPeriod(ctx context.Context, what, query string, args ...any) (*domain.BudgetPeriod, error) {
	rows, _ := r.Pool.Query(ctx, query, args...)
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.BudgetPeriod])
	if err != nil {
		return nil, translateError(err, what)
	}
	period := mapping.ToDomainBudgetPeriod(m)
	return &period, nil
}
