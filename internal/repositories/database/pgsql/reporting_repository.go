package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/budget_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_ledger/internal/core/ports/repositories"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a reporting repository. db may point at a read replica.
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// SumBalancesByUser returns one row per account of the user, zero-balance accounts included.
func (r *reportingRepository) SumBalancesByUser(ctx context.Context, userID string, asOf *time.Time) ([]domain.AccountBalance, error) {
	query := `
		SELECT
			a.account_id,
			a.name,
			a.account_type,
			a.currency_code,
			a.is_fundamental,
			COALESCE(s.total, 0) AS balance
		FROM accounts a
		LEFT JOIN (
			SELECT e.account_id, SUM(e.amount) AS total
			FROM entries e
			JOIN transactions t ON t.transaction_id = e.transaction_id
			WHERE t.user_id = $1
				AND ($2::timestamptz IS NULL OR t.effective_at <= $2)
			GROUP BY e.account_id
		) s ON s.account_id = a.account_id
		WHERE a.user_id = $1
		ORDER BY a.name
	`

	rows, err := r.Pool.Query(ctx, query, userID, asOf)
	if err != nil {
		return nil, fmt.Errorf("error querying account balances: %w", err)
	}
	defer rows.Close()

	result := make([]domain.AccountBalance, 0)
	for rows.Next() {
		var row domain.AccountBalance
		var accountType string

		if err := rows.Scan(
			&row.AccountID,
			&row.Name,
			&accountType,
			&row.CurrencyCode,
			&row.IsFundamental,
			&row.Balance,
		); err != nil {
			return nil, fmt.Errorf("error scanning account balance row: %w", err)
		}
		row.AccountType = domain.AccountType(accountType)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account balance rows: %w", err)
	}
	return result, nil
}

func (r *reportingRepository) SumBalanceForAccount(ctx context.Context, accountID string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.Pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM entries WHERE account_id = $1`, accountID,
	).Scan(&balance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error summing balance of account %s: %w", accountID, err)
	}
	return balance, nil
}

// SumSpentForBudgetPeriod adds expense entries of the period's transactions. The category of
// an entry falls back to the category of its transaction and must resolve to a real row.
func (r *reportingRepository) SumSpentForBudgetPeriod(ctx context.Context, budgetPeriodID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(e.amount), 0)
		FROM entries e
		JOIN transactions t ON t.transaction_id = e.transaction_id
		JOIN accounts a ON a.account_id = e.account_id
		JOIN categories c ON c.category_id = COALESCE(e.category_id, t.category_id)
		WHERE t.budget_period_id = $1
			AND a.account_type = 'EXPENSE'
	`

	var spent decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, budgetPeriodID).Scan(&spent); err != nil {
		return decimal.Zero, fmt.Errorf("error summing spend of budget period %s: %w", budgetPeriodID, err)
	}
	return spent, nil
}
