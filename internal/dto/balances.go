package dto

import (
	"time"

	"github.com/SscSPs/budget_ledger/internal/core/domain"
	"github.com/SscSPs/budget_ledger/internal/core/money"
)

// AccountBalanceRowResponse is one account of the balances report.
type AccountBalanceRowResponse struct {
	AccountID           string             `json:"accountID"`
	Name                string             `json:"name"`
	AccountType         domain.AccountType `json:"accountType"`
	CurrencyCode        string             `json:"currencyCode"`
	IsFundamental       bool               `json:"isFundamental"`
	Balance             string             `json:"balance"`
	Display             string             `json:"display"`
	BalanceInDefault    *string            `json:"balanceInDefault,omitempty"`
	DefaultCurrencyCode string             `json:"defaultCurrencyCode,omitempty"`
}

// BalancesResponse is the balances report.
type BalancesResponse struct {
	AsOf     *time.Time                  `json:"asOf,omitempty"`
	Balances []AccountBalanceRowResponse `json:"balances"`
}

// ToBalancesResponse converts balance rows.
func ToBalancesResponse(asOf *time.Time, rows []domain.AccountBalance) BalancesResponse {
	out := BalancesResponse{AsOf: asOf, Balances: make([]AccountBalanceRowResponse, len(rows))}
	for i, r := range rows {
		row := AccountBalanceRowResponse{
			AccountID:           r.AccountID,
			Name:                r.Name,
			AccountType:         r.AccountType,
			CurrencyCode:        r.CurrencyCode,
			IsFundamental:       r.IsFundamental,
			Balance:             money.String(r.Balance),
			Display:             money.Format(r.Balance, r.CurrencyCode),
			DefaultCurrencyCode: r.DefaultCurrencyCode,
		}
		if r.BalanceInDefault != nil {
			v := money.String(*r.BalanceInDefault)
			row.BalanceInDefault = &v
		}
		out.Balances[i] = row
	}
	return out
}

// BudgetPeriodSummaryResponse reports a cached, eventually consistent spend picture.
type BudgetPeriodSummaryResponse struct {
	BudgetPeriodID string     `json:"budgetPeriodID"`
	CurrencyCode   string     `json:"currencyCode"`
	Amount         string     `json:"amount"`
	Spent          string     `json:"spent"`
	Remaining      string     `json:"remaining"`
	UsagePercent   string     `json:"usagePercent"`
	RefreshedAt    *time.Time `json:"refreshedAt"`
	Stale          bool       `json:"stale"`
}

// ToBudgetPeriodSummaryResponse converts a summary.
func ToBudgetPeriodSummaryResponse(s *domain.BudgetPeriodSummary) BudgetPeriodSummaryResponse {
	return BudgetPeriodSummaryResponse{
		BudgetPeriodID: s.BudgetPeriodID,
		CurrencyCode:   s.CurrencyCode,
		Amount:         money.String(s.Amount),
		Spent:          money.String(s.Spent),
		Remaining:      money.String(s.Remaining),
		UsagePercent:   money.String(s.UsagePercent),
		RefreshedAt:    s.RefreshedAt,
		Stale:          s.Stale,
	}
}
