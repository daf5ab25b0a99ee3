package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/budget_ledger/internal/core/domain"
	"github.com/SscSPs/budget_ledger/internal/core/money"
	portsrepo "github.com/SscSPs/budget_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_ledger/internal/core/ports/services"
)

type accountBalanceQuery struct {
	BaseService
	reportingRepo   portsrepo.ReportingRepository
	rates           portssvc.ExchangeRateSvcFacade
	defaultCurrency string
}

// NewAccountBalanceQuery creates the balance query. rates may be nil, in which case
// balances are not restated in the default currency.
func NewAccountBalanceQuery(reportingRepo portsrepo.ReportingRepository, rates portssvc.ExchangeRateSvcFacade, defaultCurrency string, options ...ServiceOption) portssvc.AccountBalanceQuerySvc {
	return &accountBalanceQuery{
		BaseService:     newBaseService(applyOptions(options)),
		reportingRepo:   reportingRepo,
		rates:           rates,
		defaultCurrency: money.NormalizeCurrency(defaultCurrency),
	}
}

var _ portssvc.AccountBalanceQuerySvc = (*accountBalanceQuery)(nil)

func (q *accountBalanceQuery) TotalsForUser(ctx context.Context, userID string, asOf *time.Time) ([]domain.AccountBalance, error) {
	rows, err := q.reportingRepo.SumBalancesByUser(ctx, userID, asOf)
	if err != nil {
		q.LogError(ctx, err, "Failed to sum balances", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to sum balances: %w", err)
	}

	rateDate := q.Now()
	if asOf != nil {
		rateDate = asOf.UTC()
	}

	for i := range rows {
		rows[i].Balance = money.Normalize(rows[i].Balance)
		rows[i].DefaultCurrencyCode = q.defaultCurrency
		if rows[i].CurrencyCode == q.defaultCurrency {
			inDefault := rows[i].Balance
			rows[i].BalanceInDefault = &inDefault
			continue
		}
		if q.rates == nil {
			continue
		}
		converted, err := q.rates.ConvertForDisplay(ctx, rows[i].Balance, rows[i].CurrencyCode, q.defaultCurrency, rateDate)
		if err != nil {
			q.LogWarn(ctx, err, "Could not restate balance", slog.String("account_id", rows[i].AccountID))
			continue
		}
		rows[i].BalanceInDefault = converted
	}
	return rows, nil
}

func (q *accountBalanceQuery) BalanceForAccount(ctx context.Context, accountID string) (decimal.Decimal, error) {
	balance, err := q.reportingRepo.SumBalanceForAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum balance for account %s: %w", accountID, err)
	}
	return money.Normalize(balance), nil
}
