package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/SscSPs/budget_ledger/internal/apperrors"
	"github.com/SscSPs/budget_ledger/internal/core/domain"
	"github.com/SscSPs/budget_ledger/internal/core/money"
	portsrepo "github.com/SscSPs/budget_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_ledger/internal/core/ports/services"
)

// Base names of the system-managed accounts.
const (
	ExternalExpenseAccountName  = "External Expense"
	ExternalIncomeAccountName   = "External Income"
	CurrencyExchangeAccountName = "Currency Exchange"
)

type fundamentalSpec struct {
	name        string
	accountType domain.AccountType
}

var externalAccounts = []fundamentalSpec{
	{name: ExternalExpenseAccountName, accountType: domain.Expense},
	{name: ExternalIncomeAccountName, accountType: domain.Income},
}

var currencyExchangeAccount = fundamentalSpec{name: CurrencyExchangeAccountName, accountType: domain.Equity}

// FundamentalAccountName suffixes base with the currency unless it is the default one,
// so names stay unique per user across currencies.
func FundamentalAccountName(base, currencyCode, defaultCurrency string) string {
	if currencyCode == defaultCurrency {
		return base
	}
	return fmt.Sprintf("%s (%s)", base, currencyCode)
}

// isReservedAccountName reports whether name collides with a fundamental account name.
func isReservedAccountName(name string) bool {
	for _, base := range []string{ExternalExpenseAccountName, ExternalIncomeAccountName, CurrencyExchangeAccountName} {
		if strings.EqualFold(name, base) || strings.HasPrefix(strings.ToLower(name), strings.ToLower(base)+" (") {
			return true
		}
	}
	return false
}

type fundamentalAccountService struct {
	BaseService
	accountRepo     portsrepo.AccountRepositoryFacade
	defaultCurrency string
}

// NewFundamentalAccountService creates the account bootstrap service.
func NewFundamentalAccountService(accountRepo portsrepo.AccountRepositoryFacade, defaultCurrency string, options ...ServiceOption) portssvc.FundamentalAccountSvc {
	return &fundamentalAccountService{
		BaseService:     newBaseService(applyOptions(options)),
		accountRepo:     accountRepo,
		defaultCurrency: money.NormalizeCurrency(defaultCurrency),
	}
}

var _ portssvc.FundamentalAccountSvc = (*fundamentalAccountService)(nil)

func (s *fundamentalAccountService) EnsureFundamentalAccounts(ctx context.Context, userID, currencyCode string) ([]domain.Account, error) {
	currencyCode = money.NormalizeCurrency(currencyCode)
	if err := money.ValidateCurrency(currencyCode); err != nil {
		return nil, err
	}

	accounts := make([]domain.Account, 0, len(externalAccounts))
	for _, spec := range externalAccounts {
		acc, err := s.ensure(ctx, userID, currencyCode, spec)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *acc)
	}
	return accounts, nil
}

func (s *fundamentalAccountService) ResolveFundamentalAccount(ctx context.Context, userID, currencyCode string, accountType domain.AccountType) (*domain.Account, error) {
	currencyCode = money.NormalizeCurrency(currencyCode)

	var spec fundamentalSpec
	switch accountType {
	case domain.Expense, domain.Income:
		if _, err := s.EnsureFundamentalAccounts(ctx, userID, currencyCode); err != nil {
			return nil, err
		}
		spec = externalAccounts[0]
		if accountType == domain.Income {
			spec = externalAccounts[1]
		}
	case domain.Equity:
		if err := money.ValidateCurrency(currencyCode); err != nil {
			return nil, err
		}
		if _, err := s.ensure(ctx, userID, currencyCode, currencyExchangeAccount); err != nil {
			return nil, err
		}
		spec = currencyExchangeAccount
	default:
		return nil, fmt.Errorf("%w: no fundamental account of type %s", apperrors.ErrValidation, accountType)
	}

	name := FundamentalAccountName(spec.name, currencyCode, s.defaultCurrency)
	acc, err := s.accountRepo.FindFundamentalAccount(ctx, userID, name, spec.accountType, currencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Fundamental account missing after bootstrap", slog.String("name", name), slog.String("currency_code", currencyCode))
			return nil, fmt.Errorf("%w: %s", ErrFundamentalAccountNotFound, name)
		}
		return nil, fmt.Errorf("failed to resolve fundamental account %s: %w", name, err)
	}
	return acc, nil
}

// ensure returns the fundamental account described by spec, creating it when absent.
// A concurrent creator winning the (user_id, name) race is resolved by re-reading its row.
func (s *fundamentalAccountService) ensure(ctx context.Context, userID, currencyCode string, spec fundamentalSpec) (*domain.Account, error) {
	name := FundamentalAccountName(spec.name, currencyCode, s.defaultCurrency)

	existing, err := s.accountRepo.FindFundamentalAccount(ctx, userID, name, spec.accountType, currencyCode)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up fundamental account %s: %w", name, err)
	}

	now := s.Now()
	account := domain.Account{
		AccountID:     uuid.NewString(),
		UserID:        userID,
		Name:          name,
		AccountType:   spec.accountType,
		CurrencyCode:  currencyCode,
		IsFundamental: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if !apperrors.IsDuplicateOn(err, portsrepo.ConstraintAccountUserName) {
			s.LogError(ctx, err, "Failed to create fundamental account", slog.String("name", name))
			return nil, fmt.Errorf("failed to create fundamental account %s: %w", name, err)
		}

		s.LogDebug(ctx, "Fundamental account created concurrently, re-reading", slog.String("name", name))
		existing, findErr := s.accountRepo.FindFundamentalAccount(ctx, userID, name, spec.accountType, currencyCode)
		if findErr == nil {
			return existing, nil
		}
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: name %q is held by a regular account", ErrFundamentalAccountNotFound, name)
		}
		return nil, fmt.Errorf("failed to re-read fundamental account %s: %w", name, findErr)
	}

	s.LogInfo(ctx, "Fundamental account created",
		slog.String("account_id", account.AccountID),
		slog.String("name", name),
		slog.String("currency_code", currencyCode))
	return &account, nil
}
