package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/budget_ledger/internal/apperrors"
	"github.com/SscSPs/budget_ledger/internal/core/domain"
	"github.com/SscSPs/budget_ledger/internal/core/money"
	portsrepo "github.com/SscSPs/budget_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_ledger/internal/core/ports/services"
	"github.com/SscSPs/budget_ledger/internal/dto"
)

// ExchangeRateService provides business logic for exchange rates.
type ExchangeRateService struct {
	BaseService
	rateRepo portsrepo.ExchangeRateRepositoryFacade
}

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, options ...ServiceOption) *ExchangeRateService {
	return &ExchangeRateService{
		BaseService: newBaseService(applyOptions(options)),
		rateRepo:    rateRepo,
	}
}

var _ portssvc.ExchangeRateSvcFacade = (*ExchangeRateService)(nil)

// CreateExchangeRate handles the creation of a new exchange rate.
func (s *ExchangeRateService) CreateExchangeRate(ctx context.Context, userID string, req dto.CreateExchangeRateRequest) (*domain.ExchangeRate, error) {
	from := money.NormalizeCurrency(req.FromCurrencyCode)
	to := money.NormalizeCurrency(req.ToCurrencyCode)

	if !money.IsPositive(req.Rate) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	if from == to {
		return nil, fmt.Errorf("%w: from and to currency codes cannot be the same", apperrors.ErrValidation)
	}
	if err := money.ValidateCurrency(from); err != nil {
		return nil, err
	}
	if err := money.ValidateCurrency(to); err != nil {
		return nil, err
	}

	now := s.Now()
	rate := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Rate:             money.Normalize(req.Rate),
		DateEffective:    req.DateEffective.UTC(),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		s.LogError(ctx, err, "Failed to save exchange rate", slog.String("from", from), slog.String("to", to))
		return nil, fmt.Errorf("failed to save exchange rate: %w", err)
	}
	return &rate, nil
}

// ConvertForDisplay restates amount using the most recent rate on or before asOf,
// trying the inverse pair when no direct rate exists. It returns nil without error when
// neither direction has a rate. Ledger entries are never written from the result.
func (s *ExchangeRateService) ConvertForDisplay(ctx context.Context, amount decimal.Decimal, fromCurrency, toCurrency string, asOf time.Time) (*decimal.Decimal, error) {
	from := money.NormalizeCurrency(fromCurrency)
	to := money.NormalizeCurrency(toCurrency)
	if from == to {
		same := money.Normalize(amount)
		return &same, nil
	}

	rate, err := s.rateRepo.FindExchangeRate(ctx, from, to, asOf)
	if err == nil {
		converted := money.Normalize(amount.Mul(rate.Rate))
		return &converted, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find exchange rate %s->%s: %w", from, to, err)
	}

	inverse, err := s.rateRepo.FindExchangeRate(ctx, to, from, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "No exchange rate for display conversion", slog.String("from", from), slog.String("to", to))
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find exchange rate %s->%s: %w", to, from, err)
	}
	if inverse.Rate.IsZero() {
		return nil, nil
	}
	converted := money.Normalize(amount.DivRound(inverse.Rate, money.Scale))
	return &converted, nil
}
