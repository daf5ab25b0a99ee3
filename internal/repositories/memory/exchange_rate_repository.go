package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/budget_ledger/internal/apperrors"
	"github.com/SscSPs/budget_ledger/internal/core/domain"
)

func (s *Store) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.rates {
		if existing.ExchangeRateID == rate.ExchangeRateID {
			return apperrors.NewDuplicateError("exchange_rates_pkey", fmt.Errorf("exchange rate %s exists", rate.ExchangeRateID))
		}
	}
	s.rates = append(s.rates, rate)
	return nil
}

// FindExchangeRate returns the latest rate of the pair effective on or before asOf.
func (s *Store) FindExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string, asOf time.Time) (*domain.ExchangeRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var best *domain.ExchangeRate
	for i := range s.rates {
		r := s.rates[i]
		if r.FromCurrencyCode != fromCurrencyCode || r.ToCurrencyCode != toCurrencyCode || r.DateEffective.After(asOf) {
			continue
		}
		if best == nil || r.DateEffective.After(best.DateEffective) ||
			(r.DateEffective.Equal(best.DateEffective) && r.CreatedAt.After(best.CreatedAt)) {
			best = &r
		}
	}
	if best == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("exchange rate %s->%s", fromCurrencyCode, toCurrencyCode))
	}
	return best, nil
}
