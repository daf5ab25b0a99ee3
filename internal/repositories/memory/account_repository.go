package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/budget_ledger/internal/apperrors"
	"github.com/SscSPs/budget_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_ledger/internal/core/ports/repositories"
)

func (s *Store) SaveAccount(ctx context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.AccountID]; exists {
		return apperrors.NewDuplicateError("accounts_pkey", fmt.Errorf("account %s exists", account.AccountID))
	}
	for _, existing := range s.accounts {
		if existing.UserID == account.UserID && existing.Name == account.Name {
			return apperrors.NewDuplicateError(portsrepo.ConstraintAccountUserName,
				fmt.Errorf("user %s already has an account named %q", account.UserID, account.Name))
		}
	}
	s.accounts[account.AccountID] = account
	return nil
}

func (s *Store) UpdateAccount(ctx context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.AccountID]; !exists {
		return apperrors.NewNotFoundError("account " + account.AccountID)
	}
	s.accounts[account.AccountID] = account
	return nil
}

func (s *Store) DeleteAccount(ctx context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[accountID]; !exists {
		return apperrors.NewNotFoundError("account " + accountID)
	}
	for _, txn := range s.transactions {
		for _, e := range txn.Entries {
			if e.AccountID == accountID {
				return fmt.Errorf("account %s is referenced by entry %s", accountID, e.EntryID)
			}
		}
	}
	delete(s.accounts, accountID)
	return nil
}

func (s *Store) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.NewNotFoundError("account " + accountID)
	}
	return &account, nil
}

func (s *Store) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if account, ok := s.accounts[id]; ok {
			found[id] = account
		}
	}
	return found, nil
}

func (s *Store) FindFundamentalAccount(ctx context.Context, userID, name string, accountType domain.AccountType, currencyCode string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, account := range s.accounts {
		if account.IsFundamental && account.UserID == userID && account.Name == name &&
			account.AccountType == accountType && account.CurrencyCode == currencyCode {
			return &account, nil
		}
	}
	return nil, apperrors.NewNotFoundError("fundamental account " + name)
}

func (s *Store) ListAccountsByUser(ctx context.Context, userID string, includeArchived bool) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]domain.Account, 0)
	for _, account := range s.accounts {
		if account.UserID != userID || (account.IsArchived && !includeArchived) {
			continue
		}
		accounts = append(accounts, account)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Name < accounts[j].Name })
	return accounts, nil
}

func (s *Store) CountEntriesForAccount(ctx context.Context, accountID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, txn := range s.transactions {
		for _, e := range txn.Entries {
			if e.AccountID == accountID {
				count++
			}
		}
	}
	return count, nil
}
