package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/budget_ledger/internal/apperrors"
	"github.com/SscSPs/budget_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/budget_ledger/internal/utils/pagination"
)

// SaveTransaction stores the header and all entries or nothing. Every foreign key is
// checked before the first write.
func (s *Store) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.transactions[txn.TransactionID]; exists {
		return apperrors.NewDuplicateError("transactions_pkey", fmt.Errorf("transaction %s exists", txn.TransactionID))
	}
	if txn.IdempotencyKey != nil {
		if _, taken := s.idempotency[idempotencyIndex(txn.UserID, *txn.IdempotencyKey)]; taken {
			return apperrors.NewDuplicateError(portsrepo.ConstraintTransactionIdempotencyKey,
				fmt.Errorf("idempotency key %q already used", *txn.IdempotencyKey))
		}
	}
	if err := s.checkReferences(txn); err != nil {
		return err
	}

	s.transactions[txn.TransactionID] = copyTransaction(txn)
	if txn.IdempotencyKey != nil {
		s.idempotency[idempotencyIndex(txn.UserID, *txn.IdempotencyKey)] = txn.TransactionID
	}
	return nil
}

func (s *Store) checkReferences(txn domain.Transaction) error {
	if txn.CategoryID != nil {
		if _, ok := s.categories[*txn.CategoryID]; !ok {
			return fmt.Errorf("transaction category %s does not exist", *txn.CategoryID)
		}
	}
	if txn.BudgetPeriodID != nil {
		if _, ok := s.periods[*txn.BudgetPeriodID]; !ok {
			return fmt.Errorf("budget period %s does not exist", *txn.BudgetPeriodID)
		}
	}
	for _, e := range txn.Entries {
		if _, ok := s.accounts[e.AccountID]; !ok {
			return fmt.Errorf("entry %s references missing account %s", e.EntryID, e.AccountID)
		}
		if e.CategoryID != nil {
			if _, ok := s.categories[*e.CategoryID]; !ok {
				return fmt.Errorf("entry %s references missing category %s", e.EntryID, *e.CategoryID)
			}
		}
	}
	return nil
}

// UpdateTransactionDetails rewrites header fields only; stored entries are kept as they are.
func (s *Store) UpdateTransactionDetails(ctx context.Context, txn domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.transactions[txn.TransactionID]
	if !ok {
		return apperrors.NewNotFoundError("transaction " + txn.TransactionID)
	}
	header := txn
	header.Entries = stored.Entries
	if err := s.checkReferences(header); err != nil {
		return err
	}

	stored.Description = txn.Description
	stored.EffectiveAt = txn.EffectiveAt
	stored.Reference = txn.Reference
	stored.CategoryID = txn.CategoryID
	stored.BudgetPeriodID = txn.BudgetPeriodID
	stored.LastUpdatedAt = txn.LastUpdatedAt
	stored.LastUpdatedBy = txn.LastUpdatedBy
	s.transactions[txn.TransactionID] = stored
	return nil
}

func (s *Store) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	txn, ok := s.transactions[transactionID]
	if !ok {
		return nil, apperrors.NewNotFoundError("transaction " + transactionID)
	}
	out := copyTransaction(txn)
	return &out, nil
}

func (s *Store) FindTransactionByIdempotencyKey(ctx context.Context, userID, idempotencyKey string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.idempotency[idempotencyIndex(userID, idempotencyKey)]
	if !ok {
		return nil, apperrors.NewNotFoundError("transaction with idempotency key " + idempotencyKey)
	}
	out := copyTransaction(s.transactions[id])
	return &out, nil
}

// ListTransactionsByUser pages newest first by effective date, then creation time, then id.
func (s *Store) ListTransactionsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = portsrepo.DefaultPageSize
	}

	var cursor *pagination.Cursor
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		cursor = &c
	}

	s.mu.RLock()
	txns := make([]domain.Transaction, 0)
	for _, txn := range s.transactions {
		if txn.UserID != userID {
			continue
		}
		if cursor != nil && !cursor.After(txn.EffectiveAt, txn.CreatedAt, txn.TransactionID) {
			continue
		}
		txns = append(txns, copyTransaction(txn))
	}
	s.mu.RUnlock()

	sort.Slice(txns, func(i, j int) bool {
		a, b := txns[i], txns[j]
		if !a.EffectiveAt.Equal(b.EffectiveAt) {
			return a.EffectiveAt.After(b.EffectiveAt)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.TransactionID > b.TransactionID
	})

	if len(txns) <= limit {
		return txns, nil, nil
	}
	page := txns[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeToken(pagination.Cursor{EffectiveAt: last.EffectiveAt, CreatedAt: last.CreatedAt, ID: last.TransactionID})
	return page, &token, nil
}
