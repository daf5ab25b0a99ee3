package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/budget_ledger/internal/apperrors"
	"github.com/SscSPs/budget_ledger/internal/core/domain"
	"github.com/SscSPs/budget_ledger/internal/core/money"
	portsrepo "github.com/SscSPs/budget_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_ledger/internal/core/ports/services"
	"github.com/SscSPs/budget_ledger/internal/dto"
	"github.com/SscSPs/budget_ledger/internal/events"
)

type ledgerTransactionService struct {
	BaseService
	accountRepo     portsrepo.AccountReader
	txnRepo         portsrepo.TransactionRepositoryFacade
	budgetRepo      portsrepo.BudgetReader
	dispatcher      events.Dispatcher
}

// NewLedgerTransactionService creates the transaction engine. Without WithEventDispatcher
// committed writes are not announced to anyone.
func NewLedgerTransactionService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.LedgerTransactionSvcFacade {
	o := applyOptions(options)
	return &ledgerTransactionService{
		BaseService:     newBaseService(o),
		accountRepo:     repos.AccountRepo,
		txnRepo:         repos.TransactionRepo,
		budgetRepo:      repos.BudgetRepo,
		dispatcher:      o.dispatcher,
	}
}

var _ portssvc.LedgerTransactionSvcFacade = (*ledgerTransactionService)(nil)

func (s *ledgerTransactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user is required", apperrors.ErrValidation)
	}
	logger := s.GetLogger(ctx).With(slog.String("user_id", userID))

	idempotencyKey := normalizeOptional(req.IdempotencyKey)
	if idempotencyKey != nil {
		existing, err := s.txnRepo.FindTransactionByIdempotencyKey(ctx, userID, *idempotencyKey)
		if err == nil {
			logger.Info("Idempotency key replayed, returning existing transaction",
				slog.String("transaction_id", existing.TransactionID))
			return s.withBudgetPeriod(ctx, existing)
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up idempotency key: %w", err)
		}
	}

	accounts, err := s.loadOwnedAccounts(ctx, userID, req.Entries)
	if err != nil {
		s.LogWarn(ctx, err, "Rejected transaction: account check failed", slog.String("user_id", userID))
		return nil, err
	}

	if len(req.Entries) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientEntries, len(req.Entries))
	}

	txnID := uuid.NewString()
	entries := buildEntries(txnID, req.Entries, accounts)
	if err := checkBalanced(entries); err != nil {
		s.LogWarn(ctx, err, "Rejected transaction: not balanced", slog.String("user_id", userID))
		return nil, err
	}
	if err := checkEntries(entries, accounts); err != nil {
		s.LogWarn(ctx, err, "Rejected transaction: invalid entries", slog.String("user_id", userID))
		return nil, err
	}

	categories, err := s.loadOwnedCategories(ctx, userID, req.CategoryID, entries)
	if err != nil {
		return nil, err
	}

	period, err := s.derivePeriod(ctx, req.CategoryID, entries, categories, req.EffectiveAt)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	txn := domain.Transaction{
		TransactionID:  txnID,
		UserID:         userID,
		Description:    strings.TrimSpace(req.Description),
		EffectiveAt:    req.EffectiveAt.UTC(),
		PostedAt:       req.PostedAt,
		Reference:      req.Reference,
		Source:         req.Source,
		IdempotencyKey: idempotencyKey,
		CategoryID:     normalizeOptional(req.CategoryID),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
		Entries: entries,
	}
	if period != nil {
		txn.BudgetPeriodID = &period.BudgetPeriodID
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		if idempotencyKey != nil && apperrors.IsDuplicateOn(err, portsrepo.ConstraintTransactionIdempotencyKey) {
			logger.Info("Lost idempotency race, returning winning transaction", slog.String("idempotency_key", *idempotencyKey))
			existing, findErr := s.txnRepo.FindTransactionByIdempotencyKey(ctx, userID, *idempotencyKey)
			if findErr != nil {
				return nil, fmt.Errorf("idempotency key %q is taken but its transaction could not be read: %w", *idempotencyKey, findErr)
			}
			return s.withBudgetPeriod(ctx, existing)
		}
		s.LogError(ctx, err, "Failed to save transaction", slog.String("transaction_id", txn.TransactionID))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	txn.BudgetPeriod = period
	logger.Info("Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.Int("entries", len(txn.Entries)))

	s.emit(ctx, events.TransactionCreated{Transaction: txn, OccurredAt: now})
	return &txn, nil
}

func (s *ledgerTransactionService) UpdateTransactionDetails(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	txn, err := s.loadOwnedTransaction(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}
	previousPeriodID := txn.BudgetPeriodID

	rederive := false
	if req.Description != nil {
		txn.Description = strings.TrimSpace(*req.Description)
	}
	if req.Reference != nil {
		txn.Reference = normalizeOptional(req.Reference)
	}
	if req.EffectiveAt != nil && !req.EffectiveAt.Equal(txn.EffectiveAt) {
		txn.EffectiveAt = req.EffectiveAt.UTC()
		rederive = true
	}
	if req.CategoryID != nil {
		txn.CategoryID = normalizeOptional(req.CategoryID)
		rederive = true
	}

	if rederive {
		categories, err := s.loadOwnedCategories(ctx, userID, txn.CategoryID, txn.Entries)
		if err != nil {
			return nil, err
		}
		period, err := s.derivePeriod(ctx, txn.CategoryID, txn.Entries, categories, txn.EffectiveAt)
		if err != nil {
			return nil, err
		}
		txn.BudgetPeriodID = nil
		txn.BudgetPeriod = period
		if period != nil {
			txn.BudgetPeriodID = &period.BudgetPeriodID
		}
	}

	now := s.Now()
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = userID

	if err := s.txnRepo.UpdateTransactionDetails(ctx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	if !rederive {
		if txn, err = s.withBudgetPeriod(ctx, txn); err != nil {
			return nil, err
		}
	}

	s.LogInfo(ctx, "Transaction details updated", slog.String("transaction_id", transactionID))
	s.emit(ctx, events.TransactionUpdated{Transaction: *txn, PreviousBudgetPeriodID: previousPeriodID, OccurredAt: now})
	return txn, nil
}

func (s *ledgerTransactionService) GetTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	txn, err := s.loadOwnedTransaction(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}
	return s.withBudgetPeriod(ctx, txn)
}

func (s *ledgerTransactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = portsrepo.DefaultPageSize
	}

	txns, nextToken, err := s.txnRepo.ListTransactionsByUser(ctx, userID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

func (s *ledgerTransactionService) loadOwnedTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTransactionNotFound, transactionID)
		}
		return nil, fmt.Errorf("failed to load transaction: %w", err)
	}
	if txn.UserID != userID {
		return nil, fmt.Errorf("%w: %s", ErrTransactionNotFound, transactionID)
	}
	return txn, nil
}

// loadOwnedAccounts bulk-loads every referenced account. Ownership is checked before
// anything about amounts, so a foreign account is reported even in an unbalanced request.
func (s *ledgerTransactionService) loadOwnedAccounts(ctx context.Context, userID string, reqEntries []dto.CreateEntryRequest) (map[string]domain.Account, error) {
	ids := make([]string, 0, len(reqEntries))
	for _, e := range reqEntries {
		ids = append(ids, e.AccountID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, uniqueStrings(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	for _, id := range ids {
		acc, ok := accounts[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
		}
		if acc.UserID != userID {
			return nil, fmt.Errorf("%w: %s", ErrAccountOwnershipMismatch, id)
		}
		if acc.IsArchived {
			return nil, fmt.Errorf("%w: %s", ErrAccountArchived, id)
		}
	}
	return accounts, nil
}

// buildEntries normalizes amounts to ledger scale and resolves each entry currency, defaulting to the account currency.
func buildEntries(txnID string, reqEntries []dto.CreateEntryRequest, accounts map[string]domain.Account) []domain.Entry {
	entries := make([]domain.Entry, 0, len(reqEntries))
	for _, e := range reqEntries {
		acc := accounts[e.AccountID]

		currencyCode := acc.CurrencyCode
		if e.CurrencyCode != nil {
			currencyCode = money.NormalizeCurrency(*e.CurrencyCode)
		}

		entry := domain.Entry{
			EntryID:       uuid.NewString(),
			TransactionID: txnID,
			AccountID:     acc.AccountID,
			Amount:        money.Normalize(e.Amount),
			CurrencyCode:  currencyCode,
			CategoryID:    normalizeOptional(e.CategoryID),
			Memo:          e.Memo,
		}
		if e.AmountBase != nil {
			base := money.Normalize(*e.AmountBase)
			entry.AmountBase = &base
		}
		entries = append(entries, entry)
	}
	return entries
}

// checkEntries rejects zero amounts and entries posting in a currency their account does not hold.
func checkEntries(entries []domain.Entry, accounts map[string]domain.Account) error {
	for i, e := range entries {
		if e.Amount.IsZero() {
			return fmt.Errorf("%w: entry %d", ErrAmountMustBeNonZero, i)
		}
		acc := accounts[e.AccountID]
		if e.CurrencyCode != acc.CurrencyCode {
			return fmt.Errorf("%w: entry %d is %s but account %s is %s",
				ErrCurrencyMismatch, i, e.CurrencyCode, acc.AccountID, acc.CurrencyCode)
		}
	}
	return nil
}

// checkBalanced requires entries to sum to exactly zero. Single-currency transactions
// balance on amount; mixed ones balance on the base amount, falling back to amount
// for entries that carry none.
func checkBalanced(entries []domain.Entry) error {
	multiCurrency := domain.Transaction{Entries: entries}.IsMultiCurrency()

	sum := decimal.Zero
	for _, e := range entries {
		if multiCurrency {
			sum = sum.Add(e.BaseAmount())
		} else {
			sum = sum.Add(e.Amount)
		}
	}
	if sum.IsZero() {
		return nil
	}
	if multiCurrency {
		return fmt.Errorf("%w: base amounts sum to %s", ErrUnbalancedEntries, money.String(sum))
	}
	return fmt.Errorf("%w: amounts sum to %s", ErrUnbalancedEntries, money.String(sum))
}

// loadOwnedCategories loads the header category and every entry category.
func (s *ledgerTransactionService) loadOwnedCategories(ctx context.Context, userID string, headerCategoryID *string, entries []domain.Entry) (map[string]domain.Category, error) {
	ids := make([]string, 0, len(entries)+1)
	if id := normalizeOptional(headerCategoryID); id != nil {
		ids = append(ids, *id)
	}
	for _, e := range entries {
		if e.CategoryID != nil {
			ids = append(ids, *e.CategoryID)
		}
	}
	ids = uniqueStrings(ids)
	if len(ids) == 0 {
		return map[string]domain.Category{}, nil
	}

	categories, err := s.budgetRepo.FindCategoriesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	for _, id := range ids {
		cat, ok := categories[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, id)
		}
		if cat.UserID != userID {
			return nil, fmt.Errorf("%w: %s", ErrCategoryOwnershipMismatch, id)
		}
	}
	return categories, nil
}

// derivePeriod finds the budget period the transaction counts against. Each entry's
// effective category is its own, falling back to the header category. Entries may
// reference at most one budget; none means the transaction is unbudgeted.
func (s *ledgerTransactionService) derivePeriod(ctx context.Context, headerCategoryID *string, entries []domain.Entry, categories map[string]domain.Category, effectiveAt time.Time) (*domain.BudgetPeriod, error) {
	header := normalizeOptional(headerCategoryID)

	budgetIDs := make([]string, 0, 1)
	for _, e := range entries {
		categoryID := e.CategoryID
		if categoryID == nil {
			categoryID = header
		}
		if categoryID == nil {
			continue
		}
		if cat, ok := categories[*categoryID]; ok && cat.BudgetID != nil {
			budgetIDs = append(budgetIDs, *cat.BudgetID)
		}
	}
	budgetIDs = uniqueStrings(budgetIDs)

	switch len(budgetIDs) {
	case 0:
		return nil, nil
	case 1:
	default:
		return nil, fmt.Errorf("%w: %s", ErrMixedBudgetAssignments, strings.Join(budgetIDs, ", "))
	}

	period, err := s.budgetRepo.FindBudgetPeriodCovering(ctx, budgetIDs[0], effectiveAt.UTC())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: budget %s on %s", ErrBudgetPeriodNotFound, budgetIDs[0], effectiveAt.UTC().Format(time.RFC3339))
		}
		return nil, fmt.Errorf("failed to find budget period: %w", err)
	}
	return period, nil
}

func (s *ledgerTransactionService) withBudgetPeriod(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error) {
	return withBudgetPeriod(ctx, s.budgetRepo, txn)
}

// withBudgetPeriod attaches the budget period a stored transaction is tagged with.
func withBudgetPeriod(ctx context.Context, budgetRepo portsrepo.BudgetReader, txn *domain.Transaction) (*domain.Transaction, error) {
	if txn.BudgetPeriodID == nil || txn.BudgetPeriod != nil {
		return txn, nil
	}
	period, err := budgetRepo.FindBudgetPeriodByID(ctx, *txn.BudgetPeriodID)
	if err != nil {
		return nil, fmt.Errorf("failed to load budget period %s: %w", *txn.BudgetPeriodID, err)
	}
	txn.BudgetPeriod = period
	return txn, nil
}

// emit hands an event to the dispatcher. The write is already committed, so handler
// failures are logged and never surface to the caller.
func (s *ledgerTransactionService) emit(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Dispatch(ctx, event); err != nil {
		s.LogError(ctx, err, "Event handler failed", slog.String("event", event.Name()))
	}
}

func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
