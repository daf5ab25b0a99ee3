package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/budget_ledger/internal/apperrors"
	"github.com/SscSPs/budget_ledger/internal/core/domain"
	"github.com/SscSPs/budget_ledger/internal/core/money"
	portsrepo "github.com/SscSPs/budget_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_ledger/internal/core/ports/services"
	"github.com/SscSPs/budget_ledger/internal/core/services"
	"github.com/SscSPs/budget_ledger/internal/dto"
	"github.com/SscSPs/budget_ledger/internal/events"
)

// --- Test Suite Setup ---
type LedgerTransactionServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	accountRepo *MockAccountRepository
	txnRepo     *MockTransactionRepository
	budgetRepo  *MockBudgetRepository
	dispatcher  *MockDispatcher
	service     portssvc.LedgerTransactionSvcFacade

	now         time.Time
	effectiveAt time.Time
	userID      string
	checking    domain.Account
	groceries   domain.Account
	euroWallet  domain.Account
}

func (suite *LedgerTransactionServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.accountRepo = new(MockAccountRepository)
	suite.txnRepo = new(MockTransactionRepository)
	suite.budgetRepo = new(MockBudgetRepository)
	suite.dispatcher = new(MockDispatcher)
	suite.now = time.Date(2025, 11, 6, 9, 0, 0, 0, time.UTC)
	suite.effectiveAt = time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)

	suite.service = services.NewLedgerTransactionService(
		portsrepo.RepositoryProvider{
			AccountRepo:     suite.accountRepo,
			TransactionRepo: suite.txnRepo,
			BudgetRepo:      suite.budgetRepo,
		},
		services.WithEventDispatcher(suite.dispatcher),
		services.WithClock(func() time.Time { return suite.now }),
	)

	suite.userID = uuid.NewString()
	suite.checking = domain.Account{
		AccountID:    uuid.NewString(),
		UserID:       suite.userID,
		Name:         "Checking",
		AccountType:  domain.Asset,
		CurrencyCode: "USD",
	}
	suite.groceries = domain.Account{
		AccountID:    uuid.NewString(),
		UserID:       suite.userID,
		Name:         "Groceries",
		AccountType:  domain.Expense,
		CurrencyCode: "USD",
	}
	suite.euroWallet = domain.Account{
		AccountID:    uuid.NewString(),
		UserID:       suite.userID,
		Name:         "Euro Wallet",
		AccountType:  domain.Asset,
		CurrencyCode: "EUR",
	}
}

func entry(accountID, amount string) dto.CreateEntryRequest {
	return dto.CreateEntryRequest{AccountID: accountID, Amount: decimal.RequireFromString(amount)}
}

func accountsMap(accounts ...domain.Account) map[string]domain.Account {
	m := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		m[a.AccountID] = a
	}
	return m
}

func (suite *LedgerTransactionServiceTestSuite) request(entries ...dto.CreateEntryRequest) dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		Description: "Weekly shop",
		EffectiveAt: suite.effectiveAt,
		Entries:     entries,
	}
}

func (suite *LedgerTransactionServiceTestSuite) expectAccounts(accounts ...domain.Account) {
	suite.accountRepo.On("FindAccountsByIDs", suite.ctx, mock.Anything).Return(accountsMap(accounts...), nil).Once()
}

func (suite *LedgerTransactionServiceTestSuite) assertRejected(err error, target error) {
	suite.Require().Error(err)
	suite.ErrorIs(err, target)
	suite.txnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
	suite.dispatcher.AssertNotCalled(suite.T(), "Dispatch", mock.Anything, mock.Anything)
}

func (suite *LedgerTransactionServiceTestSuite) TestCreateTransaction_Success() {
	req := suite.request(entry(suite.checking.AccountID, "-42.50"), entry(suite.groceries.AccountID, "42.5"))
	suite.expectAccounts(suite.checking, suite.groceries)
	suite.txnRepo.On("SaveTransaction", suite.ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.UserID == suite.userID && len(txn.Entries) == 2 && txn.BudgetPeriodID == nil
	})).Return(nil).Once()
	suite.dispatcher.On("Dispatch", suite.ctx, mock.AnythingOfType("events.TransactionCreated")).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(suite.ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Equal("-42.500000", money.String(txn.Entries[0].Amount))
	suite.Equal("USD", txn.Entries[0].CurrencyCode)
	suite.Equal(txn.TransactionID, txn.Entries[1].TransactionID)
	suite.Equal(suite.now, txn.CreatedAt)
	suite.Equal(suite.userID, txn.CreatedBy)
	suite.accountRepo.AssertExpectations(suite.T())
	suite.txnRepo.AssertExpectations(suite.T())
	suite.dispatcher.AssertExpectations(suite.T())
}

func (suite *LedgerTransactionServiceTestSuite) TestCreateTransaction_InsufficientEntries() {
	suite.expectAccounts(suite.checking)

	_, err := suite.service.CreateTransaction(suite.ctx, suite.userID, suite.request(entry(suite.checking.AccountID, "50")))

	suite.assertRejected(err, services.ErrInsufficientEntries)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerTransactionServiceTestSuite) TestCreateTransaction_ZeroAmount() {
	suite.expectAccounts(suite.checking, suite.groceries)

	_, err := suite.service.CreateTransaction(suite.ctx, suite.userID,
		suite.request(entry(suite.checking.AccountID, "0"), entry(suite.groceries.AccountID, "0.0000001")))

	suite.assertRejected(err, services.ErrAmountMustBeNonZero)
}

func (suite *LedgerTransactionServiceTestSuite) TestCreateTransaction_Unbalanced() {
	suite.expectAccounts(suite.checking, suite.groceries)

	_, err := suite.service.CreateTransaction(suite.ctx, suite.userID,
		suite.request(entry(suite.checking.AccountID, "100"), entry(suite.groceries.AccountID, "-50")))

	suite.assertRejected(err, services.ErrUnbalancedEntries)
}

func (suite *LedgerTransactionServiceTestSuite) TestCreateTransaction_UnbalancedWinsOverZeroAmount() {
	suite.expectAccounts(suite.checking, suite.groceries)

	_, err := suite.service.CreateTransaction(suite.ctx, suite.userID, suite.request(
		entry(suite.checking.AccountID, "0"),
		entry(suite.groceries.AccountID, "100"),
		entry(suite.checking.AccountID, "-50"),
	))

	suite.assertRejected(err, services.ErrUnbalancedEntries)
}

func (suite *LedgerTransactionServiceTestSuite) TestCreateTransaction_ForeignAccountWinsOverUnbalanced() {
	foreign := suite.groceries
	foreign.UserID = uuid.NewString()
	suite.expectAccounts(suite.checking, foreign)

	_, err := suite.service.CreateTransaction(suite.ctx, suite.userID,
		suite.request(entry(suite.checking.AccountID, "100"), entry(foreign.AccountID, "-50")))

	suite.assertRejected(err, services.ErrAccountOwnershipMismatch)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *LedgerTransactionServiceTestSuite) TestCreateTransaction_AccountNotFound() {
	suite.expectAccounts(suite.checking)

	_, err := suite.service.CreateTransaction(suite.ctx, suite.userID,
		suite.request(entry(suite.checking.AccountID, "-10"), entry(uuid.NewString(), "10")))

	suite.assertRejected(err, services.ErrAccountNotFound)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerTransactionServiceTestSuite) TestCreateTransaction_ArchivedAccount() {
	archived := suite.groceries
	archived.IsArchived = true
	suite.expectAccounts(suite.checking, archived)

	_, err := suite.service.CreateTransaction(suite.ctx, suite.userID,
		suite.request(entry(suite.checking.AccountID, "-10"), entry(archived.AccountID, "10")))

	suite.assertRejected(err, services.ErrAccountArchived)
}

func (suite *LedgerTransactionServiceTestSuite) TestCreateTransaction_CurrencyMismatch() {
	suite.expectAccounts(suite.checking, suite.groceries)
	eur := "EUR"
	bad := entry(suite.checking.AccountID, "-10")
	bad.CurrencyCode = &eur

	_, err := suite.service.CreateTransaction(suite.ctx, suite.userID,
		suite.request(bad, entry(suite.groceries.AccountID, "10")))

	suite.assertRejected(err, services.ErrCurrencyMismatch)
}

func (suite *LedgerTransactionServiceTestSuite) TestCreateTransaction_MultiCurrencyFallsBackToAmount() {
	suite.expectAccounts(suite.euroWallet, suite.checking)
	suite.txnRepo.On("SaveTransaction", suite.ctx, mock.Anything).Return(nil).Once()
	suite.dispatcher.On("Dispatch", suite.ctx, mock.Anything).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(suite.ctx, suite.userID,
		suite.request(entry(suite.euroWallet.AccountID, "-100"), entry(suite.checking.AccountID, "100")))

	suite.Require().NoError(err)
	suite.True(txn.IsMultiCurrency())
	suite.Nil(txn.Entries[0].AmountBase)
	suite.Nil(txn.Entries[1].AmountBase)
}

func (suite *LedgerTransactionServiceTestSuite) TestCreateTransaction_MultiCurrencyUnbalancedOnFallback() {
	suite.expectAccounts(suite.euroWallet, suite.checking)

	_, err := suite.service.CreateTransaction(suite.ctx, suite.userID,
		suite.request(entry(suite.euroWallet.AccountID, "-100"), entry(suite.checking.AccountID, "110")))

	suite.assertRejected(err, services.ErrUnbalancedEntries)
}

func (suite *LedgerTransactionServiceTestSuite) TestCreateTransaction_MultiCurrencyBalancesOnBase() {
	suite.expectAccounts(suite.euroWallet, suite.checking)
	eurLeg := entry(suite.euroWallet.AccountID, "-100")
	base := decimal.RequireFromString("-110")
	eurLeg.AmountBase = &base
	suite.txnRepo.On("SaveTransaction", suite.ctx, mock.Anything).Return(nil).Once()
	suite.dispatcher.On("Dispatch", suite.ctx, mock.Anything).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(suite.ctx, suite.userID,
		suite.request(eurLeg, entry(suite.checking.AccountID, "110")))

	suite.Require().NoError(err)
	suite.True(txn.IsMultiCurrency())
	suite.Equal("-110.000000", money.String(*txn.Entries[0].AmountBase))
}

func (suite *LedgerTransactionServiceTestSuite) TestCreateTransaction_CategoryNotFound() {
	suite.expectAccounts(suite.checking, suite.groceries)
	categoryID := uuid.NewString()
	req := suite.request(entry(suite.checking.AccountID, "-10"), entry(suite.groceries.AccountID, "10"))
	req.CategoryID = &categoryID
	suite.budgetRepo.On("FindCategoriesByIDs", suite.ctx, []string{categoryID}).Return(map[string]domain.Category{}, nil).Once()

	_, err := suite.service.CreateTransaction(suite.ctx, suite.userID, req)

	suite.assertRejected(err, services.ErrCategoryNotFound)
}

func (suite *LedgerTransactionServiceTestSuite) TestCreateTransaction_CategoryOwnershipMismatch() {
	suite.expectAccounts(suite.checking, suite.groceries)
	category := domain.Category{CategoryID: uuid.NewString(), UserID: uuid.NewString(), Name: "Food"}
	spend := entry(suite.groceries.AccountID, "10")
	spend.CategoryID = &category.CategoryID
	suite.budgetRepo.On("FindCategoriesByIDs", suite.ctx, []string{category.CategoryID}).
		Return(map[string]domain.Category{category.CategoryID: category}, nil).Once()

	_, err := suite.service.CreateTransaction(suite.ctx, suite.userID,
		suite.request(entry(suite.checking.AccountID, "-10"), spend))

	suite.assertRejected(err, services.ErrCategoryOwnershipMismatch)
}

func (suite *LedgerTransactionServiceTestSuite) TestCreateTransaction_DerivesBudgetPeriodFromHeaderCategory() {
	budgetID := uuid.NewString()
	category := domain.Category{CategoryID: uuid.NewString(), UserID: suite.userID, Name: "Food", BudgetID: &budgetID}
	period := &domain.BudgetPeriod{
		BudgetPeriodID: uuid.NewString(),
		BudgetID:       budgetID,
		StartAt:        time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
		EndAt:          time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		Amount:         decimal.RequireFromString("500"),
		CurrencyCode:   "USD",
	}
	req := suite.request(entry(suite.checking.AccountID, "-10"), entry(suite.groceries.AccountID, "10"))
	req.CategoryID = &category.CategoryID

	suite.expectAccounts(suite.checking, suite.groceries)
	suite.budgetRepo.On("FindCategoriesByIDs", suite.ctx, []string{category.CategoryID}).
		Return(map[string]domain.Category{category.CategoryID: category}, nil).Once()
	suite.budgetRepo.On("FindBudgetPeriodCovering", suite.ctx, budgetID, mock.MatchedBy(func(at time.Time) bool {
		return at.Equal(suite.effectiveAt)
	})).Return(period, nil).Once()
	suite.txnRepo.On("SaveTransaction", suite.ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.BudgetPeriodID != nil && *txn.BudgetPeriodID == period.BudgetPeriodID
	})).Return(nil).Once()
	suite.dispatcher.On("Dispatch", suite.ctx, mock.MatchedBy(func(e events.Event) bool {
		created, ok := e.(events.TransactionCreated)
		return ok && created.Transaction.BudgetPeriod != nil
	})).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(suite.ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn.BudgetPeriod)
	suite.Equal(period.BudgetPeriodID, txn.BudgetPeriod.BudgetPeriodID)
	suite.Nil(txn.Entries[0].CategoryID, "entries keep their own category")
	suite.budgetRepo.AssertExpectations(suite.T())
	suite.dispatcher.AssertExpectations(suite.T())
}

func (suite *LedgerTransactionServiceTestSuite) TestCreateTransaction_MixedBudgets() {
	budgetA, budgetB := uuid.NewString(), uuid.NewString()
	catA := domain.Category{CategoryID: uuid.NewString(), UserID: suite.userID, BudgetID: &budgetA}
	catB := domain.Category{CategoryID: uuid.NewString(), UserID: suite.userID, BudgetID: &budgetB}
	first := entry(suite.checking.AccountID, "-10")
	first.CategoryID = &catA.CategoryID
	second := entry(suite.groceries.AccountID, "10")
	second.CategoryID = &catB.CategoryID

	suite.expectAccounts(suite.checking, suite.groceries)
	suite.budgetRepo.On("FindCategoriesByIDs", suite.ctx, mock.Anything).
		Return(map[string]domain.Category{catA.CategoryID: catA, catB.CategoryID: catB}, nil).Once()

	_, err := suite.service.CreateTransaction(suite.ctx, suite.userID, suite.request(first, second))

	suite.assertRejected(err, services.ErrMixedBudgetAssignments)
}

func (suite *LedgerTransactionServiceTestSuite) TestCreateTransaction_BudgetPeriodNotFound() {
	budgetID := uuid.NewString()
	category := domain.Category{CategoryID: uuid.NewString(), UserID: suite.userID, BudgetID: &budgetID}
	req := suite.request(entry(suite.checking.AccountID, "-10"), entry(suite.groceries.AccountID, "10"))
	req.CategoryID = &category.CategoryID

	suite.expectAccounts(suite.checking, suite.groceries)
	suite.budgetRepo.On("FindCategoriesByIDs", suite.ctx, mock.Anything).
		Return(map[string]domain.Category{category.CategoryID: category}, nil).Once()
	suite.budgetRepo.On("FindBudgetPeriodCovering", suite.ctx, budgetID, mock.Anything).
		Return(nil, apperrors.NewNotFoundError("period")).Once()

	_, err := suite.service.CreateTransaction(suite.ctx, suite.userID, req)

	suite.assertRejected(err, services.ErrBudgetPeriodNotFound)
}

func (suite *LedgerTransactionServiceTestSuite) TestCreateTransaction_IdempotentReplay() {
	key := "order-1234"
	existing := &domain.Transaction{TransactionID: uuid.NewString(), UserID: suite.userID, IdempotencyKey: &key}
	req := suite.request(entry(suite.checking.AccountID, "1"), entry(suite.groceries.AccountID, "2"))
	req.IdempotencyKey = &key
	suite.txnRepo.On("FindTransactionByIdempotencyKey", suite.ctx, suite.userID, key).Return(existing, nil).Once()

	txn, err := suite.service.CreateTransaction(suite.ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Equal(existing.TransactionID, txn.TransactionID)
	suite.accountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDs", mock.Anything, mock.Anything)
	suite.txnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
	suite.dispatcher.AssertNotCalled(suite.T(), "Dispatch", mock.Anything, mock.Anything)
}

func (suite *LedgerTransactionServiceTestSuite) TestCreateTransaction_LostIdempotencyRaceReturnsWinner() {
	key := "order-5678"
	winner := &domain.Transaction{TransactionID: uuid.NewString(), UserID: suite.userID, IdempotencyKey: &key}
	req := suite.request(entry(suite.checking.AccountID, "-5"), entry(suite.groceries.AccountID, "5"))
	req.IdempotencyKey = &key

	suite.txnRepo.On("FindTransactionByIdempotencyKey", suite.ctx, suite.userID, key).
		Return(nil, apperrors.NewNotFoundError("transaction")).Once()
	suite.expectAccounts(suite.checking, suite.groceries)
	suite.txnRepo.On("SaveTransaction", suite.ctx, mock.Anything).
		Return(apperrors.NewDuplicateError(portsrepo.ConstraintTransactionIdempotencyKey, errors.New("unique violation"))).Once()
	suite.txnRepo.On("FindTransactionByIdempotencyKey", suite.ctx, suite.userID, key).Return(winner, nil).Once()

	txn, err := suite.service.CreateTransaction(suite.ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Equal(winner.TransactionID, txn.TransactionID)
	suite.txnRepo.AssertExpectations(suite.T())
	suite.dispatcher.AssertNotCalled(suite.T(), "Dispatch", mock.Anything, mock.Anything)
}

func (suite *LedgerTransactionServiceTestSuite) TestCreateTransaction_OtherConstraintViolationIsFatal() {
	key := "order-9"
	req := suite.request(entry(suite.checking.AccountID, "-5"), entry(suite.groceries.AccountID, "5"))
	req.IdempotencyKey = &key

	suite.txnRepo.On("FindTransactionByIdempotencyKey", suite.ctx, suite.userID, key).
		Return(nil, apperrors.NewNotFoundError("transaction")).Once()
	suite.expectAccounts(suite.checking, suite.groceries)
	suite.txnRepo.On("SaveTransaction", suite.ctx, mock.Anything).
		Return(apperrors.NewDuplicateError("entries_pkey", errors.New("unique violation"))).Once()

	_, err := suite.service.CreateTransaction(suite.ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.txnRepo.AssertNumberOfCalls(suite.T(), "FindTransactionByIdempotencyKey", 1)
	suite.dispatcher.AssertNotCalled(suite.T(), "Dispatch", mock.Anything, mock.Anything)
}

func (suite *LedgerTransactionServiceTestSuite) TestCreateTransaction_DispatchFailureDoesNotFailCreate() {
	suite.expectAccounts(suite.checking, suite.groceries)
	suite.txnRepo.On("SaveTransaction", suite.ctx, mock.Anything).Return(nil).Once()
	suite.dispatcher.On("Dispatch", suite.ctx, mock.Anything).Return(errors.New("queue closed")).Once()

	txn, err := suite.service.CreateTransaction(suite.ctx, suite.userID,
		suite.request(entry(suite.checking.AccountID, "-1"), entry(suite.groceries.AccountID, "1")))

	suite.Require().NoError(err)
	suite.NotEmpty(txn.TransactionID)
}

func (suite *LedgerTransactionServiceTestSuite) storedTransaction() *domain.Transaction {
	id := uuid.NewString()
	return &domain.Transaction{
		TransactionID: id,
		UserID:        suite.userID,
		Description:   "Weekly shop",
		EffectiveAt:   suite.effectiveAt,
		Entries: []domain.Entry{
			{EntryID: uuid.NewString(), TransactionID: id, AccountID: suite.checking.AccountID, Amount: decimal.RequireFromString("-10"), CurrencyCode: "USD"},
			{EntryID: uuid.NewString(), TransactionID: id, AccountID: suite.groceries.AccountID, Amount: decimal.RequireFromString("10"), CurrencyCode: "USD"},
		},
	}
}

func (suite *LedgerTransactionServiceTestSuite) TestUpdateTransactionDetails_CategoryMovesPeriod() {
	stored := suite.storedTransaction()
	budgetID := uuid.NewString()
	category := domain.Category{CategoryID: uuid.NewString(), UserID: suite.userID, BudgetID: &budgetID}
	period := &domain.BudgetPeriod{BudgetPeriodID: uuid.NewString(), BudgetID: budgetID}

	suite.txnRepo.On("FindTransactionByID", suite.ctx, stored.TransactionID).Return(stored, nil).Once()
	suite.budgetRepo.On("FindCategoriesByIDs", suite.ctx, []string{category.CategoryID}).
		Return(map[string]domain.Category{category.CategoryID: category}, nil).Once()
	suite.budgetRepo.On("FindBudgetPeriodCovering", suite.ctx, budgetID, mock.Anything).Return(period, nil).Once()
	suite.txnRepo.On("UpdateTransactionDetails", suite.ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.BudgetPeriodID != nil && *txn.BudgetPeriodID == period.BudgetPeriodID && txn.LastUpdatedAt.Equal(suite.now)
	})).Return(nil).Once()
	suite.dispatcher.On("Dispatch", suite.ctx, mock.MatchedBy(func(e events.Event) bool {
		updated, ok := e.(events.TransactionUpdated)
		return ok && updated.PreviousBudgetPeriodID == nil && *updated.Transaction.BudgetPeriodID == period.BudgetPeriodID
	})).Return(nil).Once()

	txn, err := suite.service.UpdateTransactionDetails(suite.ctx, suite.userID, stored.TransactionID,
		dto.UpdateTransactionRequest{CategoryID: &category.CategoryID})

	suite.Require().NoError(err)
	suite.Equal(&category.CategoryID, txn.CategoryID)
	suite.Len(txn.Entries, 2)
	suite.txnRepo.AssertExpectations(suite.T())
	suite.dispatcher.AssertExpectations(suite.T())
}

func (suite *LedgerTransactionServiceTestSuite) TestUpdateTransactionDetails_OtherUsersTransaction() {
	stored := suite.storedTransaction()
	suite.txnRepo.On("FindTransactionByID", suite.ctx, stored.TransactionID).Return(stored, nil).Once()
	description := "mine now"

	_, err := suite.service.UpdateTransactionDetails(suite.ctx, uuid.NewString(), stored.TransactionID,
		dto.UpdateTransactionRequest{Description: &description})

	suite.ErrorIs(err, services.ErrTransactionNotFound)
	suite.txnRepo.AssertNotCalled(suite.T(), "UpdateTransactionDetails", mock.Anything, mock.Anything)
}

func (suite *LedgerTransactionServiceTestSuite) TestListTransactions_DefaultsLimit() {
	token := "next"
	suite.txnRepo.On("ListTransactionsByUser", suite.ctx, suite.userID, portsrepo.DefaultPageSize, (*string)(nil)).
		Return([]domain.Transaction{*suite.storedTransaction()}, token, nil).Once()

	resp, err := suite.service.ListTransactions(suite.ctx, suite.userID, dto.ListTransactionsParams{})

	suite.Require().NoError(err)
	suite.Len(resp.Transactions, 1)
	suite.Equal("next", *resp.NextToken)
	suite.Equal("-10.000000", resp.Transactions[0].Entries[0].Amount)
}

// --- Run Test Suite ---
func TestLedgerTransactionService(t *testing.T) {
	suite.Run(t, new(LedgerTransactionServiceTestSuite))
}
