package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/budget_ledger/internal/apperrors"
	"github.com/SscSPs/budget_ledger/internal/core/domain"
	"github.com/SscSPs/budget_ledger/internal/core/money"
	portsrepo "github.com/SscSPs/budget_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_ledger/internal/core/ports/services"
	"github.com/SscSPs/budget_ledger/internal/dto"
)

// Source tags written on transactions built by ledgerActionService.
const (
	SourceExpense  = "action:expense"
	SourceIncome   = "action:income"
	SourceTransfer = "action:transfer"
	SourceDebt     = "action:debt"
)

type ledgerActionService struct {
	BaseService
	accountRepo     portsrepo.AccountReader
	txnRepo         portsrepo.TransactionReader
	budgetRepo      portsrepo.BudgetReader
	reportingRepo   portsrepo.ReportingRepository
	fundamentals    portssvc.FundamentalAccountSvc
	ledger          portssvc.LedgerWriterSvc
	defaultCurrency string
}

// NewLedgerActionService creates the service behind expense, income, transfer and debt actions.
// Every transaction it builds goes through ledger, so engine validation always applies.
func NewLedgerActionService(
	repos portsrepo.RepositoryProvider,
	fundamentals portssvc.FundamentalAccountSvc,
	ledger portssvc.LedgerWriterSvc,
	defaultCurrency string,
	options ...ServiceOption,
) portssvc.LedgerActionSvc {
	return &ledgerActionService{
		BaseService:     newBaseService(applyOptions(options)),
		accountRepo:     repos.AccountRepo,
		txnRepo:         repos.TransactionRepo,
		budgetRepo:      repos.BudgetRepo,
		reportingRepo:   repos.ReportingRepo,
		fundamentals:    fundamentals,
		ledger:          ledger,
		defaultCurrency: money.NormalizeCurrency(defaultCurrency),
	}
}

var _ portssvc.LedgerActionSvc = (*ledgerActionService)(nil)

func (s *ledgerActionService) RegisterExpense(ctx context.Context, userID string, req dto.RegisterFlowRequest) (*domain.Transaction, error) {
	if existing, ok, err := s.replay(ctx, userID, req.IdempotencyKey); ok || err != nil {
		return existing, err
	}

	account, err := s.loadOwnedAccount(ctx, userID, req.AccountID)
	if err != nil {
		return nil, err
	}
	amount, err := positiveAmount(req.Amount, "amount")
	if err != nil {
		return nil, err
	}
	if err := s.checkFunds(ctx, account, amount); err != nil {
		return nil, err
	}

	sink, err := s.fundamentals.ResolveFundamentalAccount(ctx, userID, account.CurrencyCode, domain.Expense)
	if err != nil {
		return nil, err
	}

	return s.ledger.CreateTransaction(ctx, userID, dto.CreateTransactionRequest{
		Description:    req.Description,
		EffectiveAt:    req.EffectiveAt,
		Reference:      req.Reference,
		Source:         strPtr(SourceExpense),
		IdempotencyKey: req.IdempotencyKey,
		CategoryID:     req.CategoryID,
		Entries: []dto.CreateEntryRequest{
			{AccountID: account.AccountID, Amount: amount.Neg(), Memo: req.Memo},
			{AccountID: sink.AccountID, Amount: amount, Memo: req.Memo},
		},
	})
}

func (s *ledgerActionService) RegisterIncome(ctx context.Context, userID string, req dto.RegisterFlowRequest) (*domain.Transaction, error) {
	if existing, ok, err := s.replay(ctx, userID, req.IdempotencyKey); ok || err != nil {
		return existing, err
	}

	account, err := s.loadOwnedAccount(ctx, userID, req.AccountID)
	if err != nil {
		return nil, err
	}
	amount, err := positiveAmount(req.Amount, "amount")
	if err != nil {
		return nil, err
	}

	source, err := s.fundamentals.ResolveFundamentalAccount(ctx, userID, account.CurrencyCode, domain.Income)
	if err != nil {
		return nil, err
	}

	return s.ledger.CreateTransaction(ctx, userID, dto.CreateTransactionRequest{
		Description:    req.Description,
		EffectiveAt:    req.EffectiveAt,
		Reference:      req.Reference,
		Source:         strPtr(SourceIncome),
		IdempotencyKey: req.IdempotencyKey,
		CategoryID:     req.CategoryID,
		Entries: []dto.CreateEntryRequest{
			{AccountID: account.AccountID, Amount: amount, Memo: req.Memo},
			{AccountID: source.AccountID, Amount: amount.Neg(), Memo: req.Memo},
		},
	})
}

// TransferFunds moves value between two accounts. Cross-currency transfers route
// through the Currency Exchange equity account of each currency, so each currency's
// entries balance on their own and all four entries balance in the base currency.
func (s *ledgerActionService) TransferFunds(ctx context.Context, userID string, req dto.TransferRequest) (*domain.Transaction, error) {
	if existing, ok, err := s.replay(ctx, userID, req.IdempotencyKey); ok || err != nil {
		return existing, err
	}

	from, err := s.loadOwnedAccount(ctx, userID, req.FromAccountID)
	if err != nil {
		return nil, err
	}
	to, err := s.loadOwnedAccount(ctx, userID, req.ToAccountID)
	if err != nil {
		return nil, err
	}
	if from.AccountID == to.AccountID {
		return nil, fmt.Errorf("%w: cannot transfer to the same account", apperrors.ErrValidation)
	}
	amount, err := positiveAmount(req.Amount, "amount")
	if err != nil {
		return nil, err
	}

	txReq := dto.CreateTransactionRequest{
		Description:    req.Description,
		EffectiveAt:    req.EffectiveAt,
		Source:         strPtr(SourceTransfer),
		IdempotencyKey: req.IdempotencyKey,
	}

	if from.CurrencyCode == to.CurrencyCode {
		if req.ToAmount != nil && !money.Normalize(*req.ToAmount).Equal(amount) {
			return nil, fmt.Errorf("%w: toAmount must equal amount for a same-currency transfer", apperrors.ErrValidation)
		}
		txReq.Entries = []dto.CreateEntryRequest{
			{AccountID: from.AccountID, Amount: amount.Neg()},
			{AccountID: to.AccountID, Amount: amount},
		}
		return s.ledger.CreateTransaction(ctx, userID, txReq)
	}

	if req.ToAmount == nil {
		return nil, fmt.Errorf("%w: toAmount is required when currencies differ", ErrAmountMustBeNonZero)
	}
	toAmount, err := positiveAmount(*req.ToAmount, "toAmount")
	if err != nil {
		return nil, err
	}

	var base decimal.Decimal
	switch {
	case req.AmountBase != nil:
		if base, err = positiveAmount(*req.AmountBase, "amountBase"); err != nil {
			return nil, err
		}
	case from.CurrencyCode == s.defaultCurrency:
		base = amount
	case to.CurrencyCode == s.defaultCurrency:
		base = toAmount
	default:
		return nil, fmt.Errorf("%w: amountBase is required when neither currency is %s", apperrors.ErrValidation, s.defaultCurrency)
	}

	fxFrom, err := s.fundamentals.ResolveFundamentalAccount(ctx, userID, from.CurrencyCode, domain.Equity)
	if err != nil {
		return nil, err
	}
	fxTo, err := s.fundamentals.ResolveFundamentalAccount(ctx, userID, to.CurrencyCode, domain.Equity)
	if err != nil {
		return nil, err
	}

	negBase := base.Neg()
	txReq.Entries = []dto.CreateEntryRequest{
		{AccountID: from.AccountID, Amount: amount.Neg(), AmountBase: &negBase},
		{AccountID: fxFrom.AccountID, Amount: amount, AmountBase: &base},
		{AccountID: fxTo.AccountID, Amount: toAmount.Neg(), AmountBase: &negBase},
		{AccountID: to.AccountID, Amount: toAmount, AmountBase: &base},
	}

	s.LogDebug(ctx, "Routing cross-currency transfer through exchange accounts",
		slog.String("from_currency", from.CurrencyCode),
		slog.String("to_currency", to.CurrencyCode),
		slog.String("amount_base", money.String(base)))
	return s.ledger.CreateTransaction(ctx, userID, txReq)
}

// RecordDebt posts a loan movement. Signs follow the asset-positive convention:
// receivables grow positive, payables grow negative.
func (s *ledgerActionService) RecordDebt(ctx context.Context, userID string, req dto.DebtRequest) (*domain.Transaction, error) {
	if existing, ok, err := s.replay(ctx, userID, req.IdempotencyKey); ok || err != nil {
		return existing, err
	}

	cash, err := s.loadOwnedAccount(ctx, userID, req.AccountID)
	if err != nil {
		return nil, err
	}
	loan, err := s.loadOwnedAccount(ctx, userID, req.LoanAccountID)
	if err != nil {
		return nil, err
	}
	amount, err := positiveAmount(req.Amount, "amount")
	if err != nil {
		return nil, err
	}

	var wantSubtype domain.AccountSubtype
	var cashAmount decimal.Decimal
	switch req.Kind {
	case dto.DebtLend:
		wantSubtype, cashAmount = domain.SubtypeLoanReceivable, amount.Neg()
	case dto.DebtCollect:
		wantSubtype, cashAmount = domain.SubtypeLoanReceivable, amount
	case dto.DebtBorrow:
		wantSubtype, cashAmount = domain.SubtypeLoanPayable, amount
	case dto.DebtRepay:
		wantSubtype, cashAmount = domain.SubtypeLoanPayable, amount.Neg()
	default:
		return nil, fmt.Errorf("%w: unknown debt kind %q", apperrors.ErrValidation, req.Kind)
	}

	if loan.Subtype != wantSubtype {
		return nil, fmt.Errorf("%w: %s needs a %s account, %s is %q", ErrAccountSubtypeMismatch, req.Kind, wantSubtype, loan.AccountID, loan.Subtype)
	}
	if cash.CurrencyCode != loan.CurrencyCode {
		return nil, fmt.Errorf("%w: %s account vs %s loan account", ErrCurrencyMismatch, cash.CurrencyCode, loan.CurrencyCode)
	}

	return s.ledger.CreateTransaction(ctx, userID, dto.CreateTransactionRequest{
		Description:    req.Description,
		EffectiveAt:    req.EffectiveAt,
		Source:         strPtr(SourceDebt + ":" + string(req.Kind)),
		IdempotencyKey: req.IdempotencyKey,
		Entries: []dto.CreateEntryRequest{
			{AccountID: cash.AccountID, Amount: cashAmount},
			{AccountID: loan.AccountID, Amount: cashAmount.Neg()},
		},
	})
}

// replay returns the transaction already stored under the idempotency key, so a retried
// action never trips pre-checks whose inputs changed since the first call.
func (s *ledgerActionService) replay(ctx context.Context, userID string, idempotencyKey *string) (*domain.Transaction, bool, error) {
	key := normalizeOptional(idempotencyKey)
	if key == nil {
		return nil, false, nil
	}
	existing, err := s.txnRepo.FindTransactionByIdempotencyKey(ctx, userID, *key)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Idempotency lookup failed, continuing with a fresh write")
		}
		return nil, false, nil
	}
	existing, err = withBudgetPeriod(ctx, s.budgetRepo, existing)
	if err != nil {
		return nil, false, err
	}
	return existing, true, nil
}

func (s *ledgerActionService) loadOwnedAccount(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to load account %s: %w", accountID, err)
	}
	if account.UserID != userID {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}
	return account, nil
}

// checkFunds is advisory: it reads a snapshot, so two concurrent expenses can both pass.
// Only asset accounts are checked; liabilities such as credit cards may go further negative.
func (s *ledgerActionService) checkFunds(ctx context.Context, account *domain.Account, amount decimal.Decimal) error {
	if account.AccountType != domain.Asset {
		return nil
	}
	balance, err := s.reportingRepo.SumBalanceForAccount(ctx, account.AccountID)
	if err != nil {
		return fmt.Errorf("failed to read balance of %s: %w", account.AccountID, err)
	}
	if balance.LessThan(amount) {
		return fmt.Errorf("%w: balance %s is below %s", ErrInsufficientFunds, money.String(balance), money.String(amount))
	}
	return nil
}

func positiveAmount(d decimal.Decimal, field string) (decimal.Decimal, error) {
	amount := money.Normalize(d)
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s must be positive", ErrAmountMustBeNonZero, field)
	}
	return amount, nil
}

func strPtr(s string) *string {
	return &s
}
