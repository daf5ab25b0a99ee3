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
	"github.com/SscSPs/budget_ledger/internal/dto"
)

type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, options ...ServiceOption) portssvc.AccountSvcFacade {
	return &accountService{
		BaseService: newBaseService(applyOptions(options)),
		accountRepo: accountRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}
	if isReservedAccountName(name) {
		return nil, fmt.Errorf("%w: %q", ErrReservedAccountName, name)
	}
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: invalid account type %q", apperrors.ErrValidation, req.AccountType)
	}
	if !req.Subtype.AllowedFor(req.AccountType) {
		return nil, fmt.Errorf("%w: %s cannot be used on a %s account", ErrAccountSubtypeMismatch, req.Subtype, req.AccountType)
	}
	currencyCode := money.NormalizeCurrency(req.CurrencyCode)
	if err := money.ValidateCurrency(currencyCode); err != nil {
		return nil, err
	}

	now := s.Now()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		UserID:       userID,
		Name:         name,
		AccountType:  req.AccountType,
		Subtype:      req.Subtype,
		CurrencyCode: currencyCode,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if apperrors.IsDuplicateOn(err, portsrepo.ConstraintAccountUserName) {
			return nil, fmt.Errorf("account name %q is already used: %w", name, err)
		}
		s.LogError(ctx, err, "Failed to save account", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("account_type", string(account.AccountType)))
	return &account, nil
}

func (s *accountService) GetAccount(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account.UserID != userID {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, userID string, includeArchived bool) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByUser(ctx, userID, includeArchived)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (s *accountService) ArchiveAccount(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	account, err := s.GetAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	if account.IsFundamental {
		return nil, fmt.Errorf("%w: %s", ErrFundamentalAccountImmutable, account.Name)
	}
	if account.IsArchived {
		return account, nil
	}

	account.IsArchived = true
	account.LastUpdatedAt = s.Now()
	account.LastUpdatedBy = userID
	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		return nil, fmt.Errorf("failed to archive account: %w", err)
	}
	s.LogInfo(ctx, "Account archived", slog.String("account_id", accountID))
	return account, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, userID, accountID string) error {
	account, err := s.GetAccount(ctx, userID, accountID)
	if err != nil {
		return err
	}
	if account.IsFundamental {
		return fmt.Errorf("%w: %s", ErrFundamentalAccountImmutable, account.Name)
	}

	count, err := s.accountRepo.CountEntriesForAccount(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to count entries: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %d entries, archive it instead", ErrAccountHasEntries, count)
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID))
	return nil
}
