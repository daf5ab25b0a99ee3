package mapping

import (
	"github.com/SscSPs/budget_ledger/internal/core/domain"
	"github.com/SscSPs/budget_ledger/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	var subtype *string
	if d.Subtype != domain.SubtypeNone {
		s := string(d.Subtype)
		subtype = &s
	}
	return models.Account{
		AccountID:     d.AccountID,
		UserID:        d.UserID,
		Name:          d.Name,
		AccountType:   models.AccountType(d.AccountType),
		Subtype:       subtype,
		CurrencyCode:  d.CurrencyCode,
		IsArchived:    d.IsArchived,
		IsFundamental: d.IsFundamental,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	subtype := domain.SubtypeNone
	if m.Subtype != nil {
		subtype = domain.AccountSubtype(*m.Subtype)
	}
	return domain.Account{
		AccountID:     m.AccountID,
		UserID:        m.UserID,
		Name:          m.Name,
		AccountType:   domain.AccountType(m.AccountType),
		Subtype:       subtype,
		CurrencyCode:  m.CurrencyCode,
		IsArchived:    m.IsArchived,
		IsFundamental: m.IsFundamental,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
