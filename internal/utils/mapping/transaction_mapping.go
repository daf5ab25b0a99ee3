package mapping

import (
	"github.com/SscSPs/budget_ledger/internal/core/domain"
	"github.com/SscSPs/budget_ledger/internal/models"
)

// ToModelTransaction converts the header of a domain Transaction. Entries are mapped separately.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:  d.TransactionID,
		UserID:         d.UserID,
		Description:    d.Description,
		EffectiveAt:    d.EffectiveAt,
		PostedAt:       d.PostedAt,
		Reference:      d.Reference,
		Source:         d.Source,
		IdempotencyKey: d.IdempotencyKey,
		CategoryID:     d.CategoryID,
		BudgetPeriodID: d.BudgetPeriodID,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction and attaches the given entries.
func ToDomainTransaction(m models.Transaction, entries []models.Entry) domain.Transaction {
	return domain.Transaction{
		TransactionID:  m.TransactionID,
		UserID:         m.UserID,
		Description:    m.Description,
		EffectiveAt:    m.EffectiveAt,
		PostedAt:       m.PostedAt,
		Reference:      m.Reference,
		Source:         m.Source,
		IdempotencyKey: m.IdempotencyKey,
		CategoryID:     m.CategoryID,
		BudgetPeriodID: m.BudgetPeriodID,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
		Entries:        ToDomainEntrySlice(entries),
	}
}

func ToModelEntry(d domain.Entry) models.Entry {
	return models.Entry{
		EntryID:       d.EntryID,
		TransactionID: d.TransactionID,
		AccountID:     d.AccountID,
		Amount:        d.Amount,
		CurrencyCode:  d.CurrencyCode,
		AmountBase:    d.AmountBase,
		CategoryID:    d.CategoryID,
		Memo:          d.Memo,
	}
}

func ToDomainEntry(m models.Entry) domain.Entry {
	return domain.Entry{
		EntryID:       m.EntryID,
		TransactionID: m.TransactionID,
		AccountID:     m.AccountID,
		Amount:        m.Amount,
		CurrencyCode:  m.CurrencyCode,
		AmountBase:    m.AmountBase,
		CategoryID:    m.CategoryID,
		Memo:          m.Memo,
	}
}

// ToDomainEntrySlice converts a slice of model Entries to a slice of domain Entries
func ToDomainEntrySlice(ms []models.Entry) []domain.Entry {
	ds := make([]domain.Entry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntry(m)
	}
	return ds
}
