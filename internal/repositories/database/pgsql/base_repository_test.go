package pgsql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/SscSPs/budget_ledger/internal/apperrors"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", pgx.ErrNoRows, apperrors.ErrNotFound},
		{"malformed uuid", fmt.Errorf("query: %w", &pgconn.PgError{Code: pgInvalidTextRepresentation}), apperrors.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "accounts_user_id_name_key"}, apperrors.ErrDuplicate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translateError(tt.err, "account abc"), tt.want)
		})
	}

	assert.NoError(t, translateError(nil, "account"))

	other := errors.New("connection reset")
	translated := translateError(other, "account abc")
	assert.ErrorIs(t, translated, other)
	assert.NotErrorIs(t, translated, apperrors.ErrNotFound)
}

func TestWellFormedIDs(t *testing.T) {
	id := uuid.NewString()

	assert.Equal(t, []string{id}, wellFormedIDs([]string{"abc", id, ""}))
	assert.Empty(t, wellFormedIDs([]string{"not-a-uuid"}))
}
