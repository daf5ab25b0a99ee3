package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/budget_ledger/internal/apperrors"
	"github.com/SscSPs/budget_ledger/internal/core/services"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: bad", services.ErrUnbalancedEntries), http.StatusBadRequest},
		{services.ErrAccountOwnershipMismatch, http.StatusForbidden},
		{services.ErrTransactionNotFound, http.StatusNotFound},
		{apperrors.NewDuplicateError("accounts_user_id_name_key", errors.New("dup")), http.StatusConflict},
		{services.ErrAccountHasEntries, http.StatusConflict},
		{services.ErrInsufficientFunds, http.StatusUnprocessableEntity},
		{services.ErrFundamentalAccountNotFound, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusForError(tt.err), tt.err.Error())
	}
}

func TestParseAsOf(t *testing.T) {
	asOf, err := parseAsOf("")
	require.NoError(t, err)
	assert.Nil(t, asOf)

	asOf, err = parseAsOf("2025-11-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 11, 1, 23, 59, 59, 999999999, time.UTC), *asOf)

	asOf, err = parseAsOf("2025-11-01T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC), asOf.UTC())

	_, err = parseAsOf("11/01/2025")
	assert.Error(t, err)
}
