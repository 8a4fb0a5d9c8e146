package services

import (
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	id, err := NewID()
	require.NoError(t, err)

	parsed, err := ParseID(id)
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	for _, bad := range []string{"", "not-an-id", "123", "507f1f77bcf86cd799439011"} {
		_, err := ParseID(bad)
		assert.ErrorIs(t, err, ErrInvalidID, "id %q", bad)
	}
}

func TestTranslateWriteError(t *testing.T) {
	t.Run("check violation", func(t *testing.T) {
		err := translateWriteError(&pgconn.PgError{
			Code:           pgerrcode.CheckViolation,
			ConstraintName: "services_price_check",
		})

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Len(t, validationErr.Violations, 1)
		assert.Equal(t, "price", validationErr.Violations[0].Field)
	})

	t.Run("unknown constraint keeps the store message", func(t *testing.T) {
		err := translateWriteError(&pgconn.PgError{
			Code:           pgerrcode.CheckViolation,
			ConstraintName: "other_check",
			Message:        "new row violates check constraint",
		})

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "new row violates check constraint", validationErr.Violations[0].Message)
	})

	t.Run("not null violation", func(t *testing.T) {
		err := translateWriteError(&pgconn.PgError{
			Code:       pgerrcode.NotNullViolation,
			ColumnName: "duration",
		})

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "duration is required", validationErr.Violations[0].Message)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		connErr := errors.New("connection refused")
		assert.Same(t, connErr, translateWriteError(connErr))

		pgErr := &pgconn.PgError{Code: pgerrcode.UniqueViolation}
		assert.Same(t, pgErr, translateWriteError(pgErr))
	})
}

func TestValidationError_Error(t *testing.T) {
	err := translateWriteError(&pgconn.PgError{
		Code:           pgerrcode.CheckViolation,
		ConstraintName: "services_clients_check",
	})
	assert.EqualError(t, err, "validation failed: clients must not be negative")
}
