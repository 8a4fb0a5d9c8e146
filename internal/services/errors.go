package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/adanyl0v/service-catalog/internal/validation"
)

// ParseID returns the canonical form of id or ErrInvalidID.
func ParseID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", ErrInvalidID
	}
	return parsed.String(), nil
}

// NewID generates a time-ordered identifier for a new record.
func NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

var constraintViolations = map[string]validation.FieldViolation{
	"services_name_check":        {Field: "name", Message: "name must be between 1 and 100 characters"},
	"services_category_check":    {Field: "category", Message: "category is not supported"},
	"services_price_check":       {Field: "price", Message: "price must not be negative"},
	"services_duration_check":    {Field: "duration", Message: "duration must be between 1 and 50 characters"},
	"services_status_check":      {Field: "status", Message: "status is not supported"},
	"services_description_check": {Field: "description", Message: "description must be between 1 and 500 characters"},
	"services_clients_check":     {Field: "clients", Message: "clients must not be negative"},
	"tasks_title_check":          {Field: "title", Message: "title must not be blank"},
}

// translateWriteError turns schema constraint violations reported by
// postgres into a *ValidationError and leaves other errors untouched.
func translateWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.CheckViolation:
		violation, ok := constraintViolations[pgErr.ConstraintName]
		if !ok {
			violation = validation.FieldViolation{Message: pgErr.Message}
		}
		return &ValidationError{Violations: []validation.FieldViolation{violation}}
	case pgerrcode.NotNullViolation:
		return &ValidationError{Violations: []validation.FieldViolation{{
			Field:   pgErr.ColumnName,
			Message: pgErr.ColumnName + " is required",
		}}}
	default:
		return err
	}
}
