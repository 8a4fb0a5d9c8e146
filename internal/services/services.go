package services

import (
	"context"
	"errors"
	"strings"

	"github.com/adanyl0v/service-catalog/internal/models"
	"github.com/adanyl0v/service-catalog/internal/validation"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrInvalidID       = errors.New("invalid identifier")
	ErrInvalidCategory = errors.New("invalid category")
)

// ValidationError is returned when the store rejects a record
// because it breaks one or more of its schema constraints.
type ValidationError struct {
	Violations []validation.FieldViolation
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(validation.Messages(e.Violations), "; ")
}

type ServiceRepository interface {
	// List returns every service, most recently created first.
	List(ctx context.Context) ([]*models.Service, error)

	// Create assigns an ID and timestamps to the service and stores it.
	// The caller is expected to validate the service beforehand.
	//
	// It returns a *ValidationError if the store schema rejects it.
	Create(ctx context.Context, service *models.Service) (*models.Service, error)

	// GetByID returns ErrInvalidID if the given id is malformed
	// or ErrNotFound if no service has it.
	GetByID(ctx context.Context, id string) (*models.Service, error)

	// Update overlays the fields present in the patch on the stored
	// service and refreshes its update timestamp.
	//
	// It fails like GetByID and returns a *ValidationError if the
	// resulting service breaks the store schema.
	Update(ctx context.Context, id string, patch models.ServicePatch) (*models.Service, error)

	// Delete removes the service and returns it as it was before deletion.
	Delete(ctx context.Context, id string) (*models.Service, error)

	// ListByCategory returns ErrInvalidCategory without querying the
	// store if the category is unknown.
	ListByCategory(ctx context.Context, category string) ([]*models.Service, error)

	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.ServiceStatus) (int64, error)
	SumClients(ctx context.Context) (int64, error)
	DistinctCategories(ctx context.Context) ([]models.Category, error)
	PriceSummary(ctx context.Context) (models.PriceSummary, error)
}

type TaskRepository interface {
	List(ctx context.Context) ([]*models.Task, error)
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id string) (*models.Task, error)
	Update(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, id string) (*models.Task, error)
}

type StatsService interface {
	// Snapshot computes fresh statistics over every stored service.
	// It fails as a whole if any of the underlying reductions fails.
	Snapshot(ctx context.Context) (*models.Snapshot, error)
}
