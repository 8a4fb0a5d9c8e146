package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/service-catalog/internal/models"
)

const serviceColumns = `id,
       name,
       category,
       price,
       duration,
       status,
       description,
       clients,
       created_at,
       updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanService(row rowScanner) (*models.Service, error) {
	service := new(models.Service)
	err := row.Scan(
		&service.ID,
		&service.Name,
		&service.Category,
		&service.Price,
		&service.Duration,
		&service.Status,
		&service.Description,
		&service.Clients,
		&service.CreatedAt,
		&service.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return service, nil
}

// storeNow returns the current time at the precision postgres keeps,
// so a stored record reads back exactly as it was written.
func storeNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

type serviceRepositoryImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewServiceRepository(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) ServiceRepository {
	return &serviceRepositoryImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (r *serviceRepositoryImpl) List(ctx context.Context) ([]*models.Service, error) {
	const selectServicesQuery = `
SELECT ` + serviceColumns + `
FROM services
ORDER BY created_at DESC
`
	return r.query(ctx, selectServicesQuery)
}

func (r *serviceRepositoryImpl) ListByCategory(ctx context.Context, category string) ([]*models.Service, error) {
	if !models.Category(category).Valid() {
		r.logger.Warn().
			Str("category", category).
			Msg("invalid category")
		return nil, ErrInvalidCategory
	}

	const selectServicesByCategoryQuery = `
SELECT ` + serviceColumns + `
FROM services
WHERE category = $1
ORDER BY created_at DESC
`
	return r.query(ctx, selectServicesByCategoryQuery, category)
}

func (r *serviceRepositoryImpl) query(ctx context.Context, query string, args ...any) ([]*models.Service, error) {
	rows, err := r.pgPool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to select services")
		return nil, fmt.Errorf("failed to select services: %w", err)
	}
	defer rows.Close()

	services := make([]*models.Service, 0)
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			r.logger.Error().
				Err(err).
				Msg("failed to scan service")
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, service)
	}

	err = rows.Err()
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	r.logger.Debug().
		Int("count", len(services)).
		Msg("selected services")
	return services, nil
}

func (r *serviceRepositoryImpl) Create(ctx context.Context, service *models.Service) (*models.Service, error) {
	id, err := NewID()
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to generate service id")
		return nil, err
	}

	now := storeNow()
	stored := *service
	stored.ID = id
	stored.CreatedAt = now
	stored.UpdatedAt = now

	const insertServiceQuery = `
INSERT INTO services (id,
                      name,
                      category,
                      price,
                      duration,
                      status,
                      description,
                      clients,
                      created_at,
                      updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`
	_, err = r.pgPool.Exec(
		ctx,
		insertServiceQuery,
		stored.ID,
		stored.Name,
		stored.Category,
		stored.Price,
		stored.Duration,
		stored.Status,
		stored.Description,
		stored.Clients,
		stored.CreatedAt,
		stored.UpdatedAt,
	)
	if err != nil {
		err = translateWriteError(err)
		r.logger.Error().
			Err(err).
			Msg("failed to insert service")
		return nil, err
	}
	r.logger.Debug().
		Str("service_id", stored.ID).
		Msg("inserted service")

	r.logger.Info().
		Str("service_id", stored.ID).
		Str("category", string(stored.Category)).
		Msg("created service")
	return &stored, nil
}

func (r *serviceRepositoryImpl) GetByID(ctx context.Context, id string) (*models.Service, error) {
	id, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	const selectServiceByIDQuery = `
SELECT ` + serviceColumns + `
FROM services
WHERE id = $1
`
	service, err := scanService(r.pgPool.QueryRow(ctx, selectServiceByIDQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn().
				Str("service_id", id).
				Msg("service not found")
			return nil, ErrNotFound
		}

		r.logger.Error().
			Err(err).
			Str("service_id", id).
			Msg("failed to select service by id")
		return nil, fmt.Errorf("failed to select service: %w", err)
	}
	r.logger.Debug().
		Str("service_id", id).
		Msg("selected service by id")
	return service, nil
}

func (r *serviceRepositoryImpl) Update(ctx context.Context, id string, patch models.ServicePatch) (*models.Service, error) {
	id, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	tx, err := r.pgPool.Begin(ctx)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const selectServiceForUpdateQuery = `
SELECT ` + serviceColumns + `
FROM services
WHERE id = $1
FOR UPDATE
`
	service, err := scanService(tx.QueryRow(ctx, selectServiceForUpdateQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn().
				Str("service_id", id).
				Msg("service not found")
			return nil, ErrNotFound
		}

		r.logger.Error().
			Err(err).
			Str("service_id", id).
			Msg("failed to select service for update")
		return nil, fmt.Errorf("failed to select service: %w", err)
	}

	patch.Apply(service)
	service.UpdatedAt = storeNow()

	const updateServiceQuery = `
UPDATE services
SET name = $1,
    category = $2,
    price = $3,
    duration = $4,
    status = $5,
    description = $6,
    clients = $7,
    updated_at = $8
WHERE id = $9
`
	_, err = tx.Exec(
		ctx,
		updateServiceQuery,
		service.Name,
		service.Category,
		service.Price,
		service.Duration,
		service.Status,
		service.Description,
		service.Clients,
		service.UpdatedAt,
		service.ID,
	)
	if err != nil {
		err = translateWriteError(err)
		r.logger.Error().
			Err(err).
			Str("service_id", id).
			Msg("failed to update service")
		return nil, err
	}

	err = tx.Commit(ctx)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.Info().
		Str("service_id", id).
		Msg("updated service")
	return service, nil
}

func (r *serviceRepositoryImpl) Delete(ctx context.Context, id string) (*models.Service, error) {
	id, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	const deleteServiceQuery = `
DELETE FROM services
WHERE id = $1
RETURNING ` + serviceColumns

	service, err := scanService(r.pgPool.QueryRow(ctx, deleteServiceQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn().
				Str("service_id", id).
				Msg("service not found")
			return nil, ErrNotFound
		}

		r.logger.Error().
			Err(err).
			Str("service_id", id).
			Msg("failed to delete service")
		return nil, fmt.Errorf("failed to delete service: %w", err)
	}

	r.logger.Info().
		Str("service_id", id).
		Msg("deleted service")
	return service, nil
}

func (r *serviceRepositoryImpl) Count(ctx context.Context) (int64, error) {
	const countServicesQuery = `SELECT count(*) FROM services`
	return r.scalar(ctx, "count services", countServicesQuery)
}

func (r *serviceRepositoryImpl) CountByStatus(ctx context.Context, status models.ServiceStatus) (int64, error) {
	const countServicesByStatusQuery = `SELECT count(*) FROM services WHERE status = $1`
	return r.scalar(ctx, "count services by status", countServicesByStatusQuery, status)
}

func (r *serviceRepositoryImpl) SumClients(ctx context.Context) (int64, error) {
	const sumClientsQuery = `SELECT COALESCE(sum(clients), 0) FROM services`
	return r.scalar(ctx, "sum clients", sumClientsQuery)
}

func (r *serviceRepositoryImpl) scalar(ctx context.Context, what, query string, args ...any) (int64, error) {
	var n int64
	err := r.pgPool.QueryRow(ctx, query, args...).Scan(&n)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to " + what)
		return 0, fmt.Errorf("failed to %s: %w", what, err)
	}
	return n, nil
}

func (r *serviceRepositoryImpl) DistinctCategories(ctx context.Context) ([]models.Category, error) {
	const selectDistinctCategoriesQuery = `
SELECT DISTINCT category
FROM services
ORDER BY category
`
	rows, err := r.pgPool.Query(ctx, selectDistinctCategoriesQuery)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to select distinct categories")
		return nil, fmt.Errorf("failed to select distinct categories: %w", err)
	}

	categories, err := pgx.CollectRows(rows, pgx.RowTo[models.Category])
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to collect categories")
		return nil, fmt.Errorf("failed to collect categories: %w", err)
	}
	return categories, nil
}

func (r *serviceRepositoryImpl) PriceSummary(ctx context.Context) (models.PriceSummary, error) {
	const selectPriceSummaryQuery = `
SELECT COALESCE(avg(price), 0),
       COALESCE(min(price), 0),
       COALESCE(max(price), 0)
FROM services
`
	var summary models.PriceSummary
	err := r.pgPool.QueryRow(ctx, selectPriceSummaryQuery).Scan(
		&summary.Average,
		&summary.Min,
		&summary.Max,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to select price summary")
		return models.PriceSummary{}, fmt.Errorf("failed to select price summary: %w", err)
	}
	return summary, nil
}
