package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/service-catalog/internal/models"
)

const taskColumns = `id,
       title,
       description,
       completed,
       created_at,
       updated_at`

func scanTask(row rowScanner) (*models.Task, error) {
	task := new(models.Task)
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Completed,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return task, nil
}

type taskRepositoryImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewTaskRepository(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) TaskRepository {
	return &taskRepositoryImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (r *taskRepositoryImpl) List(ctx context.Context) ([]*models.Task, error) {
	const selectTasksQuery = `
SELECT ` + taskColumns + `
FROM tasks
ORDER BY created_at DESC
`
	rows, err := r.pgPool.Query(ctx, selectTasksQuery)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to select tasks")
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			r.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	r.logger.Debug().
		Int("count", len(tasks)).
		Msg("selected tasks")
	return tasks, nil
}

func (r *taskRepositoryImpl) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	id, err := NewID()
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to generate task id")
		return nil, err
	}

	now := storeNow()
	stored := *task
	stored.ID = id
	stored.CreatedAt = now
	stored.UpdatedAt = now

	const insertTaskQuery = `
INSERT INTO tasks (id,
                   title,
                   description,
                   completed,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
`
	_, err = r.pgPool.Exec(
		ctx,
		insertTaskQuery,
		stored.ID,
		stored.Title,
		stored.Description,
		stored.Completed,
		stored.CreatedAt,
		stored.UpdatedAt,
	)
	if err != nil {
		err = translateWriteError(err)
		r.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}

	r.logger.Info().
		Str("task_id", stored.ID).
		Msg("created task")
	return &stored, nil
}

func (r *taskRepositoryImpl) GetByID(ctx context.Context, id string) (*models.Task, error) {
	id, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	const selectTaskByIDQuery = `
SELECT ` + taskColumns + `
FROM tasks
WHERE id = $1
`
	task, err := scanTask(r.pgPool.QueryRow(ctx, selectTaskByIDQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn().
				Str("task_id", id).
				Msg("task not found")
			return nil, ErrNotFound
		}

		r.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to select task by id")
		return nil, fmt.Errorf("failed to select task: %w", err)
	}
	r.logger.Debug().
		Str("task_id", id).
		Msg("selected task by id")
	return task, nil
}

func (r *taskRepositoryImpl) Update(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	id, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	const updateTaskQuery = `
UPDATE tasks
SET title = COALESCE($1, title),
    description = COALESCE($2, description),
    completed = COALESCE($3, completed),
    updated_at = $4
WHERE id = $5
RETURNING ` + taskColumns

	task, err := scanTask(r.pgPool.QueryRow(
		ctx,
		updateTaskQuery,
		patch.Title,
		patch.Description,
		patch.Completed,
		storeNow(),
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn().
				Str("task_id", id).
				Msg("task not found")
			return nil, ErrNotFound
		}

		err = translateWriteError(err)
		r.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to update task")
		return nil, err
	}

	r.logger.Info().
		Str("task_id", id).
		Msg("updated task")
	return task, nil
}

func (r *taskRepositoryImpl) Delete(ctx context.Context, id string) (*models.Task, error) {
	id, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1
RETURNING ` + taskColumns

	task, err := scanTask(r.pgPool.QueryRow(ctx, deleteTaskQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn().
				Str("task_id", id).
				Msg("task not found")
			return nil, ErrNotFound
		}

		r.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to delete task")
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}

	r.logger.Info().
		Str("task_id", id).
		Msg("deleted task")
	return task, nil
}
