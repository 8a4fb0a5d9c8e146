package memory

import (
	"context"
	"time"

	"github.com/adanyl0v/service-catalog/internal/models"
	"github.com/adanyl0v/service-catalog/internal/services"
)

type taskRecord struct {
	task models.Task
	seq  uint64
}

type taskRepository struct {
	store *Store
}

func (r *taskRepository) check(task models.Task) error {
	violations := r.store.validator.Struct(models.TaskInput{Title: &task.Title})
	if len(violations) > 0 {
		return &services.ValidationError{Violations: violations}
	}
	return nil
}

func (r *taskRepository) List(_ context.Context) ([]*models.Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	records := make([]taskRecord, 0, len(r.store.tasks))
	for _, rec := range r.store.tasks {
		records = append(records, rec)
	}

	order := newestFirst(func(i int) (time.Time, uint64) {
		return records[i].task.CreatedAt, records[i].seq
	}, len(records))

	tasks := make([]*models.Task, 0, len(records))
	for _, i := range order {
		task := records[i].task
		tasks = append(tasks, &task)
	}
	return tasks, nil
}

func (r *taskRepository) Create(_ context.Context, task *models.Task) (*models.Task, error) {
	if err := r.check(*task); err != nil {
		return nil, err
	}

	id, err := services.NewID()
	if err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := r.store.now()
	stored := *task
	stored.ID = id
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.store.tasks[id] = taskRecord{task: stored, seq: r.store.nextSeq()}
	return &stored, nil
}

func (r *taskRepository) GetByID(_ context.Context, id string) (*models.Task, error) {
	id, err := services.ParseID(id)
	if err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.tasks[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	return &rec.task, nil
}

func (r *taskRepository) Update(_ context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	id, err := services.ParseID(id)
	if err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.tasks[id]
	if !ok {
		return nil, services.ErrNotFound
	}

	updated := rec.task
	patch.Apply(&updated)
	if err := r.check(updated); err != nil {
		return nil, err
	}
	updated.UpdatedAt = r.store.now()

	rec.task = updated
	r.store.tasks[id] = rec
	return &updated, nil
}

func (r *taskRepository) Delete(_ context.Context, id string) (*models.Task, error) {
	id, err := services.ParseID(id)
	if err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.tasks[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	delete(r.store.tasks, id)
	return &rec.task, nil
}
