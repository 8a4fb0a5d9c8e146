package memory

import (
	"context"
	"time"

	"github.com/adanyl0v/service-catalog/internal/models"
	"github.com/adanyl0v/service-catalog/internal/services"
)

type serviceRecord struct {
	service models.Service
	seq     uint64
}

type serviceRepository struct {
	store *Store
}

func (r *serviceRepository) check(service models.Service) error {
	category := string(service.Category)
	status := string(service.Status)
	violations := r.store.validator.Struct(models.ServiceInput{
		Name:        &service.Name,
		Category:    &category,
		Price:       &service.Price,
		Duration:    &service.Duration,
		Status:      &status,
		Description: &service.Description,
		Clients:     &service.Clients,
	})
	if len(violations) > 0 {
		return &services.ValidationError{Violations: violations}
	}
	return nil
}

func (r *serviceRepository) List(_ context.Context) ([]*models.Service, error) {
	return r.filter(func(*models.Service) bool { return true }), nil
}

func (r *serviceRepository) ListByCategory(_ context.Context, category string) ([]*models.Service, error) {
	if !models.Category(category).Valid() {
		return nil, services.ErrInvalidCategory
	}
	return r.filter(func(s *models.Service) bool {
		return s.Category == models.Category(category)
	}), nil
}

func (r *serviceRepository) filter(keep func(*models.Service) bool) []*models.Service {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	records := make([]serviceRecord, 0, len(r.store.services))
	for _, rec := range r.store.services {
		if keep(&rec.service) {
			records = append(records, rec)
		}
	}

	order := newestFirst(func(i int) (t time.Time, seq uint64) {
		return records[i].service.CreatedAt, records[i].seq
	}, len(records))

	out := make([]*models.Service, 0, len(records))
	for _, i := range order {
		svc := records[i].service
		out = append(out, &svc)
	}
	return out
}

func (r *serviceRepository) Create(_ context.Context, service *models.Service) (*models.Service, error) {
	if err := r.check(*service); err != nil {
		return nil, err
	}

	id, err := services.NewID()
	if err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := r.store.now()
	stored := *service
	stored.ID = id
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.store.services[id] = serviceRecord{service: stored, seq: r.store.nextSeq()}
	return &stored, nil
}

func (r *serviceRepository) GetByID(_ context.Context, id string) (*models.Service, error) {
	id, err := services.ParseID(id)
	if err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.services[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	return &rec.service, nil
}

func (r *serviceRepository) Update(_ context.Context, id string, patch models.ServicePatch) (*models.Service, error) {
	id, err := services.ParseID(id)
	if err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.services[id]
	if !ok {
		return nil, services.ErrNotFound
	}

	updated := rec.service
	patch.Apply(&updated)
	if err := r.check(updated); err != nil {
		return nil, err
	}
	updated.UpdatedAt = r.store.now()

	rec.service = updated
	r.store.services[id] = rec
	return &updated, nil
}

func (r *serviceRepository) Delete(_ context.Context, id string) (*models.Service, error) {
	id, err := services.ParseID(id)
	if err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.services[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	delete(r.store.services, id)
	return &rec.service, nil
}

func (r *serviceRepository) Count(_ context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return int64(len(r.store.services)), nil
}

func (r *serviceRepository) CountByStatus(_ context.Context, status models.ServiceStatus) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var n int64
	for _, rec := range r.store.services {
		if rec.service.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *serviceRepository) SumClients(_ context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var sum int64
	for _, rec := range r.store.services {
		sum += int64(rec.service.Clients)
	}
	return sum, nil
}

func (r *serviceRepository) DistinctCategories(_ context.Context) ([]models.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	seen := make(map[models.Category]struct{})
	categories := make([]models.Category, 0)
	for _, rec := range r.store.services {
		if _, ok := seen[rec.service.Category]; ok {
			continue
		}
		seen[rec.service.Category] = struct{}{}
		categories = append(categories, rec.service.Category)
	}
	return categories, nil
}

func (r *serviceRepository) PriceSummary(_ context.Context) (models.PriceSummary, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if len(r.store.services) == 0 {
		return models.PriceSummary{}, nil
	}

	var (
		summary models.PriceSummary
		total   float64
		first   = true
	)
	for _, rec := range r.store.services {
		price := rec.service.Price
		total += price
		if first || price < summary.Min {
			summary.Min = price
		}
		if first || price > summary.Max {
			summary.Max = price
		}
		first = false
	}
	summary.Average = total / float64(len(r.store.services))
	return summary, nil
}
