package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/service-catalog/internal/models"
	"github.com/adanyl0v/service-catalog/internal/services"
)

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock() *stepClock {
	return &stepClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func ptr[T any](v T) *T {
	return &v
}

func newService(name string, category models.Category, price float64) *models.Service {
	svc := models.ServiceInput{
		Name:        ptr(name),
		Category:    ptr(string(category)),
		Price:       ptr(price),
		Duration:    ptr("1 month"),
		Description: ptr("A service"),
	}.Service()
	return &svc
}

func TestServiceRepository_CreateThenGet(t *testing.T) {
	ctx := context.Background()
	repo := New().Services()

	created, err := repo.Create(ctx, newService("Seo audit", models.CategoryDigital, 100))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, models.StatusNew, got.Status)
	assert.Zero(t, got.Clients)
}

func TestServiceRepository_CreateRejectsSchemaViolations(t *testing.T) {
	repo := New().Services()

	svc := newService("", models.CategoryDigital, -1)
	_, err := repo.Create(context.Background(), svc)

	var validationErr *services.ValidationError
	require.ErrorAs(t, err, &validationErr)

	fields := make([]string, 0, len(validationErr.Violations))
	for _, v := range validationErr.Violations {
		fields = append(fields, v.Field)
	}
	assert.ElementsMatch(t, []string{"name", "price"}, fields)
}

func TestServiceRepository_EmptyUpdateOnlyTouchesUpdatedAt(t *testing.T) {
	ctx := context.Background()
	clock := newStepClock()
	repo := New(WithClock(clock.Now)).Services()

	created, err := repo.Create(ctx, newService("Branding", models.CategoryDesign, 250))
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, models.ServicePatch{})
	require.NoError(t, err)

	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	expected := *created
	expected.UpdatedAt = updated.UpdatedAt
	assert.Equal(t, &expected, updated)
}

func TestServiceRepository_UpdateAppliesZeroValues(t *testing.T) {
	ctx := context.Background()
	repo := New().Services()

	svc := newService("Ads", models.CategorySocial, 80)
	svc.Clients = 12
	created, err := repo.Create(ctx, svc)
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, models.ServicePatch{
		Clients: ptr(0),
		Price:   ptr(0.0),
		Name:    ptr("paid ads"),
	})
	require.NoError(t, err)
	assert.Zero(t, updated.Clients)
	assert.Zero(t, updated.Price)
	assert.Equal(t, "Paid ads", updated.Name)
	assert.Equal(t, models.CategorySocial, updated.Category)
}

func TestServiceRepository_UpdateRejectsSchemaViolations(t *testing.T) {
	ctx := context.Background()
	repo := New().Services()

	created, err := repo.Create(ctx, newService("Ads", models.CategorySocial, 80))
	require.NoError(t, err)

	_, err = repo.Update(ctx, created.ID, models.ServicePatch{Duration: ptr("   ")})
	var validationErr *services.ValidationError
	require.ErrorAs(t, err, &validationErr)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestServiceRepository_DeleteThenGet(t *testing.T) {
	ctx := context.Background()
	repo := New().Services()

	created, err := repo.Create(ctx, newService("Ads", models.CategorySocial, 80))
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)
	assert.Equal(t, "Ads", deleted.Name)

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = repo.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestServiceRepository_InvalidIdentifier(t *testing.T) {
	ctx := context.Background()
	repo := New().Services()

	_, err := repo.GetByID(ctx, "not-an-id")
	assert.ErrorIs(t, err, services.ErrInvalidID)

	_, err = repo.Update(ctx, "not-an-id", models.ServicePatch{})
	assert.ErrorIs(t, err, services.ErrInvalidID)

	_, err = repo.Delete(ctx, "not-an-id")
	assert.ErrorIs(t, err, services.ErrInvalidID)
}

func TestServiceRepository_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := New(WithClock(newStepClock().Now)).Services()

	for _, name := range []string{"First", "Second", "Third"} {
		_, err := repo.Create(ctx, newService(name, models.CategoryDigital, 10))
		require.NoError(t, err)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Third", list[0].Name)
	assert.Equal(t, "Second", list[1].Name)
	assert.Equal(t, "First", list[2].Name)
}

func TestServiceRepository_ListSameTimestampUsesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	repo := New(WithClock(func() time.Time { return fixed })).Services()

	for _, name := range []string{"First", "Second"} {
		_, err := repo.Create(ctx, newService(name, models.CategoryDigital, 10))
		require.NoError(t, err)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Second", list[0].Name)
}

func TestServiceRepository_ListByCategory(t *testing.T) {
	ctx := context.Background()
	repo := New(WithClock(newStepClock().Now)).Services()

	_, err := repo.Create(ctx, newService("Web", models.CategoryDevelopment, 500))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newService("Posts", models.CategorySocial, 50))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newService("App", models.CategoryDevelopment, 900))
	require.NoError(t, err)

	list, err := repo.ListByCategory(ctx, "Desarrollo")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "App", list[0].Name)
	assert.Equal(t, "Web", list[1].Name)

	empty, err := repo.ListByCategory(ctx, "Análisis")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = repo.ListByCategory(ctx, "Marketing")
	assert.ErrorIs(t, err, services.ErrInvalidCategory)
}

func TestServiceRepository_ReturnedRecordsAreCopies(t *testing.T) {
	ctx := context.Background()
	repo := New().Services()

	created, err := repo.Create(ctx, newService("Ads", models.CategorySocial, 80))
	require.NoError(t, err)
	created.Name = "Changed"

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ads", got.Name)
}

func TestStatsService_OverMemoryStore(t *testing.T) {
	ctx := context.Background()
	repo := New().Services()
	stats := services.NewStatsService(zerolog.Nop(), repo, nil)

	empty, err := stats.Snapshot(ctx)
	require.NoError(t, err)
	assert.Zero(t, empty.Overview.TotalServices)
	assert.Zero(t, empty.Clients.TotalClients)
	assert.Empty(t, empty.Categories.CategoryList)
	assert.Equal(t, models.PricingStats{}, empty.Pricing)

	fixtures := []struct {
		name     string
		category models.Category
		price    float64
		status   models.ServiceStatus
		clients  int
	}{
		{"Web", models.CategoryDevelopment, 100, models.StatusActive, 4},
		{"Posts", models.CategorySocial, 50, models.StatusActive, 10},
		{"Logo", models.CategoryDesign, 75, models.StatusPaused, 0},
		{"Audit", models.CategoryDevelopment, 25, models.StatusNew, 1},
	}
	for _, f := range fixtures {
		svc := newService(f.name, f.category, f.price)
		svc.Status = f.status
		svc.Clients = f.clients
		_, err := repo.Create(ctx, svc)
		require.NoError(t, err)
	}

	snapshot, err := stats.Snapshot(ctx)
	require.NoError(t, err)

	overview := snapshot.Overview
	assert.Equal(t, int64(4), overview.TotalServices)
	assert.Equal(t, overview.TotalServices,
		overview.ActiveServices+overview.NewServices+overview.PausedServices+overview.InactiveServices)
	assert.Equal(t, int64(2), overview.ActiveServices)
	assert.Equal(t, int64(15), snapshot.Clients.TotalClients)
	assert.Equal(t, 3, snapshot.Categories.TotalCategories)
	assert.Equal(t, []models.Category{
		models.CategoryDevelopment,
		models.CategoryDesign,
		models.CategorySocial,
	}, snapshot.Categories.CategoryList)
	assert.Equal(t, models.PricingStats{AveragePrice: 63, MinPrice: 25, MaxPrice: 100}, snapshot.Pricing)
}

func TestTaskRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := New(WithClock(newStepClock().Now)).Tasks()

	created, err := repo.Create(ctx, &models.Task{Title: "Call client"})
	require.NoError(t, err)
	assert.False(t, created.Completed)

	updated, err := repo.Update(ctx, created.ID, models.TaskPatch{Completed: ptr(true)})
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.Equal(t, "Call client", updated.Title)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	_, err = repo.Update(ctx, created.ID, models.TaskPatch{Title: ptr(" ")})
	var validationErr *services.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	deleted, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Call client", deleted.Title)

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = repo.GetByID(ctx, "not-an-id")
	assert.ErrorIs(t, err, services.ErrInvalidID)
}
