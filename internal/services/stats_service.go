package services

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/adanyl0v/service-catalog/internal/models"
)

// StatsObserver is notified once per snapshot computation.
type StatsObserver interface {
	ObserveSnapshot(duration time.Duration, err error)
}

type statsServiceImpl struct {
	logger   zerolog.Logger
	services ServiceRepository
	observer StatsObserver
	now      func() time.Time
}

// NewStatsService returns a StatsService reading from the given
// repository. The observer may be nil.
func NewStatsService(
	logger zerolog.Logger,
	serviceRepository ServiceRepository,
	observer StatsObserver,
) StatsService {
	return &statsServiceImpl{
		logger:   logger,
		services: serviceRepository,
		observer: observer,
		now:      time.Now,
	}
}

func (s *statsServiceImpl) Snapshot(ctx context.Context) (*models.Snapshot, error) {
	start := time.Now()
	snapshot, err := s.snapshot(ctx)
	if s.observer != nil {
		s.observer.ObserveSnapshot(time.Since(start), err)
	}
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to compute stats snapshot")
		return nil, err
	}

	s.logger.Debug().
		Int64("total_services", snapshot.Overview.TotalServices).
		Dur("took", time.Since(start)).
		Msg("computed stats snapshot")
	return snapshot, nil
}

func (s *statsServiceImpl) snapshot(ctx context.Context) (*models.Snapshot, error) {
	var (
		snapshot   models.Snapshot
		categories []models.Category
		prices     models.PriceSummary
	)

	// Every reduction writes to its own destination, so the
	// goroutines share nothing until Wait returns.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.services.Count(gctx)
		if err != nil {
			return fmt.Errorf("failed to count services: %w", err)
		}
		snapshot.Overview.TotalServices = n
		return nil
	})

	byStatus := []struct {
		status models.ServiceStatus
		dst    *int64
	}{
		{models.StatusActive, &snapshot.Overview.ActiveServices},
		{models.StatusNew, &snapshot.Overview.NewServices},
		{models.StatusPaused, &snapshot.Overview.PausedServices},
		{models.StatusInactive, &snapshot.Overview.InactiveServices},
	}
	for _, st := range byStatus {
		g.Go(func() error {
			n, err := s.services.CountByStatus(gctx, st.status)
			if err != nil {
				return fmt.Errorf("failed to count %s services: %w", st.status, err)
			}
			*st.dst = n
			return nil
		})
	}

	g.Go(func() error {
		n, err := s.services.SumClients(gctx)
		if err != nil {
			return fmt.Errorf("failed to sum clients: %w", err)
		}
		snapshot.Clients.TotalClients = n
		return nil
	})

	g.Go(func() error {
		var err error
		categories, err = s.services.DistinctCategories(gctx)
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		prices, err = s.services.PriceSummary(gctx)
		if err != nil {
			return fmt.Errorf("failed to summarize prices: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if categories == nil {
		categories = []models.Category{}
	}
	slices.Sort(categories)

	snapshot.Categories = models.CategoryStats{
		TotalCategories: len(categories),
		CategoryList:    categories,
	}
	snapshot.Pricing = models.PricingStats{
		AveragePrice: math.Round(prices.Average),
		MinPrice:     prices.Min,
		MaxPrice:     prices.Max,
	}
	snapshot.LastUpdated = s.now()
	return &snapshot, nil
}
