// Package memory provides in-process implementations of the repositories.
// It enforces the same schema rules as the postgres tables and is meant
// for local runs and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/adanyl0v/service-catalog/internal/services"
	"github.com/adanyl0v/service-catalog/internal/validation"
)

type Option func(*Store)

// WithClock replaces the clock used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

type Store struct {
	validator *validation.Validator
	now       func() time.Time

	mu       sync.RWMutex
	seq      uint64
	services map[string]serviceRecord
	tasks    map[string]taskRecord
}

func New(opts ...Option) *Store {
	s := &Store{
		validator: validation.New(),
		now:       func() time.Time { return time.Now().UTC() },
		services:  make(map[string]serviceRecord),
		tasks:     make(map[string]taskRecord),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Services() services.ServiceRepository {
	return &serviceRepository{store: s}
}

func (s *Store) Tasks() services.TaskRepository {
	return &taskRepository{store: s}
}

// Ping always succeeds; it lets the store back the health check.
func (s *Store) Ping(context.Context) error {
	return nil
}

// nextSeq must be called with mu held for writing.
func (s *Store) nextSeq() uint64 {
	s.seq++
	return s.seq
}

// newestFirst orders by creation time, then by insertion order,
// most recent first.
func newestFirst(createdAt func(i int) (time.Time, uint64), n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ta, sa := createdAt(idx[a])
		tb, sb := createdAt(idx[b])
		if !ta.Equal(tb) {
			return ta.After(tb)
		}
		return sa > sb
	})
	return idx
}
