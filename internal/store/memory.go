package store

import (
	"context"
	"sync"
	"time"

	"diamondadmin/internal/models"
)

// Wait blocks for d or until the context is cancelled, whichever comes
// first. It is the simulated network latency of the mock backend; with
// d <= 0 it only reports an already-cancelled context.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// MemoryProducts is the fixture-backed product store: a private, ordered
// in-memory collection seeded at construction. Every call first waits
// out the configured latency, honoring cancellation.
type MemoryProducts struct {
	mu      sync.Mutex
	latency time.Duration
	items   []models.Product
}

func NewMemoryProducts(latency time.Duration) *MemoryProducts {
	return &MemoryProducts{latency: latency, items: ProductFixtures()}
}

func (s *MemoryProducts) List(ctx context.Context) ([]models.Product, error) {
	if err := Wait(ctx, s.latency); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *MemoryProducts) Get(ctx context.Context, id string) (models.Product, error) {
	if err := Wait(ctx, s.latency); err != nil {
		return models.Product{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.items {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrNotFound
}

func (s *MemoryProducts) Create(ctx context.Context, p models.Product) (models.Product, error) {
	if err := Wait(ctx, s.latency); err != nil {
		return models.Product{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]models.Product{p}, s.items...)
	return p, nil
}

func (s *MemoryProducts) Update(ctx context.Context, p models.Product) (models.Product, error) {
	if err := Wait(ctx, s.latency); err != nil {
		return models.Product{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == p.ID {
			s.items[i] = p
			return p, nil
		}
	}
	return models.Product{}, ErrNotFound
}

func (s *MemoryProducts) Delete(ctx context.Context, id string) error {
	if err := Wait(ctx, s.latency); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	for _, p := range s.items {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.items = kept
	return nil
}

// MemoryCustomers mirrors MemoryProducts for customer accounts.
type MemoryCustomers struct {
	mu      sync.Mutex
	latency time.Duration
	items   []models.Customer
}

func NewMemoryCustomers(latency time.Duration) *MemoryCustomers {
	return &MemoryCustomers{latency: latency, items: CustomerFixtures()}
}

func (s *MemoryCustomers) List(ctx context.Context) ([]models.Customer, error) {
	if err := Wait(ctx, s.latency); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Customer, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *MemoryCustomers) Get(ctx context.Context, id string) (models.Customer, error) {
	if err := Wait(ctx, s.latency); err != nil {
		return models.Customer{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.items {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Customer{}, ErrNotFound
}

// Create prepends the account. The password hash is deliberately
// discarded: the record never carries credentials.
func (s *MemoryCustomers) Create(ctx context.Context, c models.Customer, _ string) (models.Customer, error) {
	if err := Wait(ctx, s.latency); err != nil {
		return models.Customer{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]models.Customer{c}, s.items...)
	return c, nil
}

func (s *MemoryCustomers) Update(ctx context.Context, c models.Customer) (models.Customer, error) {
	if err := Wait(ctx, s.latency); err != nil {
		return models.Customer{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == c.ID {
			s.items[i] = c
			return c, nil
		}
	}
	return models.Customer{}, ErrNotFound
}

func (s *MemoryCustomers) Delete(ctx context.Context, id string) error {
	if err := Wait(ctx, s.latency); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	for _, c := range s.items {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.items = kept
	return nil
}

func (s *MemoryCustomers) ResetPassword(ctx context.Context, id string, _ ResetMethod, _ string) (models.Customer, error) {
	if err := Wait(ctx, s.latency); err != nil {
		return models.Customer{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			today := models.Today()
			s.items[i].LastPasswordReset = &today
			return s.items[i], nil
		}
	}
	return models.Customer{}, ErrNotFound
}
