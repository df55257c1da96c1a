package repo

import (
	"context"
	"fmt"
	"retail-orders/internal/domain"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore backs both repo interfaces without a database. Used by unit
// tests and the simulation binary; a single mutex gives it the per-entity
// atomic read-modify-write the orchestrator relies on.
type MemoryStore struct {
	mu       sync.Mutex
	products map[uuid.UUID]domain.Product
	orders   map[uuid.UUID]domain.Order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products: make(map[uuid.UUID]domain.Product),
		orders:   make(map[uuid.UUID]domain.Order),
	}
}

func (s *MemoryStore) Products() ProductRepo { return (*memoryProductRepo)(s) }
func (s *MemoryStore) Orders() OrderRepo     { return (*memoryOrderRepo)(s) }

type memoryProductRepo MemoryStore

func (r *memoryProductRepo) Create(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = *p
	return nil
}

func (r *memoryProductRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *memoryProductRepo) FindAll(_ context.Context) ([]domain.Product, error) {
	return r.filter(func(domain.Product) bool { return true }), nil
}

func (r *memoryProductRepo) FindByCategory(_ context.Context, category string) ([]domain.Product, error) {
	return r.filter(func(p domain.Product) bool { return p.Category == category }), nil
}

func (r *memoryProductRepo) SearchByName(_ context.Context, keyword string) ([]domain.Product, error) {
	keyword = strings.ToLower(keyword)
	return r.filter(func(p domain.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), keyword)
	}), nil
}

func (r *memoryProductRepo) filter(keep func(domain.Product) bool) []domain.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	var products []domain.Product
	for _, p := range r.products {
		if keep(p) {
			products = append(products, p)
		}
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.Before(products[j].CreatedAt)
	})
	return products
}

func (r *memoryProductRepo) Update(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.products[p.ID] = *p
	return nil
}

func (r *memoryProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *memoryProductRepo) AdjustStock(_ context.Context, id uuid.UUID, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return 0, domain.ErrProductNotFound
	}
	if p.Stock+delta < 0 {
		return 0, fmt.Errorf("%w: product %s has %d, requested %d", domain.ErrInsufficientStock, id, p.Stock, -delta)
	}
	p.Stock += delta
	p.UpdatedAt = time.Now()
	r.products[id] = p
	return p.Stock, nil
}

type memoryOrderRepo MemoryStore

func (r *memoryOrderRepo) Create(_ context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.orders {
		if existing.OrderNumber == o.OrderNumber {
			return fmt.Errorf("%w: %s", ErrDuplicateOrderNumber, o.OrderNumber)
		}
	}
	r.orders[o.ID] = *o
	return nil
}

func (r *memoryOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *memoryOrderRepo) FindByNumber(_ context.Context, orderNumber string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.OrderNumber == orderNumber {
			o := o
			return &o, nil
		}
	}
	return nil, nil
}

func (r *memoryOrderRepo) FindByCustomerEmail(_ context.Context, email string) ([]domain.Order, error) {
	return r.filter(func(o domain.Order) bool { return o.CustomerEmail == email }), nil
}

func (r *memoryOrderRepo) FindAll(_ context.Context) ([]domain.Order, error) {
	return r.filter(func(domain.Order) bool { return true }), nil
}

func (r *memoryOrderRepo) filter(keep func(domain.Order) bool) []domain.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	var orders []domain.Order
	for _, o := range r.orders {
		if keep(o) {
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})
	return orders
}

func (r *memoryOrderRepo) Update(_ context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[o.ID]; !ok {
		return domain.ErrOrderNotFound
	}
	r.orders[o.ID] = *o
	return nil
}
