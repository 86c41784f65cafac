package product

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

var (
	ErrNotFound = errors.New("product not found")
)

type Repository interface {
	List(ctx context.Context, f Filter) ([]Product, error)
	GetByID(ctx context.Context, id int) (Product, error)
	// GetByIDs returns the products that exist, keyed by id.
	GetByIDs(ctx context.Context, ids []int) (map[int]Product, error)
	Create(ctx context.Context, p Product) (Product, error)
	UpdateRating(ctx context.Context, id int, rating float64, count int) error
}

// InMemoryRepository is a simple in-memory implementation useful for tests and
// seeding local data.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Product
	nextID  int
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{
		storage: make([]Product, 0, len(seed)),
		nextID:  1,
	}

	maxID := 0
	for _, p := range seed {
		r.storage = append(r.storage, p)
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List(_ context.Context, f Filter) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]Product, 0, len(r.storage))
	for _, p := range r.storage {
		if f.CategoryID > 0 && (p.CategoryID == nil || *p.CategoryID != f.CategoryID) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id int) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) GetByIDs(_ context.Context, ids []int) (map[int]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	want := make(map[int]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make(map[int]Product, len(ids))
	for _, p := range r.storage {
		if want[p.ID] {
			out[p.ID] = p
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Create(_ context.Context, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	r.storage = append(r.storage, p)
	return p, nil
}

func (r *InMemoryRepository) UpdateRating(_ context.Context, id int, rating float64, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage[i].Rating = rating
			r.storage[i].ReviewCount = count
			return nil
		}
	}
	return ErrNotFound
}
