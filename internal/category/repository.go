package category

import (
	"context"
	"sort"
	"sync"
)

// Repository provides access to category rows.
type Repository interface {
	List(ctx context.Context, limit int) ([]Category, error)
}

type InMemoryRepository struct {
	mu    sync.RWMutex
	items []Category
}

func NewInMemoryRepository(seed []Category) *InMemoryRepository {
	items := make([]Category, len(seed))
	copy(items, seed)
	return &InMemoryRepository{items: items}
}

// List orders by display order descending, then id, like the SQL query.
func (r *InMemoryRepository) List(_ context.Context, limit int) ([]Category, error) {
	r.mu.RLock()
	out := make([]Category, len(r.items))
	copy(out, r.items)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order > out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
