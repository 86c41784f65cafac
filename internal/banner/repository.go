package banner

import (
	"context"
	"sort"
	"sync"
)

// Repository provides access to banners, highest order first.
type Repository interface {
	List(ctx context.Context, limit int) ([]Banner, error)
}

type InMemoryRepository struct {
	mu      sync.RWMutex
	banners []Banner
}

func NewInMemoryRepository(seed []Banner) *InMemoryRepository {
	r := &InMemoryRepository{banners: append([]Banner(nil), seed...)}
	sort.SliceStable(r.banners, func(i, j int) bool {
		if r.banners[i].Order != r.banners[j].Order {
			return r.banners[i].Order > r.banners[j].Order
		}
		return r.banners[i].ID < r.banners[j].ID
	})
	return r
}

func (r *InMemoryRepository) List(_ context.Context, limit int) ([]Banner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := len(r.banners)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Banner, n)
	copy(out, r.banners[:n])
	return out, nil
}
