package review

import (
	"context"
	"sort"
	"sync"
	"time"
)

type Repository interface {
	ListByProduct(ctx context.Context, productID int) ([]Review, error)
	Create(ctx context.Context, r Review) (Review, error)
	Stats(ctx context.Context, productID int) (Stats, error)
}

type InMemoryRepository struct {
	mu      sync.RWMutex
	reviews []Review
	nextID  int
	now     func() time.Time
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1, now: time.Now}
}

func (r *InMemoryRepository) ListByProduct(_ context.Context, productID int) ([]Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Review, 0)
	for _, rv := range r.reviews {
		if rv.ProductID == productID {
			out = append(out, rv)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *InMemoryRepository) Create(_ context.Context, rv Review) (Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rv.ID = r.nextID
	r.nextID++
	rv.CreatedAt = r.now().UTC()
	r.reviews = append(r.reviews, rv)
	return rv, nil
}

func (r *InMemoryRepository) Stats(_ context.Context, productID int) (Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sum, n int
	for _, rv := range r.reviews {
		if rv.ProductID == productID {
			sum += rv.Rating
			n++
		}
	}
	if n == 0 {
		return Stats{}, nil
	}
	return Stats{Mean: float64(sum) / float64(n), Count: n}, nil
}
