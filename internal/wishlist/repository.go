package wishlist

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrAlreadyInWishlist = errors.New("product already in wishlist")
	ErrNotInWishlist     = errors.New("product not in wishlist")
)

// Repository stores the set of products a user saved, newest first.
type Repository interface {
	ProductIDs(ctx context.Context, userID int) ([]int, error)
	Add(ctx context.Context, userID, productID int) error
	Remove(ctx context.Context, userID, productID int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu    sync.RWMutex
	items map[int][]int // userID -> product ids, oldest first
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{items: make(map[int][]int)}
}

func (r *InMemoryRepository) ProductIDs(_ context.Context, userID int) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.items[userID]
	out := make([]int, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		out = append(out, ids[i])
	}
	return out, nil
}

func (r *InMemoryRepository) Add(_ context.Context, userID, productID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, pid := range r.items[userID] {
		if pid == productID {
			return ErrAlreadyInWishlist
		}
	}
	r.items[userID] = append(r.items[userID], productID)
	return nil
}

func (r *InMemoryRepository) Remove(_ context.Context, userID, productID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := r.items[userID]
	for i, pid := range ids {
		if pid == productID {
			r.items[userID] = append(ids[:i:i], ids[i+1:]...)
			return nil
		}
	}
	return ErrNotInWishlist
}
