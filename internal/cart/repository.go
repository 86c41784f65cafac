package cart

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

var (
	ErrNotFound        = errors.New("cart item not found")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// Repository provides access to cart rows. Adding a product that is already in
// the cart increments its row instead of creating a second one.
type Repository interface {
	List(ctx context.Context, userID int) ([]Item, error)
	Add(ctx context.Context, userID, productID, qty int) (Item, error)
	SetQuantity(ctx context.Context, userID, id, qty int) (Item, error)
	Remove(ctx context.Context, userID, id int) error
	RemoveMany(ctx context.Context, userID int, ids []int) error
	Clear(ctx context.Context, userID int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu     sync.RWMutex
	items  map[int][]Item // keyed by userID
	nextID int
}

func NewInMemoryRepository(seed []Item) *InMemoryRepository {
	r := &InMemoryRepository{items: make(map[int][]Item), nextID: 1}
	for _, it := range seed {
		r.items[it.UserID] = append(r.items[it.UserID], it)
		if it.ID >= r.nextID {
			r.nextID = it.ID + 1
		}
	}
	return r
}

func (r *InMemoryRepository) List(_ context.Context, userID int) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Item, len(r.items[userID]))
	copy(out, r.items[userID])
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *InMemoryRepository) Add(_ context.Context, userID, productID, qty int) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	list := r.items[userID]
	for i := range list {
		if list[i].ProductID == productID {
			list[i].Quantity += qty
			list[i].UpdatedAt = now
			return list[i], nil
		}
	}

	it := Item{ID: r.nextID, UserID: userID, ProductID: productID, Quantity: qty, CreatedAt: now, UpdatedAt: now}
	r.nextID++
	r.items[userID] = append(list, it)
	return it, nil
}

func (r *InMemoryRepository) SetQuantity(_ context.Context, userID, id, qty int) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.items[userID]
	for i := range list {
		if list[i].ID == id {
			list[i].Quantity = qty
			list[i].UpdatedAt = time.Now().UTC()
			return list[i], nil
		}
	}
	return Item{}, ErrNotFound
}

func (r *InMemoryRepository) Remove(_ context.Context, userID, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.items[userID]
	for i := range list {
		if list[i].ID == id {
			r.items[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) RemoveMany(_ context.Context, userID int, ids []int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	drop := make(map[int]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := r.items[userID][:0]
	for _, it := range r.items[userID] {
		if !drop[it.ID] {
			kept = append(kept, it)
		}
	}
	r.items[userID] = kept
	return nil
}

// Clear empties a user's cart.
func (r *InMemoryRepository) Clear(_ context.Context, userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, userID)
	return nil
}
