package order

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

var ErrNotFound = errors.New("order not found")

// Repository stores orders. Create also removes the ordered cart lines so the
// order and the cart never disagree.
type Repository interface {
	Create(ctx context.Context, ord Order, cartLineIDs []int) (Order, error)
	ListByUser(ctx context.Context, userID int) ([]Order, error)
	Get(ctx context.Context, userID, id int) (Order, error)
}

// CartCleaner removes ordered lines for the in-memory repository.
type CartCleaner interface {
	RemoveLines(ctx context.Context, userID int, ids []int) error
}

type InMemoryRepository struct {
	mu     sync.RWMutex
	orders []Order
	nextID int
	cart   CartCleaner
}

func NewInMemoryRepository(cart CartCleaner) *InMemoryRepository {
	return &InMemoryRepository{nextID: 1, cart: cart}
}

func (r *InMemoryRepository) Create(ctx context.Context, ord Order, cartLineIDs []int) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cart != nil {
		if err := r.cart.RemoveLines(ctx, ord.UserID, cartLineIDs); err != nil {
			return Order{}, err
		}
	}
	ord.ID = r.nextID
	r.nextID++
	now := time.Now().UTC()
	ord.CreatedAt, ord.UpdatedAt = now, now
	r.orders = append(r.orders, ord)
	return ord, nil
}

func (r *InMemoryRepository) ListByUser(_ context.Context, userID int) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, 0)
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *InMemoryRepository) Get(_ context.Context, userID, id int) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.ID == id && o.UserID == userID {
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}
