package address

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

var (
	ErrNotFound   = errors.New("address not found")
	ErrIncomplete = errors.New("street, city, state and zipCode are required")
)

// Repository persists addresses. Implementations keep exactly one default
// address per user that has any: the first address becomes default, marking
// one as default clears the others, and deleting the default promotes the
// oldest remaining one.
type Repository interface {
	ListByUser(ctx context.Context, userID int) ([]Address, error)
	Get(ctx context.Context, userID, id int) (Address, error)
	GetDefault(ctx context.Context, userID int) (Address, error)
	Create(ctx context.Context, addr Address) (Address, error)
	Update(ctx context.Context, addr Address) (Address, error)
	Delete(ctx context.Context, userID, id int) error
}

// InMemoryRepository for tests and database-less runs.
type InMemoryRepository struct {
	mu     sync.RWMutex
	data   map[int][]Address // keyed by userID
	nextID int
	now    func() time.Time
}

func NewInMemoryRepository(seed []Address) *InMemoryRepository {
	repo := &InMemoryRepository{data: make(map[int][]Address), nextID: 1, now: time.Now}
	for _, a := range seed {
		repo.data[a.UserID] = append(repo.data[a.UserID], a)
		if a.ID >= repo.nextID {
			repo.nextID = a.ID + 1
		}
	}
	return repo
}

func (r *InMemoryRepository) ListByUser(_ context.Context, userID int) ([]Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Address, len(r.data[userID]))
	copy(out, r.data[userID])
	sortAddresses(out)
	return out, nil
}

func (r *InMemoryRepository) Get(_ context.Context, userID, id int) (Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.data[userID] {
		if a.ID == id {
			return a, nil
		}
	}
	return Address{}, ErrNotFound
}

func (r *InMemoryRepository) GetDefault(_ context.Context, userID int) (Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.data[userID] {
		if a.IsDefault {
			return a, nil
		}
	}
	return Address{}, ErrNotFound
}

func (r *InMemoryRepository) Create(_ context.Context, addr Address) (Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := r.data[addr.UserID]
	if len(existing) == 0 {
		addr.IsDefault = true
	}
	if addr.IsDefault {
		r.clearDefault(addr.UserID)
	}

	addr.ID = r.nextID
	r.nextID++
	addr.CreatedAt = r.now().UTC()
	addr.UpdatedAt = addr.CreatedAt
	r.data[addr.UserID] = append(r.data[addr.UserID], addr)
	return addr, nil
}

func (r *InMemoryRepository) Update(_ context.Context, addr Address) (Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.data[addr.UserID]
	for i, a := range list {
		if a.ID != addr.ID {
			continue
		}
		// the only way to drop the default flag is to give it to another address
		if a.IsDefault {
			addr.IsDefault = true
		}
		if addr.IsDefault {
			r.clearDefault(addr.UserID)
		}
		addr.CreatedAt = a.CreatedAt
		addr.UpdatedAt = r.now().UTC()
		list[i] = addr
		return addr, nil
	}
	return Address{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(_ context.Context, userID, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.data[userID]
	for i, a := range list {
		if a.ID != id {
			continue
		}
		list = append(list[:i], list[i+1:]...)
		if a.IsDefault && len(list) > 0 {
			oldest := 0
			for j := range list {
				if list[j].CreatedAt.Before(list[oldest].CreatedAt) ||
					(list[j].CreatedAt.Equal(list[oldest].CreatedAt) && list[j].ID < list[oldest].ID) {
					oldest = j
				}
			}
			list[oldest].IsDefault = true
		}
		r.data[userID] = list
		return nil
	}
	return ErrNotFound
}

func (r *InMemoryRepository) clearDefault(userID int) {
	for i := range r.data[userID] {
		r.data[userID][i].IsDefault = false
	}
}

// sortAddresses puts the default address first, then oldest first.
func sortAddresses(list []Address) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].IsDefault != list[j].IsDefault {
			return list[i].IsDefault
		}
		return list[i].ID < list[j].ID
	})
}
