package user

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrMobileExists = errors.New("mobile already registered")
)

type Repository interface {
	GetByID(ctx context.Context, id int) (User, error)
	GetByMobile(ctx context.Context, mobile string) (User, error)
	Create(ctx context.Context, user User) (User, error)
	Update(ctx context.Context, user User) (User, error)
	// AddCoins changes the balance by delta and returns the new balance.
	AddCoins(ctx context.Context, id, delta int) (int, error)
	Coins(ctx context.Context, id int) (int, error)
	Delete(ctx context.Context, id int) error
}

type InMemoryRepository struct {
	mu     sync.RWMutex
	users  []User
	nextID int
}

func NewInMemoryRepository(seed []User) *InMemoryRepository {
	repo := &InMemoryRepository{
		users:  make([]User, 0, len(seed)),
		nextID: 1,
	}

	maxID := 0
	for _, user := range seed {
		repo.users = append(repo.users, user)
		if user.ID > maxID {
			maxID = user.ID
		}
	}

	repo.nextID = maxID + 1
	return repo
}

func (r *InMemoryRepository) GetByID(_ context.Context, id int) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) GetByMobile(_ context.Context, mobile string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Mobile == mobile {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) Create(_ context.Context, user User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Mobile == user.Mobile {
			return User{}, ErrMobileExists
		}
	}

	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	user.Addresses = nil
	r.users = append(r.users, user)
	return user, nil
}

// Update stores name and avatar. Mobile and coins are never changed here.
func (r *InMemoryRepository) Update(_ context.Context, update User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, user := range r.users {
		if user.ID == update.ID {
			user.Name = update.Name
			user.Avatar = update.Avatar
			user.UpdatedAt = time.Now().UTC()
			r.users[i] = user
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, user := range r.users {
		if user.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) AddCoins(_ context.Context, id, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].ID == id {
			r.users[i].Coins += delta
			return r.users[i].Coins, nil
		}
	}
	return 0, ErrNotFound
}

func (r *InMemoryRepository) Coins(ctx context.Context, id int) (int, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return u.Coins, nil
}
