package booking

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	ErrNotFound   = errors.New("booking not found")
	ErrNotPending = errors.New("only pending bookings can be cancelled")
)

type Repository interface {
	Create(ctx context.Context, b Booking) (Booking, error)
	ListByUser(ctx context.Context, userID int) ([]Booking, error)
	// Cancel moves a pending booking to cancelled. Bookings in any other
	// state are left untouched and ErrNotPending is returned.
	Cancel(ctx context.Context, userID, id int) (Booking, error)
}

type InMemoryRepository struct {
	mu       sync.RWMutex
	bookings []Booking
	nextID   int
	now      func() time.Time
}

func NewInMemoryRepository(seed []Booking) *InMemoryRepository {
	r := &InMemoryRepository{nextID: 1, now: time.Now}
	for _, b := range seed {
		r.bookings = append(r.bookings, b)
		if b.ID >= r.nextID {
			r.nextID = b.ID + 1
		}
	}
	return r
}

func (r *InMemoryRepository) Create(_ context.Context, b Booking) (Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b.ID = r.nextID
	r.nextID++
	now := r.now().UTC()
	b.CreatedAt, b.UpdatedAt = now, now
	r.bookings = append(r.bookings, b)
	return b, nil
}

func (r *InMemoryRepository) ListByUser(_ context.Context, userID int) ([]Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Booking, 0)
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sortBookings(out)
	return out, nil
}

func (r *InMemoryRepository) Cancel(_ context.Context, userID, id int) (Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.bookings {
		b := &r.bookings[i]
		if b.ID != id || b.UserID != userID {
			continue
		}
		if b.Status != StatusPending {
			return Booking{}, ErrNotPending
		}
		b.Status = StatusCancelled
		b.UpdatedAt = r.now().UTC()
		return *b, nil
	}
	return Booking{}, ErrNotFound
}
