package otp

import (
	"context"
	"errors"
	"sync"
)

var ErrNotFound = errors.New("no pending otp")

// Store keeps at most one pending code per mobile; Save replaces any previous
// code for the same number.
type Store interface {
	Save(ctx context.Context, code Code) error
	Get(ctx context.Context, mobile string) (Code, error)
	// ReserveAttempt counts a guess before it is checked and returns the code
	// as it stands after the increment.
	ReserveAttempt(ctx context.Context, mobile string) (Code, error)
	// Consume removes the code only if it is still the one with the given
	// hash. It returns ErrNotFound when another request got there first.
	Consume(ctx context.Context, mobile, hash string) error
	Delete(ctx context.Context, mobile string) error
}

type InMemoryStore struct {
	mu    sync.Mutex
	codes map[string]Code
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{codes: make(map[string]Code)}
}

func (s *InMemoryStore) Save(_ context.Context, code Code) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[code.Mobile] = code
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, mobile string) (Code, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.codes[mobile]
	if !ok {
		return Code{}, ErrNotFound
	}
	return code, nil
}

func (s *InMemoryStore) ReserveAttempt(_ context.Context, mobile string) (Code, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.codes[mobile]
	if !ok {
		return Code{}, ErrNotFound
	}
	code.Attempts++
	s.codes[mobile] = code
	return code, nil
}

func (s *InMemoryStore) Consume(_ context.Context, mobile, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.codes[mobile]
	if !ok || code.Hash != hash {
		return ErrNotFound
	}
	delete(s.codes, mobile)
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, mobile string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, mobile)
	return nil
}
