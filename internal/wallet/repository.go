package wallet

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

var ErrInvalidAmount = errors.New("amount must not be zero")

// Repository keeps the coin balance and the ledger in step: every Credit
// changes both or neither.
type Repository interface {
	Credit(ctx context.Context, userID, amount int, title string) (Transaction, error)
	Balance(ctx context.Context, userID int) (int, error)
	History(ctx context.Context, userID int) ([]Transaction, error)
}

// Accounts is where the in-memory ledger keeps balances; the user repository
// satisfies it.
type Accounts interface {
	AddCoins(ctx context.Context, id, delta int) (int, error)
	Coins(ctx context.Context, id int) (int, error)
}

type InMemoryRepository struct {
	mu       sync.Mutex
	accounts Accounts
	entries  []Transaction
	nextID   int
}

func NewInMemoryRepository(accounts Accounts) *InMemoryRepository {
	return &InMemoryRepository{accounts: accounts, nextID: 1}
}

func (r *InMemoryRepository) Credit(ctx context.Context, userID, amount int, title string) (Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.accounts.AddCoins(ctx, userID, amount); err != nil {
		return Transaction{}, err
	}
	tx := Transaction{ID: r.nextID, UserID: userID, Title: title, Amount: amount, CreatedAt: time.Now().UTC()}
	r.nextID++
	r.entries = append(r.entries, tx)
	return tx, nil
}

func (r *InMemoryRepository) Balance(ctx context.Context, userID int) (int, error) {
	return r.accounts.Coins(ctx, userID)
}

func (r *InMemoryRepository) History(_ context.Context, userID int) ([]Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Transaction, 0)
	for _, tx := range r.entries {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}
