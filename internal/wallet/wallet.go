package wallet

import "time"

// Transaction is one coin ledger entry; Amount is negative for spends.
type Transaction struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	Title     string    `json:"title"`
	Amount    int       `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}

type Summary struct {
	Coins        int           `json:"coins"`
	Transactions []Transaction `json:"transactions"`
}
