package wallet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wichananm65/mill-store-backend/internal/user"
)

const (
	addCoinsQuery    = `UPDATE users SET coins = coins + $2, updated_at = NOW() WHERE id = $1`
	insertEntryQuery = `INSERT INTO wallet_transactions (user_id, title, amount) VALUES ($1, $2, $3) RETURNING id, created_at`
	balanceQuery     = `SELECT coins FROM users WHERE id = $1`
	historyQuery     = `SELECT id, user_id, title, amount, created_at FROM wallet_transactions WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Credit(ctx context.Context, userID, amount int, title string) (Transaction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Transaction{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, addCoinsQuery, userID, amount)
	if err != nil {
		return Transaction{}, fmt.Errorf("add coins: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Transaction{}, user.ErrNotFound
	}

	entry := Transaction{UserID: userID, Title: title, Amount: amount}
	if err := tx.QueryRowContext(ctx, insertEntryQuery, userID, title, amount).Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return Transaction{}, fmt.Errorf("insert ledger entry: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Transaction{}, fmt.Errorf("commit: %w", err)
	}
	return entry, nil
}

func (r *PostgresRepository) Balance(ctx context.Context, userID int) (int, error) {
	var coins int
	err := r.db.QueryRowContext(ctx, balanceQuery, userID).Scan(&coins)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, user.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("balance: %w", err)
	}
	return coins, nil
}

func (r *PostgresRepository) History(ctx context.Context, userID int) ([]Transaction, error) {
	rows, err := r.db.QueryContext(ctx, historyQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("wallet history: %w", err)
	}
	defer rows.Close()

	out := make([]Transaction, 0)
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Amount, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
