package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	itemColumns = `id, user_id, product_id, quantity, created_at, updated_at`

	listItemsQuery  = `SELECT ` + itemColumns + ` FROM cart_items WHERE user_id = $1 ORDER BY id`
	upsertItemQuery = `
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = NOW()
		RETURNING ` + itemColumns
	setQuantityQuery = `
		UPDATE cart_items SET quantity = $3, updated_at = NOW()
		WHERE user_id = $1 AND id = $2
		RETURNING ` + itemColumns
	removeItemQuery  = `DELETE FROM cart_items WHERE user_id = $1 AND id = $2`
	removeItemsQuery = `DELETE FROM cart_items WHERE user_id = $1 AND id = ANY($2::int[])`
	clearCartQuery   = `DELETE FROM cart_items WHERE user_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, userID int) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, listItemsQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	defer rows.Close()

	out := make([]Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Add(ctx context.Context, userID, productID, qty int) (Item, error) {
	it, err := scanItem(r.db.QueryRowContext(ctx, upsertItemQuery, userID, productID, qty))
	if err != nil {
		return Item{}, fmt.Errorf("add cart item: %w", err)
	}
	return it, nil
}

func (r *PostgresRepository) SetQuantity(ctx context.Context, userID, id, qty int) (Item, error) {
	it, err := scanItem(r.db.QueryRowContext(ctx, setQuantityQuery, userID, id, qty))
	if errors.Is(err, sql.ErrNoRows) {
		return Item{}, ErrNotFound
	}
	if err != nil {
		return Item{}, fmt.Errorf("set cart quantity: %w", err)
	}
	return it, nil
}

func (r *PostgresRepository) Remove(ctx context.Context, userID, id int) error {
	res, err := r.db.ExecContext(ctx, removeItemQuery, userID, id)
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) RemoveMany(ctx context.Context, userID int, ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	ids64 := make([]int64, len(ids))
	for i, id := range ids {
		ids64[i] = int64(id)
	}
	if _, err := r.db.ExecContext(ctx, removeItemsQuery, userID, pq.Array(ids64)); err != nil {
		return fmt.Errorf("remove cart items: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Clear(ctx context.Context, userID int) error {
	if _, err := r.db.ExecContext(ctx, clearCartQuery, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func scanItem(s rowScanner) (Item, error) {
	var it Item
	err := s.Scan(&it.ID, &it.UserID, &it.ProductID, &it.Quantity, &it.CreatedAt, &it.UpdatedAt)
	return it, err
}
