package wishlist

import (
	"context"
	"database/sql"
	"fmt"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listWishlistQuery = `
		SELECT product_id FROM wishlist_items
		WHERE user_id = $1
		ORDER BY created_at DESC, product_id DESC
	`
	addWishlistQuery = `
		INSERT INTO wishlist_items (user_id, product_id) VALUES ($1, $2)
		ON CONFLICT (user_id, product_id) DO NOTHING
	`
	removeWishlistQuery = `DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ProductIDs(ctx context.Context, userID int) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, listWishlistQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan wishlist: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PostgresRepository) Add(ctx context.Context, userID, productID int) error {
	res, err := r.db.ExecContext(ctx, addWishlistQuery, userID, productID)
	if err != nil {
		return fmt.Errorf("add wishlist: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrAlreadyInWishlist
	}
	return nil
}

func (r *PostgresRepository) Remove(ctx context.Context, userID, productID int) error {
	res, err := r.db.ExecContext(ctx, removeWishlistQuery, userID, productID)
	if err != nil {
		return fmt.Errorf("remove wishlist: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotInWishlist
	}
	return nil
}
