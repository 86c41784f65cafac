package review

import (
	"context"
	"database/sql"
	"fmt"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listReviewsQuery = `
		SELECT id, product_id, user_id, user_name, rating, comment, created_at
		FROM reviews WHERE product_id = $1
		ORDER BY created_at DESC, id DESC
	`
	insertReviewQuery = `
		INSERT INTO reviews (product_id, user_id, user_name, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	reviewStatsQuery = `SELECT COALESCE(AVG(rating), 0)::float8, COUNT(*) FROM reviews WHERE product_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByProduct(ctx context.Context, productID int) ([]Review, error) {
	rows, err := r.db.QueryContext(ctx, listReviewsQuery, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	out := make([]Review, 0)
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.UserName, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(ctx context.Context, rv Review) (Review, error) {
	err := r.db.QueryRowContext(ctx, insertReviewQuery, rv.ProductID, rv.UserID, rv.UserName, rv.Rating, rv.Comment).
		Scan(&rv.ID, &rv.CreatedAt)
	if err != nil {
		return Review{}, fmt.Errorf("insert review: %w", err)
	}
	return rv, nil
}

func (r *PostgresRepository) Stats(ctx context.Context, productID int) (Stats, error) {
	var s Stats
	if err := r.db.QueryRowContext(ctx, reviewStatsQuery, productID).Scan(&s.Mean, &s.Count); err != nil {
		return Stats{}, fmt.Errorf("review stats: %w", err)
	}
	return s, nil
}
