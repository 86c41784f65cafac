package category

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresRepository implements Repository using Postgres.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns category rows ordered by `ord` then id.
func (r *PostgresRepository) List(ctx context.Context, limit int) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, image, ord FROM categories ORDER BY ord DESC, id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	out := make([]Category, 0)
	for rows.Next() {
		var (
			item Category
			img  sql.NullString
		)
		if err := rows.Scan(&item.ID, &item.Name, &img, &item.Order); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		if img.Valid {
			item.Image = &img.String
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
