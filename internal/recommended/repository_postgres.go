package recommended

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresRepository implements Repository using Postgres.
type PostgresRepository struct {
	db *sql.DB
}

const rankedIDsQuery = `
	SELECT id FROM products
	ORDER BY rating DESC, review_count DESC,
		CASE WHEN original_price > 0 THEN (original_price - selling_price) / original_price ELSE 0 END DESC,
		id
	LIMIT $1 OFFSET $2
`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) RankedIDs(ctx context.Context, limit, offset int) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, rankedIDsQuery, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("rank products: %w", err)
	}
	defer rows.Close()

	ids := make([]int, 0, limit)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan product id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
