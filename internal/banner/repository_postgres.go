package banner

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresRepository implements Repository using Postgres.
type PostgresRepository struct {
	db *sql.DB
}

const listBannersQuery = `SELECT id, title, subtitle, image, link, ord FROM banners ORDER BY ord DESC, id LIMIT $1`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, limit int) ([]Banner, error) {
	rows, err := r.db.QueryContext(ctx, listBannersQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	defer rows.Close()

	out := make([]Banner, 0)
	for rows.Next() {
		var (
			b         Banner
			img, link sql.NullString
		)
		if err := rows.Scan(&b.ID, &b.Title, &b.Subtitle, &img, &link, &b.Order); err != nil {
			return nil, fmt.Errorf("scan banner: %w", err)
		}
		if img.Valid {
			b.Image = &img.String
		}
		if link.Valid {
			b.Link = &link.String
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
