package product

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
	productColumns = `id, name, description, images, original_price, selling_price, rating, review_count, category_id, stock, created_at, updated_at`

	listProductsQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE ($1 = 0 OR category_id = $1)
		  AND ($2 = '' OR name ILIKE '%' || $2 || '%')
		ORDER BY id
	`
	getProductQuery      = `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	getProductsByIDQuery = `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1::int[])`
	insertProductQuery   = `
		INSERT INTO products (name, description, images, original_price, selling_price, category_id, stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + productColumns
	updateRatingQuery = `UPDATE products SET rating = $2, review_count = $3, updated_at = NOW() WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, listProductsQuery, f.CategoryID, f.Query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, getProductQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) GetByIDs(ctx context.Context, ids []int) (map[int]Product, error) {
	out := make(map[int]Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	ids64 := make([]int64, len(ids))
	for i, id := range ids {
		ids64[i] = int64(id)
	}
	rows, err := r.db.QueryContext(ctx, getProductsByIDQuery, pq.Array(ids64))
	if err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(ctx context.Context, p Product) (Product, error) {
	var category any
	if p.CategoryID != nil {
		category = *p.CategoryID
	}
	created, err := scanProduct(r.db.QueryRowContext(ctx, insertProductQuery,
		p.Name, p.Description, pq.Array(p.Images), p.OriginalPrice, p.SellingPrice, category, p.Stock))
	if err != nil {
		return Product{}, fmt.Errorf("insert product: %w", err)
	}
	return created, nil
}

func (r *PostgresRepository) UpdateRating(ctx context.Context, id int, rating float64, count int) error {
	res, err := r.db.ExecContext(ctx, updateRatingQuery, id, rating, count)
	if err != nil {
		return fmt.Errorf("update rating: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProduct(s rowScanner) (Product, error) {
	var (
		p        Product
		images   pq.StringArray
		category sql.NullInt64
	)
	if err := s.Scan(&p.ID, &p.Name, &p.Description, &images, &p.OriginalPrice, &p.SellingPrice,
		&p.Rating, &p.ReviewCount, &category, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return Product{}, err
	}
	p.Images = []string(images)
	if category.Valid {
		id := int(category.Int64)
		p.CategoryID = &id
	}
	return p, nil
}
