package order

import (
	"context"
	"database/sql"
	"encoding/json"
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
	orderColumns = `id, order_number, user_id, items, shipping_address, payment_method, payment_id, payment_status,
		items_price, discount, coupon_code, tax_price, shipping_price, total_price, status, created_at, updated_at`

	insertOrderQuery = `
		INSERT INTO orders (order_number, user_id, items, shipping_address, payment_method, payment_id, payment_status,
			items_price, discount, coupon_code, tax_price, shipping_price, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`
	consumeCartQuery = `DELETE FROM cart_items WHERE user_id = $1 AND id = ANY($2::int[])`
	listOrdersQuery  = `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	getOrderQuery    = `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 AND id = $2`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, ord Order, cartLineIDs []int) (Order, error) {
	itemsJSON, err := json.Marshal(ord.Items)
	if err != nil {
		return Order{}, err
	}
	addrJSON, err := json.Marshal(ord.ShippingAddress)
	if err != nil {
		return Order{}, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Order{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, insertOrderQuery,
		ord.OrderNumber, ord.UserID, itemsJSON, addrJSON, string(ord.PaymentMethod), ord.PaymentInfo.ID, ord.PaymentInfo.Status,
		ord.ItemsPrice, ord.Discount, ord.CouponCode, ord.TaxPrice, ord.ShippingPrice, ord.TotalPrice, string(ord.Status),
	).Scan(&ord.ID, &ord.CreatedAt, &ord.UpdatedAt)
	if err != nil {
		return Order{}, fmt.Errorf("insert order: %w", err)
	}

	if len(cartLineIDs) > 0 {
		ids := make([]int64, len(cartLineIDs))
		for i, id := range cartLineIDs {
			ids[i] = int64(id)
		}
		if _, err := tx.ExecContext(ctx, consumeCartQuery, ord.UserID, pq.Array(ids)); err != nil {
			return Order{}, fmt.Errorf("consume cart: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Order{}, fmt.Errorf("commit: %w", err)
	}
	return ord, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, listOrdersQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, ord)
	}
	return orders, rows.Err()
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id int) (Order, error) {
	ord, err := scanOrder(r.db.QueryRowContext(ctx, getOrderQuery, userID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, fmt.Errorf("get order: %w", err)
	}
	return ord, nil
}

func scanOrder(s rowScanner) (Order, error) {
	var (
		ord                 Order
		itemsJSON, addrJSON []byte
		method, status      string
	)
	if err := s.Scan(&ord.ID, &ord.OrderNumber, &ord.UserID, &itemsJSON, &addrJSON, &method,
		&ord.PaymentInfo.ID, &ord.PaymentInfo.Status, &ord.ItemsPrice, &ord.Discount, &ord.CouponCode,
		&ord.TaxPrice, &ord.ShippingPrice, &ord.TotalPrice, &status, &ord.CreatedAt, &ord.UpdatedAt); err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal(itemsJSON, &ord.Items); err != nil {
		return Order{}, fmt.Errorf("decode items: %w", err)
	}
	if err := json.Unmarshal(addrJSON, &ord.ShippingAddress); err != nil {
		return Order{}, fmt.Errorf("decode address: %w", err)
	}
	ord.PaymentMethod = PaymentMethod(method)
	ord.Status = Status(status)
	return ord, nil
}
