package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied in order on every start; each statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		mobile TEXT NOT NULL UNIQUE,
		avatar TEXT,
		coins INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS addresses (
		id SERIAL PRIMARY KEY,
		user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		street TEXT NOT NULL,
		city TEXT NOT NULL,
		state TEXT NOT NULL,
		zip_code TEXT NOT NULL,
		country TEXT NOT NULL DEFAULT 'India',
		is_default BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS otp_codes (
		mobile TEXT PRIMARY KEY,
		purpose TEXT NOT NULL,
		code_hash TEXT NOT NULL,
		attempts INT NOT NULL DEFAULT 0,
		expires_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		image TEXT,
		ord INT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		images TEXT[] NOT NULL DEFAULT '{}',
		original_price NUMERIC(12,2) NOT NULL DEFAULT 0,
		selling_price NUMERIC(12,2) NOT NULL DEFAULT 0,
		rating NUMERIC(3,1) NOT NULL DEFAULT 0,
		review_count INT NOT NULL DEFAULT 0,
		category_id INT REFERENCES categories(id),
		stock INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS cart_items (
		id SERIAL PRIMARY KEY,
		user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		product_id INT NOT NULL REFERENCES products(id),
		quantity INT NOT NULL CHECK (quantity >= 1),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, product_id)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id SERIAL PRIMARY KEY,
		order_number TEXT NOT NULL UNIQUE,
		user_id INT NOT NULL REFERENCES users(id),
		items JSONB NOT NULL DEFAULT '[]',
		shipping_address JSONB NOT NULL DEFAULT '{}',
		payment_method TEXT NOT NULL,
		payment_id TEXT NOT NULL,
		payment_status TEXT NOT NULL,
		items_price NUMERIC(12,2) NOT NULL DEFAULT 0,
		discount NUMERIC(12,2) NOT NULL DEFAULT 0,
		coupon_code TEXT NOT NULL DEFAULT '',
		tax_price NUMERIC(12,2) NOT NULL DEFAULT 0,
		shipping_price NUMERIC(12,2) NOT NULL DEFAULT 0,
		total_price NUMERIC(12,2) NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id SERIAL PRIMARY KEY,
		product_id INT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		user_id INT NOT NULL REFERENCES users(id),
		user_name TEXT NOT NULL DEFAULT '',
		rating INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
		comment TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id SERIAL PRIMARY KEY,
		user_id INT NOT NULL REFERENCES users(id),
		name TEXT NOT NULL,
		mobile TEXT NOT NULL,
		service_type TEXT NOT NULL,
		date TIMESTAMPTZ NOT NULL,
		address JSONB NOT NULL DEFAULT '{}',
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS wishlist_items (
		user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		product_id INT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (user_id, product_id)
	)`,
	`CREATE TABLE IF NOT EXISTS wallet_transactions (
		id SERIAL PRIMARY KEY,
		user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		amount INT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS contact_messages (
		id SERIAL PRIMARY KEY,
		ticket_id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		mobile TEXT NOT NULL,
		message TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS coupons (
		code TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		value NUMERIC(12,2) NOT NULL,
		max_discount NUMERIC(12,2),
		min_order_value NUMERIC(12,2) NOT NULL DEFAULT 0,
		expires_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS banners (
		id SERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		subtitle TEXT NOT NULL DEFAULT '',
		image TEXT,
		link TEXT,
		ord INT NOT NULL DEFAULT 0
	)`,
}

// Migrate creates every table the service needs.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
