package address

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	addressColumns = `id, user_id, street, city, state, zip_code, country, is_default, created_at, updated_at`

	listAddressesQuery = `
		SELECT ` + addressColumns + `
		FROM addresses
		WHERE user_id = $1
		ORDER BY is_default DESC, id
	`
	getAddressQuery = `
		SELECT ` + addressColumns + `
		FROM addresses
		WHERE user_id = $1 AND id = $2
	`
	getDefaultAddressQuery = `
		SELECT ` + addressColumns + `
		FROM addresses
		WHERE user_id = $1 AND is_default
	`
	countAddressesQuery = `SELECT COUNT(*) FROM addresses WHERE user_id = $1`
	clearDefaultQuery   = `UPDATE addresses SET is_default = FALSE WHERE user_id = $1 AND is_default`
	insertAddressQuery  = `
		INSERT INTO addresses (user_id, street, city, state, zip_code, country, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + addressColumns
	updateAddressQuery = `
		UPDATE addresses
		SET street = $3, city = $4, state = $5, zip_code = $6, country = $7,
			is_default = is_default OR $8, updated_at = NOW()
		WHERE user_id = $1 AND id = $2
		RETURNING ` + addressColumns
	deleteAddressQuery = `
		DELETE FROM addresses WHERE user_id = $1 AND id = $2
		RETURNING is_default
	`
	promoteOldestQuery = `
		UPDATE addresses SET is_default = TRUE
		WHERE id = (
			SELECT id FROM addresses WHERE user_id = $1
			ORDER BY created_at, id
			LIMIT 1
		)
	`
)

// NewPostgresRepository stores addresses in the addresses table; default flag
// changes run in a transaction so a user never ends up with two defaults.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int) ([]Address, error) {
	rows, err := r.db.QueryContext(ctx, listAddressesQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	out := make([]Address, 0)
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id int) (Address, error) {
	return r.one(ctx, getAddressQuery, userID, id)
}

func (r *PostgresRepository) GetDefault(ctx context.Context, userID int) (Address, error) {
	return r.one(ctx, getDefaultAddressQuery, userID)
}

func (r *PostgresRepository) Create(ctx context.Context, addr Address) (Address, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Address{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, countAddressesQuery, addr.UserID).Scan(&count); err != nil {
		return Address{}, fmt.Errorf("count addresses: %w", err)
	}
	if count == 0 {
		addr.IsDefault = true
	}
	if addr.IsDefault {
		if _, err := tx.ExecContext(ctx, clearDefaultQuery, addr.UserID); err != nil {
			return Address{}, fmt.Errorf("clear default: %w", err)
		}
	}

	created, err := scanAddress(tx.QueryRowContext(ctx, insertAddressQuery,
		addr.UserID, addr.Street, addr.City, addr.State, addr.ZipCode, addr.Country, addr.IsDefault))
	if err != nil {
		return Address{}, fmt.Errorf("insert address: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Address{}, fmt.Errorf("commit: %w", err)
	}
	return created, nil
}

func (r *PostgresRepository) Update(ctx context.Context, addr Address) (Address, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Address{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if addr.IsDefault {
		if _, err := tx.ExecContext(ctx, clearDefaultQuery, addr.UserID); err != nil {
			return Address{}, fmt.Errorf("clear default: %w", err)
		}
	}

	updated, err := scanAddress(tx.QueryRowContext(ctx, updateAddressQuery,
		addr.UserID, addr.ID, addr.Street, addr.City, addr.State, addr.ZipCode, addr.Country, addr.IsDefault))
	if errors.Is(err, sql.ErrNoRows) {
		return Address{}, ErrNotFound
	}
	if err != nil {
		return Address{}, fmt.Errorf("update address: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Address{}, fmt.Errorf("commit: %w", err)
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var wasDefault bool
	err = tx.QueryRowContext(ctx, deleteAddressQuery, userID, id).Scan(&wasDefault)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	if wasDefault {
		if _, err := tx.ExecContext(ctx, promoteOldestQuery, userID); err != nil {
			return fmt.Errorf("promote default: %w", err)
		}
	}
	return tx.Commit()
}

func (r *PostgresRepository) one(ctx context.Context, query string, args ...any) (Address, error) {
	a, err := scanAddress(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return Address{}, ErrNotFound
	}
	if err != nil {
		return Address{}, fmt.Errorf("get address: %w", err)
	}
	return a, nil
}

func scanAddress(s rowScanner) (Address, error) {
	var a Address
	err := s.Scan(&a.ID, &a.UserID, &a.Street, &a.City, &a.State, &a.ZipCode, &a.Country, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}
