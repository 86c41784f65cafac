package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	userColumns = `id, name, mobile, avatar, coins, created_at, updated_at`

	getUserByIDQuery     = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	getUserByMobileQuery = `SELECT ` + userColumns + ` FROM users WHERE mobile = $1`
	insertUserQuery      = `
		INSERT INTO users (name, mobile, avatar)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns
	updateUserQuery = `
		UPDATE users
		SET name = $2, avatar = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns
	addCoinsQuery   = `UPDATE users SET coins = coins + $2 WHERE id = $1 RETURNING coins`
	coinsQuery      = `SELECT coins FROM users WHERE id = $1`
	deleteUserQuery = `DELETE FROM users WHERE id = $1`
)

// uniqueViolation is the Postgres SQLSTATE for a duplicate key.
const uniqueViolation = "23505"

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (User, error) {
	return r.one(ctx, getUserByIDQuery, id)
}

func (r *PostgresRepository) GetByMobile(ctx context.Context, mobile string) (User, error) {
	return r.one(ctx, getUserByMobileQuery, mobile)
}

func (r *PostgresRepository) Create(ctx context.Context, user User) (User, error) {
	created, err := scanUser(r.db.QueryRowContext(ctx, insertUserQuery, user.Name, user.Mobile, nullable(user.Avatar)))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return User{}, ErrMobileExists
		}
		return User{}, fmt.Errorf("insert user: %w", err)
	}
	return created, nil
}

func (r *PostgresRepository) Update(ctx context.Context, user User) (User, error) {
	// a nil avatar is written as NULL so that it scans back as a nil pointer
	updated, err := scanUser(r.db.QueryRowContext(ctx, updateUserQuery, user.ID, user.Name, nullable(user.Avatar)))
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("update user: %w", err)
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, deleteUserQuery, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) AddCoins(ctx context.Context, id, delta int) (int, error) {
	var coins int
	err := r.db.QueryRowContext(ctx, addCoinsQuery, id, delta).Scan(&coins)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("add coins: %w", err)
	}
	return coins, nil
}

func (r *PostgresRepository) Coins(ctx context.Context, id int) (int, error) {
	var coins int
	err := r.db.QueryRowContext(ctx, coinsQuery, id).Scan(&coins)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get coins: %w", err)
	}
	return coins, nil
}

func (r *PostgresRepository) one(ctx context.Context, query string, arg any) (User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func scanUser(scanner rowScanner) (User, error) {
	var u User
	var avatar sql.NullString
	if err := scanner.Scan(&u.ID, &u.Name, &u.Mobile, &avatar, &u.Coins, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return User{}, err
	}
	if avatar.Valid {
		u.Avatar = &avatar.String
	}
	return u, nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
