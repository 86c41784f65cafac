package otp

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type PostgresStore struct {
	db *sql.DB
}

const (
	upsertOTPQuery = `
		INSERT INTO otp_codes (mobile, purpose, code_hash, attempts, expires_at)
		VALUES ($1, $2, $3, 0, $4)
		ON CONFLICT (mobile) DO UPDATE
		SET purpose = EXCLUDED.purpose, code_hash = EXCLUDED.code_hash, attempts = 0, expires_at = EXCLUDED.expires_at
	`
	getOTPQuery     = `SELECT mobile, purpose, code_hash, attempts, expires_at FROM otp_codes WHERE mobile = $1`
	reserveOTPQuery = `UPDATE otp_codes SET attempts = attempts + 1 WHERE mobile = $1 RETURNING mobile, purpose, code_hash, attempts, expires_at`
	consumeOTPQuery = `DELETE FROM otp_codes WHERE mobile = $1 AND code_hash = $2`
	deleteOTPQuery  = `DELETE FROM otp_codes WHERE mobile = $1`
)

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, code Code) error {
	if _, err := s.db.ExecContext(ctx, upsertOTPQuery, code.Mobile, string(code.Purpose), code.Hash, code.ExpiresAt); err != nil {
		return fmt.Errorf("save otp: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, mobile string) (Code, error) {
	code, err := scanCode(s.db.QueryRowContext(ctx, getOTPQuery, mobile))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Code{}, fmt.Errorf("get otp: %w", err)
	}
	return code, err
}

func (s *PostgresStore) ReserveAttempt(ctx context.Context, mobile string) (Code, error) {
	code, err := scanCode(s.db.QueryRowContext(ctx, reserveOTPQuery, mobile))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Code{}, fmt.Errorf("reserve otp attempt: %w", err)
	}
	return code, err
}

func (s *PostgresStore) Consume(ctx context.Context, mobile, hash string) error {
	res, err := s.db.ExecContext(ctx, consumeOTPQuery, mobile, hash)
	if err != nil {
		return fmt.Errorf("consume otp: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("consume otp: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, mobile string) error {
	if _, err := s.db.ExecContext(ctx, deleteOTPQuery, mobile); err != nil {
		return fmt.Errorf("delete otp: %w", err)
	}
	return nil
}

func scanCode(row *sql.Row) (Code, error) {
	var code Code
	var purpose string
	err := row.Scan(&code.Mobile, &purpose, &code.Hash, &code.Attempts, &code.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Code{}, ErrNotFound
	}
	if err != nil {
		return Code{}, err
	}
	code.Purpose = Purpose(purpose)
	return code, nil
}
