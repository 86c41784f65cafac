package booking

import (
	"context"
	"database/sql"
	"encoding/json"
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
	bookingColumns = `id, user_id, name, mobile, service_type, date, address, status, created_at, updated_at`

	insertBookingQuery = `
		INSERT INTO bookings (user_id, name, mobile, service_type, date, address, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	listBookingsQuery = `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1
		ORDER BY (status = 'cancelled'), date DESC, id DESC`
	cancelBookingQuery = `UPDATE bookings SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND status = 'pending'
		RETURNING ` + bookingColumns
	bookingStatusQuery = `SELECT status FROM bookings WHERE id = $1 AND user_id = $2`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, b Booking) (Booking, error) {
	addr, err := json.Marshal(b.Address)
	if err != nil {
		return Booking{}, err
	}
	err = r.db.QueryRowContext(ctx, insertBookingQuery,
		b.UserID, b.Name, b.Mobile, string(b.ServiceType), b.Date, addr, string(b.Status),
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return Booking{}, fmt.Errorf("insert booking: %w", err)
	}
	return b, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int) ([]Booking, error) {
	rows, err := r.db.QueryContext(ctx, listBookingsQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	out := make([]Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Cancel(ctx context.Context, userID, id int) (Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx, cancelBookingQuery, id, userID))
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Booking{}, fmt.Errorf("cancel booking: %w", err)
	}

	// nothing updated: either the booking is not the caller's or it is not pending
	var status string
	err = r.db.QueryRowContext(ctx, bookingStatusQuery, id, userID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return Booking{}, ErrNotFound
	}
	if err != nil {
		return Booking{}, fmt.Errorf("booking status: %w", err)
	}
	return Booking{}, ErrNotPending
}

func scanBooking(s rowScanner) (Booking, error) {
	var (
		b                   Booking
		serviceType, status string
		addr                []byte
	)
	if err := s.Scan(&b.ID, &b.UserID, &b.Name, &b.Mobile, &serviceType, &b.Date, &addr, &status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return Booking{}, err
	}
	if err := json.Unmarshal(addr, &b.Address); err != nil {
		return Booking{}, fmt.Errorf("decode address: %w", err)
	}
	b.ServiceType = ServiceType(serviceType)
	b.Status = Status(status)
	return b, nil
}
