package pricing

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"
)

const getCouponQuery = `
	SELECT code, kind, value, max_discount, min_order_value, expires_at
	FROM coupons
	WHERE code = $1
`

// PostgresSource reads extra coupons from the coupons table.
type PostgresSource struct {
	db *sql.DB
}

func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

func (s *PostgresSource) Lookup(ctx context.Context, code string) (Coupon, bool, error) {
	var (
		cp      Coupon
		kind    string
		maxDisc decimal.NullDecimal
		expires sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, getCouponQuery, code).
		Scan(&cp.Code, &kind, &cp.Value, &maxDisc, &cp.MinOrderValue, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return Coupon{}, false, nil
	}
	if err != nil {
		return Coupon{}, false, err
	}

	cp.Kind = Kind(kind)
	cp.MaxDiscount = maxDisc
	if expires.Valid {
		t := expires.Time
		cp.ExpiresAt = &t
	}
	return cp, true, nil
}
