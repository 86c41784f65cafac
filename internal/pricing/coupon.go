package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindFlat       Kind = "flat"
	KindPercentage Kind = "percentage"
)

// Coupon is a discount rule. Value is an amount for flat coupons and a
// percentage for percentage coupons.
type Coupon struct {
	Code          string
	Kind          Kind
	Value         decimal.Decimal
	MaxDiscount   decimal.NullDecimal
	MinOrderValue decimal.Decimal
	ExpiresAt     *time.Time
}

var hundred = decimal.NewFromInt(100)

// BuiltinCoupons are always available, whatever the coupons table holds.
var BuiltinCoupons = []Coupon{
	{Code: "SAVE50", Kind: KindFlat, Value: decimal.NewFromInt(50)},
	{
		Code:        "DISCOUNT10",
		Kind:        KindPercentage,
		Value:       decimal.NewFromInt(10),
		MaxDiscount: decimal.NewNullDecimal(decimal.NewFromInt(100)),
	},
}

// Discount returns the amount the coupon takes off subtotal. Percentages are
// rounded to the nearest whole rupee, halves away from zero.
func (c Coupon) Discount(subtotal decimal.Decimal) decimal.Decimal {
	var d decimal.Decimal
	switch c.Kind {
	case KindFlat:
		d = c.Value
	case KindPercentage:
		d = subtotal.Mul(c.Value).Div(hundred).Round(0)
	}
	if c.MaxDiscount.Valid && d.GreaterThan(c.MaxDiscount.Decimal) {
		d = c.MaxDiscount.Decimal
	}
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func (c Coupon) expired(now time.Time) bool {
	return c.ExpiresAt != nil && !now.Before(*c.ExpiresAt)
}
