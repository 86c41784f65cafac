package pricing

import (
	"context"

	"github.com/shopspring/decimal"
)

// Quote is the checkout summary for the selected lines.
type Quote struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	Delivery  decimal.Decimal `json:"delivery"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
	Coupon    CouponResult    `json:"coupon"`
}

// Quote prices the basket. The total is subtotal plus delivery minus the
// discount, never below zero; the discount itself is reported unclamped.
func (c *Catalog) Quote(ctx context.Context, b *Basket, code string, delivery decimal.Decimal) (Quote, error) {
	subtotal := b.Subtotal()
	coupon, err := c.Apply(ctx, code, subtotal)
	if err != nil {
		return Quote{}, err
	}

	total := subtotal.Add(delivery).Sub(coupon.Discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	return Quote{
		Subtotal:  subtotal,
		Delivery:  delivery,
		Discount:  coupon.Discount,
		Total:     total,
		ItemCount: b.ItemCount(),
		Coupon:    coupon,
	}, nil
}
