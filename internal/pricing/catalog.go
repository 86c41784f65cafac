package pricing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/shopspring/decimal"
)

const (
	MsgEmptyCode   = "Please enter a coupon code."
	MsgInvalidCode = "Invalid coupon code."
	MsgExpired     = "This coupon has expired."
	MsgApplied     = "Coupon applied successfully!"
)

// Source looks coupons up by normalized code. ok is false when the code is
// unknown.
type Source interface {
	Lookup(ctx context.Context, code string) (c Coupon, ok bool, err error)
}

// maxCachedCoupons bounds the Source cache. Unknown codes are never cached.
const maxCachedCoupons = 512

// Catalog resolves coupon codes against the built-in coupons and an optional
// Source, caching Source hits for a short time.
type Catalog struct {
	builtin map[string]Coupon
	source  Source
	now     func() time.Time
	cache   *expirable.LRU[string, Coupon]
}

// CouponResult is the outcome of applying a code.
type CouponResult struct {
	Code     string          `json:"code"`
	Applied  bool            `json:"applied"`
	Message  string          `json:"message"`
	Discount decimal.Decimal `json:"-"`
}

func NewCatalog(source Source) *Catalog {
	c := &Catalog{
		builtin: make(map[string]Coupon, len(BuiltinCoupons)),
		source:  source,
		now:     time.Now,
		cache:   expirable.NewLRU[string, Coupon](maxCachedCoupons, nil, time.Minute),
	}
	for _, cp := range BuiltinCoupons {
		c.builtin[cp.Code] = cp
	}
	return c
}

// NormalizeCode trims and upper-cases a user-entered code.
func NormalizeCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Apply evaluates raw against subtotal. Unknown, expired or ineligible codes
// are not errors: they come back with Applied false and a message.
func (c *Catalog) Apply(ctx context.Context, raw string, subtotal decimal.Decimal) (CouponResult, error) {
	code := NormalizeCode(raw)
	res := CouponResult{Code: code, Discount: decimal.Zero}
	if code == "" {
		res.Message = MsgEmptyCode
		return res, nil
	}

	cp, ok, err := c.lookup(ctx, code)
	if err != nil {
		return CouponResult{}, err
	}
	switch {
	case !ok:
		res.Message = MsgInvalidCode
	case cp.expired(c.now()):
		res.Message = MsgExpired
	case subtotal.LessThan(cp.MinOrderValue):
		res.Message = fmt.Sprintf("Add items worth ₹%s more to use this coupon.", cp.MinOrderValue.Sub(subtotal).StringFixed(0))
	default:
		res.Applied = true
		res.Message = MsgApplied
		res.Discount = cp.Discount(subtotal)
	}
	return res, nil
}

func (c *Catalog) lookup(ctx context.Context, code string) (Coupon, bool, error) {
	if cp, ok := c.builtin[code]; ok {
		return cp, true, nil
	}
	if c.source == nil {
		return Coupon{}, false, nil
	}

	if cp, found := c.cache.Get(code); found {
		return cp, true, nil
	}

	cp, ok, err := c.source.Lookup(ctx, code)
	if err != nil {
		return Coupon{}, false, fmt.Errorf("lookup coupon %s: %w", code, err)
	}
	if ok {
		c.cache.Add(code, cp)
	}
	return cp, ok, nil
}
