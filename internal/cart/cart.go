package cart

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wichananm65/mill-store-backend/internal/product"
)

// Item is a stored cart row. A user has at most one row per product.
type Item struct {
	ID        int
	UserID    int
	ProductID int
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Line is a cart row joined with its current product data.
type Line struct {
	ID        int             `json:"id"`
	Product   product.Product `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// View is the cart as shown on the cart screen.
type View struct {
	Items     []Line          `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	ItemCount int             `json:"itemCount"`
}
