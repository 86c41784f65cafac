package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product maps to the products table. JSON tags follow the camelCase
// convention used elsewhere in the project.
type Product struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Images          []string        `json:"images"`
	OriginalPrice   decimal.Decimal `json:"originalPrice"`
	SellingPrice    decimal.Decimal `json:"sellingPrice"`
	DiscountPercent int64           `json:"discountPercent"`
	Rating          float64         `json:"rating"`
	ReviewCount     int             `json:"reviewCount"`
	CategoryID      *int            `json:"categoryId,omitempty"`
	Stock           int             `json:"stock"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Filter narrows a product listing. Zero values match everything.
type Filter struct {
	CategoryID int
	Query      string
}

var hundred = decimal.NewFromInt(100)

// withDiscount derives DiscountPercent from the two prices.
func (p Product) withDiscount() Product {
	p.DiscountPercent = 0
	if p.OriginalPrice.IsPositive() && p.OriginalPrice.GreaterThan(p.SellingPrice) {
		p.DiscountPercent = p.OriginalPrice.Sub(p.SellingPrice).
			Div(p.OriginalPrice).
			Mul(hundred).
			Round(0).
			IntPart()
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	return p
}

// Image returns the first image or an empty string.
func (p Product) Image() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
