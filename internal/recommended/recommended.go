// Package recommended serves the "recommended for you" product rail: the
// best rated products, ties broken by review count and then discount.
package recommended

import (
	"sort"

	"github.com/wichananm65/mill-store-backend/internal/product"
)

const (
	defaultLimit = 10
	maxLimit     = 50
)

func rank(list []product.Product) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		if a.ReviewCount != b.ReviewCount {
			return a.ReviewCount > b.ReviewCount
		}
		if a.DiscountPercent != b.DiscountPercent {
			return a.DiscountPercent > b.DiscountPercent
		}
		return a.ID < b.ID
	})
}
