package recommended

import (
	"context"

	"github.com/wichananm65/mill-store-backend/internal/product"
)

// Repository returns ranked product ids.
type Repository interface {
	RankedIDs(ctx context.Context, limit, offset int) ([]int, error)
}

type ProductLister interface {
	List(ctx context.Context, f product.Filter) ([]product.Product, error)
}

// InMemoryRepository ranks whatever the product service lists.
type InMemoryRepository struct {
	products ProductLister
}

func NewInMemoryRepository(products ProductLister) *InMemoryRepository {
	return &InMemoryRepository{products: products}
}

func (r *InMemoryRepository) RankedIDs(ctx context.Context, limit, offset int) ([]int, error) {
	all, err := r.products.List(ctx, product.Filter{})
	if err != nil {
		return nil, err
	}
	rank(all)
	if offset >= len(all) {
		return []int{}, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	ids := make([]int, len(all))
	for i, p := range all {
		ids[i] = p.ID
	}
	return ids, nil
}
