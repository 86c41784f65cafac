package recommended

import (
	"context"

	"github.com/wichananm65/mill-store-backend/internal/product"
)

type ProductLookup interface {
	GetByIDs(ctx context.Context, ids []int) (map[int]product.Product, error)
}

// Service provides business logic for recommended items.
type Service struct {
	repo     Repository
	products ProductLookup
}

func NewService(repo Repository, products ProductLookup) *Service {
	return &Service{repo: repo, products: products}
}

// List returns up to limit products in rank order, starting at offset.
func (s *Service) List(ctx context.Context, limit, offset int) ([]product.Product, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}

	ids, err := s.repo.RankedIDs(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	byID, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]product.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}
