package wishlist

import (
	"context"

	"github.com/wichananm65/mill-store-backend/internal/product"
)

type ProductLookup interface {
	GetByID(ctx context.Context, id int) (product.Product, error)
	GetByIDs(ctx context.Context, ids []int) (map[int]product.Product, error)
}

type Service struct {
	repo     Repository
	products ProductLookup
}

func NewService(repo Repository, products ProductLookup) *Service {
	return &Service{repo: repo, products: products}
}

// List returns the saved products, newest first. Products that left the
// catalogue are skipped.
func (s *Service) List(ctx context.Context, userID int) ([]product.Product, error) {
	ids, err := s.repo.ProductIDs(ctx, userID)
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

func (s *Service) Add(ctx context.Context, userID, productID int) ([]product.Product, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	if err := s.repo.Add(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.List(ctx, userID)
}

func (s *Service) Remove(ctx context.Context, userID, productID int) ([]product.Product, error) {
	if err := s.repo.Remove(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.List(ctx, userID)
}
