package category

import "context"

// Service provides business logic for categories.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// List returns up to `limit` categories.
func (s *Service) List(ctx context.Context, limit int) ([]Category, error) {
	return s.repo.List(ctx, limit)
}
