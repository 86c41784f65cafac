package banner

import "context"

const maxLimit = 20

// Service provides business logic for banners.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// List returns up to limit banners; limits outside 1..20 fall back to 10.
func (s *Service) List(ctx context.Context, limit int) ([]Banner, error) {
	if limit <= 0 || limit > maxLimit {
		limit = 10
	}
	return s.repo.List(ctx, limit)
}
