package product

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, f Filter) ([]Product, error) {
	products, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	for i := range products {
		products[i] = products[i].withDiscount()
	}
	return products, nil
}

func (s *Service) GetByID(ctx context.Context, id int) (Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Product{}, err
	}
	return p.withDiscount(), nil
}

// GetByIDs looks up many products at once; missing ids are simply absent.
func (s *Service) GetByIDs(ctx context.Context, ids []int) (map[int]Product, error) {
	found, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for id, p := range found {
		found[id] = p.withDiscount()
	}
	return found, nil
}

func (s *Service) Create(ctx context.Context, p Product) (Product, error) {
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return Product{}, err
	}
	return created.withDiscount(), nil
}

// SetRating stores the aggregate review score shown on product cards.
func (s *Service) SetRating(ctx context.Context, id int, rating float64, count int) error {
	return s.repo.UpdateRating(ctx, id, rating, count)
}
