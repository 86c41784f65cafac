package address

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, userID int) ([]Address, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, id int) (Address, error) {
	return s.repo.Get(ctx, userID, id)
}

// Default returns the user's default address, ErrNotFound when they have none.
func (s *Service) Default(ctx context.Context, userID int) (Address, error) {
	return s.repo.GetDefault(ctx, userID)
}

func (s *Service) Create(ctx context.Context, userID int, in Input) (Address, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return Address{}, err
	}
	return s.repo.Create(ctx, in.toAddress(userID))
}

func (s *Service) Update(ctx context.Context, userID, id int, in Input) (Address, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return Address{}, err
	}
	addr := in.toAddress(userID)
	addr.ID = id
	return s.repo.Update(ctx, addr)
}

func (s *Service) Delete(ctx context.Context, userID, id int) error {
	return s.repo.Delete(ctx, userID, id)
}
