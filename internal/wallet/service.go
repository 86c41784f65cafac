package wallet

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Credit adds (or, when negative, removes) coins and records why.
func (s *Service) Credit(ctx context.Context, userID, amount int, title string) (Transaction, error) {
	if amount == 0 {
		return Transaction{}, ErrInvalidAmount
	}
	return s.repo.Credit(ctx, userID, amount, title)
}

func (s *Service) Summary(ctx context.Context, userID int) (Summary, error) {
	coins, err := s.repo.Balance(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	history, err := s.repo.History(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	return Summary{Coins: coins, Transactions: history}, nil
}
