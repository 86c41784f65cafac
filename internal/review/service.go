package review

import (
	"context"
	"errors"
	"strings"

	"github.com/wichananm65/mill-store-backend/internal/product"
	"github.com/wichananm65/mill-store-backend/internal/user"
)

var (
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrCommentRequired = errors.New("comment is required")
)

type ProductRater interface {
	GetByID(ctx context.Context, id int) (product.Product, error)
	SetRating(ctx context.Context, id int, rating float64, count int) error
}

type UserLookup interface {
	GetByID(ctx context.Context, id int) (user.User, error)
}

type Input struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type Service struct {
	repo     Repository
	products ProductRater
	users    UserLookup
}

func NewService(repo Repository, products ProductRater, users UserLookup) *Service {
	return &Service{repo: repo, products: products, users: users}
}

func (s *Service) List(ctx context.Context, productID int) ([]Review, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.ListByProduct(ctx, productID)
}

// Create stores a review and refreshes the product's rating and review count
// from every review it has.
func (s *Service) Create(ctx context.Context, userID, productID int, in Input) (Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return Review{}, ErrInvalidRating
	}
	comment := strings.TrimSpace(in.Comment)
	if comment == "" {
		return Review{}, ErrCommentRequired
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return Review{}, err
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return Review{}, err
	}

	rv, err := s.repo.Create(ctx, Review{
		ProductID: productID,
		UserID:    userID,
		UserName:  u.Name,
		Rating:    in.Rating,
		Comment:   comment,
	})
	if err != nil {
		return Review{}, err
	}

	stats, err := s.repo.Stats(ctx, productID)
	if err != nil {
		return Review{}, err
	}
	if err := s.products.SetRating(ctx, productID, stats.roundedMean(), stats.Count); err != nil {
		return Review{}, err
	}
	return rv, nil
}
