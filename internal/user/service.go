package user

import (
	"context"
	"errors"
	"strings"

	"github.com/wichananm65/mill-store-backend/internal/address"
)

var ErrNameRequired = errors.New("name is required")

// AddressLister is the part of the address service the profile needs.
type AddressLister interface {
	List(ctx context.Context, userID int) ([]address.Address, error)
}

type Service struct {
	repo      Repository
	addresses AddressLister
}

func NewService(repo Repository, addresses AddressLister) *Service {
	return &Service{repo: repo, addresses: addresses}
}

func (s *Service) GetByID(ctx context.Context, id int) (User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByMobile(ctx context.Context, mobile string) (User, error) {
	return s.repo.GetByMobile(ctx, mobile)
}

func (s *Service) Create(ctx context.Context, name, mobile string) (User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return User{}, ErrNameRequired
	}
	return s.repo.Create(ctx, User{Name: name, Mobile: mobile})
}

// Delete removes an account that was only half created.
func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// Profile returns the user together with their saved addresses.
func (s *Service) Profile(ctx context.Context, id int) (User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	u.Addresses = []address.Address{}
	if s.addresses != nil {
		addrs, err := s.addresses.List(ctx, id)
		if err != nil {
			return User{}, err
		}
		u.Addresses = addrs
	}
	return u, nil
}

// Rename changes the display name; the mobile number is the login identity
// and cannot be edited.
func (s *Service) Rename(ctx context.Context, id int, name string) (User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return User{}, ErrNameRequired
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	u.Name = name
	return s.repo.Update(ctx, u)
}

// SetAvatar stores the avatar path, or clears it when path is nil. It returns
// the previous path so the caller can clean up the old file.
func (s *Service) SetAvatar(ctx context.Context, id int, path *string) (User, *string, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return User{}, nil, err
	}
	previous := u.Avatar
	u.Avatar = path
	updated, err := s.repo.Update(ctx, u)
	if err != nil {
		return User{}, nil, err
	}
	return updated, previous, nil
}
