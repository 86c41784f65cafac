package booking

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrMissingFields      = errors.New("name, mobile, serviceType and a complete address are required")
	ErrInvalidServiceType = errors.New("serviceType must be Spices, Flour or Grinding")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create books a service. A missing date means as soon as possible.
func (s *Service) Create(ctx context.Context, userID int, in Input) (Booking, error) {
	name := strings.TrimSpace(in.Name)
	mobile := strings.TrimSpace(in.Mobile)
	if name == "" || mobile == "" || strings.TrimSpace(in.ServiceType) == "" || in.Address.ManualAddress == nil {
		return Booking{}, ErrMissingFields
	}
	st, ok := parseServiceType(in.ServiceType)
	if !ok {
		return Booking{}, ErrInvalidServiceType
	}
	addr := in.Address.ManualAddress.Normalize()
	if err := addr.Validate(); err != nil {
		return Booking{}, ErrMissingFields
	}

	date := s.now().UTC()
	if in.Date != nil && !in.Date.IsZero() {
		date = in.Date.UTC()
	}

	return s.repo.Create(ctx, Booking{
		UserID:      userID,
		Name:        name,
		Mobile:      mobile,
		ServiceType: st,
		Date:        date,
		Address: Address{
			Street:  addr.Street,
			City:    addr.City,
			State:   addr.State,
			ZipCode: addr.ZipCode,
			Country: addr.Country,
		},
		Status: StatusPending,
	})
}

func (s *Service) List(ctx context.Context, userID int) ([]Booking, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Cancel(ctx context.Context, userID, id int) (Booking, error) {
	return s.repo.Cancel(ctx, userID, id)
}
