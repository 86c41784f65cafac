package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/wichananm65/mill-store-backend/internal/address"
	"github.com/wichananm65/mill-store-backend/internal/cart"
	"github.com/wichananm65/mill-store-backend/internal/pricing"
	"github.com/wichananm65/mill-store-backend/internal/wallet"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidPayment  = errors.New("paymentMethod must be COD or ONLINE")
	ErrInvalidCoupon   = errors.New("invalid coupon")
	ErrAddressRequired = errors.New("a shipping address is required")
)

type CartSelector interface {
	Select(ctx context.Context, userID int, selected []int) (cart.Selection, error)
}

type AddressBook interface {
	Get(ctx context.Context, userID, id int) (address.Address, error)
	Default(ctx context.Context, userID int) (address.Address, error)
}

type Rewarder interface {
	Credit(ctx context.Context, userID, amount int, title string) (wallet.Transaction, error)
}

type Options struct {
	TaxRate     decimal.Decimal
	Delivery    decimal.Decimal
	RewardCoins int
}

// PlaceInput is a checkout request. SelectedItemIDs nil means the whole cart.
// AddressID wins over ShippingAddress; with neither the default address is used.
type PlaceInput struct {
	SelectedItemIDs []int          `json:"selectedItemIds"`
	AddressID       int            `json:"addressId"`
	ShippingAddress *address.Input `json:"shippingAddress"`
	PaymentMethod   string         `json:"paymentMethod"`
	CouponCode      string         `json:"couponCode"`
}

type Service struct {
	repo      Repository
	cart      CartSelector
	coupons   *pricing.Catalog
	addresses AddressBook
	rewards   Rewarder
	opts      Options
	log       logrus.FieldLogger
}

// CouponError reports a coupon that could not be applied at checkout.
type CouponError struct {
	Message string
}

func (e *CouponError) Error() string { return e.Message }

func (e *CouponError) Is(target error) bool { return target == ErrInvalidCoupon }

func NewService(repo Repository, c CartSelector, coupons *pricing.Catalog, addresses AddressBook, rewards Rewarder, opts Options, log logrus.FieldLogger) *Service {
	return &Service{repo: repo, cart: c, coupons: coupons, addresses: addresses, rewards: rewards, opts: opts, log: log}
}

func (s *Service) List(ctx context.Context, userID int) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, id int) (Order, error) {
	return s.repo.Get(ctx, userID, id)
}

// Place turns the selected cart lines into an order, removes those lines
// from the cart and credits the order reward.
func (s *Service) Place(ctx context.Context, userID int, in PlaceInput) (Order, error) {
	method := PaymentMethod(strings.ToUpper(strings.TrimSpace(in.PaymentMethod)))
	if method != PaymentCOD && method != PaymentOnline {
		return Order{}, ErrInvalidPayment
	}

	sel, err := s.cart.Select(ctx, userID, in.SelectedItemIDs)
	if err != nil {
		return Order{}, err
	}
	lines := sel.SelectedLines()
	if len(lines) == 0 {
		return Order{}, ErrEmptyCart
	}

	quote, err := s.coupons.Quote(ctx, sel.Basket, in.CouponCode, s.opts.Delivery)
	if err != nil {
		return Order{}, err
	}
	if strings.TrimSpace(in.CouponCode) != "" && !quote.Coupon.Applied {
		return Order{}, &CouponError{Message: quote.Coupon.Message}
	}

	ship, err := s.shippingAddress(ctx, userID, in)
	if err != nil {
		return Order{}, err
	}

	ord := Order{
		OrderNumber:     uuid.NewString(),
		UserID:          userID,
		Items:           make([]Item, 0, len(lines)),
		ShippingAddress: ship,
		PaymentMethod:   method,
		PaymentInfo:     paymentFor(method),
		Status:          StatusProcessing,
	}
	ids := make([]int, 0, len(lines))
	for _, l := range lines {
		ord.Items = append(ord.Items, Item{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			Image:     l.Product.Image(),
			Quantity:  l.Quantity,
			Price:     l.Product.SellingPrice,
		})
		ids = append(ids, l.ID)
	}
	s.price(&ord, quote)

	created, err := s.repo.Create(ctx, ord, ids)
	if err != nil {
		return Order{}, err
	}

	if s.rewards != nil && s.opts.RewardCoins > 0 {
		title := fmt.Sprintf("Order #%d", created.ID)
		if _, err := s.rewards.Credit(ctx, userID, s.opts.RewardCoins, title); err != nil {
			s.log.WithError(err).WithField("order_id", created.ID).Warn("order reward not credited")
		}
	}
	return created, nil
}

// price fills in the totals. Tax applies to the discounted items price and
// the grand total never goes below zero.
func (s *Service) price(ord *Order, q pricing.Quote) {
	ord.ItemsPrice = q.Subtotal
	ord.Discount = q.Discount
	ord.CouponCode = ""
	if q.Coupon.Applied {
		ord.CouponCode = q.Coupon.Code
	}
	ord.ShippingPrice = q.Delivery

	taxable := q.Subtotal.Sub(q.Discount)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	ord.TaxPrice = taxable.Mul(s.opts.TaxRate).Round(0)
	ord.TotalPrice = q.Total.Add(ord.TaxPrice)
}

func (s *Service) shippingAddress(ctx context.Context, userID int, in PlaceInput) (ShippingAddress, error) {
	switch {
	case in.AddressID > 0:
		a, err := s.addresses.Get(ctx, userID, in.AddressID)
		if err != nil {
			return ShippingAddress{}, err
		}
		return snapshot(a), nil
	case in.ShippingAddress != nil:
		manual := in.ShippingAddress.Normalize()
		if err := manual.Validate(); err != nil {
			return ShippingAddress{}, err
		}
		return ShippingAddress{Street: manual.Street, City: manual.City, State: manual.State, ZipCode: manual.ZipCode, Country: manual.Country}, nil
	}

	a, err := s.addresses.Default(ctx, userID)
	if errors.Is(err, address.ErrNotFound) {
		return ShippingAddress{}, ErrAddressRequired
	}
	if err != nil {
		return ShippingAddress{}, err
	}
	return snapshot(a), nil
}

func snapshot(a address.Address) ShippingAddress {
	return ShippingAddress{Street: a.Street, City: a.City, State: a.State, ZipCode: a.ZipCode, Country: a.Country}
}
