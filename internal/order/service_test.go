package order

import (
	"context"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wichananm65/mill-store-backend/internal/address"
	"github.com/wichananm65/mill-store-backend/internal/cart"
	"github.com/wichananm65/mill-store-backend/internal/pricing"
	"github.com/wichananm65/mill-store-backend/internal/product"
	"github.com/wichananm65/mill-store-backend/internal/user"
	"github.com/wichananm65/mill-store-backend/internal/wallet"
)

type fixture struct {
	orders  *Service
	cart    *cart.Service
	wallet  *wallet.Service
	address *address.Service
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// newFixture builds user 7 with a cart of one atta (399) and two turmeric
// (2 x 99), so the full cart is worth 597.
func newFixture(t *testing.T, withAddress bool) fixture {
	t.Helper()
	products := product.NewService(product.NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "Whole Wheat Atta", Images: []string{"/img/atta.png"}, OriginalPrice: d("450"), SellingPrice: d("399"), Stock: 10},
		{ID: 2, Name: "Turmeric", OriginalPrice: d("120"), SellingPrice: d("99"), Stock: 10},
	}))
	catalog := pricing.NewCatalog(nil)
	carts := cart.NewService(cart.NewInMemoryRepository([]cart.Item{
		{ID: 1, UserID: 7, ProductID: 1, Quantity: 1},
		{ID: 2, UserID: 7, ProductID: 2, Quantity: 2},
	}), products, catalog, decimal.Zero)

	users := user.NewInMemoryRepository([]user.User{{ID: 7, Name: "Asha", Mobile: "9876543210"}})
	wallets := wallet.NewService(wallet.NewInMemoryRepository(users))

	var seed []address.Address
	if withAddress {
		seed = []address.Address{{ID: 1, UserID: 7, Street: "12 Mill Road", City: "Pune", State: "MH", ZipCode: "411001", Country: "India", IsDefault: true}}
	}
	addrs := address.NewService(address.NewInMemoryRepository(seed))

	log := logrus.New()
	log.SetOutput(io.Discard)
	svc := NewService(NewInMemoryRepository(carts), carts, catalog, addrs, wallets,
		Options{TaxRate: d("0.05"), Delivery: decimal.Zero, RewardCoins: 10}, log)
	return fixture{orders: svc, cart: carts, wallet: wallets, address: addrs}
}

func TestPlaceWholeCartWithPercentageCoupon(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	ord, err := f.orders.Place(ctx, 7, PlaceInput{PaymentMethod: "cod", CouponCode: " discount10 "})
	require.NoError(t, err)

	assert.Equal(t, 1, ord.ID)
	assert.NotEmpty(t, ord.OrderNumber)
	assert.Len(t, ord.Items, 2)
	assert.Equal(t, "/img/atta.png", ord.Items[0].Image)
	assert.True(t, d("597").Equal(ord.ItemsPrice))
	assert.True(t, d("60").Equal(ord.Discount), "ten percent of 597 rounds to 60")
	assert.Equal(t, "DISCOUNT10", ord.CouponCode)
	assert.True(t, d("27").Equal(ord.TaxPrice), "tax on 537 rounds to 27")
	assert.True(t, d("564").Equal(ord.TotalPrice))
	assert.Equal(t, PaymentInfo{ID: "COD-PAYMENT", Status: "Pending"}, ord.PaymentInfo)
	assert.Equal(t, StatusProcessing, ord.Status)
	assert.Equal(t, "12 Mill Road", ord.ShippingAddress.Street)

	view, err := f.cart.View(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, view.Items, "ordered lines leave the cart")

	summary, err := f.wallet.Summary(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 10, summary.Coins)
	require.Len(t, summary.Transactions, 1)
	assert.Equal(t, "Order #1", summary.Transactions[0].Title)
}

func TestPlaceSelectedLinesOnly(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	ord, err := f.orders.Place(ctx, 7, PlaceInput{
		SelectedItemIDs: []int{1},
		PaymentMethod:   "ONLINE",
		CouponCode:      "SAVE50",
	})
	require.NoError(t, err)
	assert.True(t, d("399").Equal(ord.ItemsPrice))
	assert.True(t, d("50").Equal(ord.Discount))
	assert.True(t, d("17").Equal(ord.TaxPrice))
	assert.True(t, d("366").Equal(ord.TotalPrice))
	assert.Equal(t, PaymentInfo{ID: "ONLINE-PAYMENT", Status: "Paid"}, ord.PaymentInfo)

	view, err := f.cart.View(ctx, 7)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].ID)
}

func TestPlaceRejections(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t, true)
	_, err := f.orders.Place(ctx, 7, PlaceInput{PaymentMethod: "CARD"})
	assert.ErrorIs(t, err, ErrInvalidPayment)

	_, err = f.orders.Place(ctx, 7, PlaceInput{PaymentMethod: "COD", CouponCode: "NOPE"})
	assert.ErrorIs(t, err, ErrInvalidCoupon)
	assert.EqualError(t, err, pricing.MsgInvalidCode)

	_, err = f.orders.Place(ctx, 7, PlaceInput{PaymentMethod: "COD", SelectedItemIDs: []int{}})
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = f.orders.Place(ctx, 8, PlaceInput{PaymentMethod: "COD"})
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = f.orders.Place(ctx, 7, PlaceInput{PaymentMethod: "COD", AddressID: 99})
	assert.ErrorIs(t, err, address.ErrNotFound)

	noAddr := newFixture(t, false)
	_, err = noAddr.orders.Place(ctx, 7, PlaceInput{PaymentMethod: "COD"})
	assert.ErrorIs(t, err, ErrAddressRequired)

	_, err = noAddr.orders.Place(ctx, 7, PlaceInput{PaymentMethod: "COD", ShippingAddress: &address.Input{Street: "x"}})
	assert.ErrorIs(t, err, address.ErrIncomplete)

	ord, err := noAddr.orders.Place(ctx, 7, PlaceInput{
		PaymentMethod:   "COD",
		ShippingAddress: &address.Input{Street: "3 Market St", City: "Nashik", State: "MH", ZipCode: "422001"},
	})
	require.NoError(t, err)
	assert.Equal(t, "India", ord.ShippingAddress.Country)

	// nothing failed above consumed the cart
	orders, err := f.orders.List(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestTotalNeverNegative(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	// the turmeric line is 198, less than the coupon
	f.orders.coupons = pricing.NewCatalog(stubSource{code: "BIG", coupon: pricing.Coupon{Code: "BIG", Kind: pricing.KindFlat, Value: d("500")}})

	ord, err := f.orders.Place(ctx, 7, PlaceInput{SelectedItemIDs: []int{2}, PaymentMethod: "COD", CouponCode: "BIG"})
	require.NoError(t, err)
	assert.True(t, d("500").Equal(ord.Discount))
	assert.True(t, ord.TaxPrice.IsZero())
	assert.True(t, ord.TotalPrice.IsZero())
}

type stubSource struct {
	code   string
	coupon pricing.Coupon
}

func (s stubSource) Lookup(_ context.Context, code string) (pricing.Coupon, bool, error) {
	if code == s.code {
		return s.coupon, true, nil
	}
	return pricing.Coupon{}, false, nil
}

func TestOrdersAreScopedToTheirOwner(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	ord, err := f.orders.Place(ctx, 7, PlaceInput{PaymentMethod: "COD"})
	require.NoError(t, err)

	got, err := f.orders.Get(ctx, 7, ord.ID)
	require.NoError(t, err)
	assert.Equal(t, ord.OrderNumber, got.OrderNumber)

	_, err = f.orders.Get(ctx, 8, ord.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListNewestFirst(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, Order{UserID: 7}, nil)
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, Order{UserID: 8}, nil)
	require.NoError(t, err)

	list, err := repo.ListByUser(ctx, 7)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int{3, 2, 1}, []int{list[0].ID, list[1].ID, list[2].ID})
}
