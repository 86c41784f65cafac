package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "COD"
	PaymentOnline PaymentMethod = "ONLINE"
)

type Status string

const (
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

// Item is a snapshot of a product at the moment it was ordered.
type Item struct {
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type ShippingAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type PaymentInfo struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Order represents a purchase made by a user.
type Order struct {
	ID              int             `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	UserID          int             `json:"userId"`
	Items           []Item          `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	PaymentInfo     PaymentInfo     `json:"paymentInfo"`
	ItemsPrice      decimal.Decimal `json:"itemsPrice"`
	Discount        decimal.Decimal `json:"discount"`
	CouponCode      string          `json:"couponCode,omitempty"`
	TaxPrice        decimal.Decimal `json:"taxPrice"`
	ShippingPrice   decimal.Decimal `json:"shippingPrice"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	Status          Status          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// paymentFor maps the chosen method to the recorded payment. Online payments
// are recorded as paid; there is no gateway callback.
func paymentFor(m PaymentMethod) PaymentInfo {
	if m == PaymentOnline {
		return PaymentInfo{ID: "ONLINE-PAYMENT", Status: "Paid"}
	}
	return PaymentInfo{ID: "COD-PAYMENT", Status: "Pending"}
}
