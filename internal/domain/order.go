package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// PaymentMethod values are the wire strings the mobile client sends.
type PaymentMethod string

const (
	PaymentCard           PaymentMethod = "card"
	PaymentMobileWallet   PaymentMethod = "bkash"
	PaymentCashOnDelivery PaymentMethod = "cod"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCard, PaymentMobileWallet, PaymentCashOnDelivery:
		return true
	}
	return false
}

// Address is used for both shipping and billing. Billing addresses may
// leave the name fields empty.
type Address struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	StreetAddress string `json:"streetAddress"`
	AptNumber     string `json:"aptNumber"`
	State         string `json:"state"`
	Zip           string `json:"zip"`
}

type CardDetails struct {
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
}

// Order is an immutable record of a completed checkout. Everything in it
// is a snapshot taken at placement time; only Status changes afterwards.
type Order struct {
	ID              string          `json:"id"`
	UserID          int             `json:"userId"`
	UserEmail       string          `json:"userEmail"`
	UserName        string          `json:"userName"`
	ShippingAddress Address         `json:"shippingAddress"`
	BillingAddress  Address         `json:"billingAddress"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	Items           []CartItem      `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Shipping        decimal.Decimal `json:"shipping"`
	Tax             decimal.Decimal `json:"tax"`
	Total           decimal.Decimal `json:"total"`
	Status          OrderStatus     `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// CloneOrders deep-copies an order history, including each order's items.
func CloneOrders(orders []Order) []Order {
	if orders == nil {
		return []Order{}
	}
	out := make([]Order, len(orders))
	copy(out, orders)
	for i := range out {
		out[i].Items = CloneCart(out[i].Items)
	}
	return out
}
