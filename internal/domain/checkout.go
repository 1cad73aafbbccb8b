package domain

// SavedCheckout is a per-user convenience cache of the last-used checkout
// selections. It only pre-fills future checkouts; it is never consulted
// for pricing or order validity.
type SavedCheckout struct {
	ShippingAddress Address       `json:"savedShippingAddress"`
	BillingAddress  Address       `json:"savedBillingAddress"`
	PaymentMethod   PaymentMethod `json:"savedPaymentMethod"`
	CardDetails     CardDetails   `json:"savedCardDetails"`
}
