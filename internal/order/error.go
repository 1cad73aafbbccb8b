package order

import "stylora-be/internal/apperr"

var (
	// -- Validation & Input --
	ErrEmptyCart          = apperr.New(apperr.KindInvalidInput, "Cannot order an empty cart")
	ErrMissingAddress     = apperr.New(apperr.KindInvalidInput, "Please fill in all required shipping address fields")
	ErrMissingCardDetails = apperr.New(apperr.KindInvalidInput, "Please fill in all card details")
	ErrInvalidPayment     = apperr.New(apperr.KindInvalidInput, "Unknown payment method")
	ErrInvalidStatus      = apperr.New(apperr.KindInvalidInput, "Invalid order status")

	// -- Authentication/Authorization --
	ErrUnknownUser = apperr.New(apperr.KindUnauthorized, "Unknown user")

	// -- Resource State --
	ErrOrderNotFound = apperr.New(apperr.KindNotFound, "Order not found")
)
