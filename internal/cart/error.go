package cart

import "stylora-be/internal/apperr"

var (
	// -- Validation & Input --
	ErrMissingFields   = apperr.New(apperr.KindInvalidInput, "Missing required cart item fields")
	ErrInvalidQuantity = apperr.New(apperr.KindInvalidInput, "Quantity must be at least 1")
	ErrNegativePrice   = apperr.New(apperr.KindInvalidInput, "Price cannot be negative")

	// -- Resource State --
	ErrItemNotFound = apperr.New(apperr.KindNotFound, "Cart item not found")
)
