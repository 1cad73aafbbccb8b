package user

import "stylora-be/internal/apperr"

var (
	// -- Validation & Input --
	ErrMissingFields    = apperr.New(apperr.KindInvalidInput, "All fields are required")
	ErrPasswordTooShort = apperr.New(apperr.KindInvalidInput, "Password must be at least 6 characters")

	// -- Authentication --
	// One message for unknown email and wrong password, so callers
	// cannot enumerate accounts.
	ErrInvalidCredentials = apperr.New(apperr.KindUnauthorized, "Invalid email or password")
	ErrWrongPassword      = apperr.New(apperr.KindUnauthorized, "Current password is incorrect")

	// -- Resource State --
	ErrEmailExists  = apperr.New(apperr.KindConflict, "User already registered. Please login.")
	ErrUserNotFound = apperr.New(apperr.KindNotFound, "User not found")
)
