// Package services defines the business logic for accounts, sessions,
// tracked products, and the notification feed. This file centralizes common
// service-level error values so that they can be consistently returned by
// service methods and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the
// handler layer.
package services

import "errors"

// Account and session errors.
var (
	// ErrNameRequired is returned when a registration is missing the
	// display name.
	ErrNameRequired = errors.New("name is required")

	// ErrInvalidEmail is returned when a registration or login carries a
	// malformed email address.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrWeakPassword is returned when a registration password is shorter
	// than the minimum of six characters.
	ErrWeakPassword = errors.New("password must be at least 6 characters")

	// ErrEmailInUse is returned when the registration email already belongs
	// to an account.
	ErrEmailInUse = errors.New("email already in use")

	// ErrInvalidCredentials is returned for a login whose email is unknown
	// or whose password does not match. The two cases are deliberately
	// indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrSessionNotFound indicates the session id is unknown or expired.
	ErrSessionNotFound = errors.New("session not found")
)

// Product errors.
var (
	// ErrProductNotFound indicates that the requested product does not exist
	// or is not accessible to the current user.
	ErrProductNotFound = errors.New("product not found")

	// ErrNameTooShort is returned when a product name has fewer than three
	// characters.
	ErrNameTooShort = errors.New("product name must be at least 3 characters")

	// ErrInvalidURL is returned when the product URL is not a well-formed
	// http(s) URL.
	ErrInvalidURL = errors.New("invalid product URL")

	// ErrInvalidSeller is returned when the seller is outside the allowed
	// marketplace set.
	ErrInvalidSeller = errors.New("seller is not supported")

	// ErrInvalidMaxPrice is returned when the maximum price is not a
	// positive number.
	ErrInvalidMaxPrice = errors.New("max price must be positive")

	// ErrPhoneRequired is returned when the notification phone number is
	// empty.
	ErrPhoneRequired = errors.New("phone number is required")
)

// Notification errors.
var (
	// ErrNotificationNotFound indicates that the requested notification does
	// not exist or is not accessible to the current user.
	ErrNotificationNotFound = errors.New("notification not found")
)
