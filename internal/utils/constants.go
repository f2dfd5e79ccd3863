package utils

import "time"

// Application Constants
const (
	AppName    = "CarRentalGoa"
	AppVersion = "1.0.0"

	DefaultCurrency = "INR"
	DefaultTimeZone = "UTC"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour
	PasswordMinLength  = 8

	// Booking Constants
	MaxRentalDays = 90

	// Payment Constants
	PaiseMultiplier = 100
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrInvalidCredentials = "invalid credentials"
	ErrUserNotFound       = "user not found"
	ErrUserExists         = "user already exists"
	ErrInvalidToken       = "invalid token"
	ErrInvalidInput       = "invalid input"
	ErrInternalServer     = "internal server error"
	ErrUnauthorized       = "unauthorized"
	ErrForbidden          = "forbidden"
	ErrNotFound           = "not found"
	ErrValidationFailed   = "validation failed"
	ErrBookingNotFound    = "booking not found"
	ErrCarNotFound        = "car not found"
	ErrCarUnavailable     = "car is not available for the selected dates"
)

// Cache Keys
const (
	CacheKeyCouponCode      = "coupon_code_%s"
	CacheKeyCoupon          = "coupon:%s"
	CacheKeyActiveLocations = "locations:active"
)
