package services

import "errors"

// Sentinel errors the handler layer maps to HTTP statuses.
var (
	ErrBookingNotFound    = errors.New("booking not found")
	ErrCarNotFound        = errors.New("car not found")
	ErrCarUnavailable     = errors.New("car is not available for the selected dates")
	ErrInvalidDateRange   = errors.New("return date must be after pickup date")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrCouponLimitReached = errors.New("coupon usage limit reached")
	ErrInvalidSignature   = errors.New("payment signature verification failed")
	ErrAlreadyPaid        = errors.New("booking is already paid")
	ErrPaymentSettled     = errors.New("payment outcome already recorded")
	ErrNothingToRefund    = errors.New("no captured payment to refund")
	ErrAlreadyRefunded    = errors.New("payment already refunded")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
)
