package validators

import "time"

type CreateCouponRequest struct {
	Code             string   `json:"code" validate:"required,coupon_code"`
	Description      string   `json:"description" validate:"required,max=255"`
	DiscountType     string   `json:"discount_type" validate:"required,oneof=percentage fixed"`
	DiscountValue    float64  `json:"discount_value" validate:"required,gt=0"`
	MinBookingAmount float64  `json:"min_booking_amount" validate:"omitempty,gte=0"`
	MaxDiscount      *float64 `json:"max_discount" validate:"omitempty,gt=0"`
	ValidFrom        time.Time `json:"valid_from" validate:"required"`
	ValidUntil       time.Time `json:"valid_until" validate:"required,gtfield=ValidFrom"`
	UsageLimit       *int64    `json:"usage_limit" validate:"omitempty,gt=0"`
}

type UpdateCouponRequest struct {
	Description      string     `json:"description" validate:"omitempty,max=255"`
	DiscountValue    *float64   `json:"discount_value" validate:"omitempty,gt=0"`
	MinBookingAmount *float64   `json:"min_booking_amount" validate:"omitempty,gte=0"`
	MaxDiscount      *float64   `json:"max_discount" validate:"omitempty,gt=0"`
	ValidFrom        *time.Time `json:"valid_from"`
	ValidUntil       *time.Time `json:"valid_until"`
	UsageLimit       *int64     `json:"usage_limit" validate:"omitempty,gt=0"`
	IsActive         *bool      `json:"is_active"`
}

type CreateLocationRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

type UpdateLocationRequest struct {
	Name        string `json:"name" validate:"omitempty,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	IsActive    *bool  `json:"is_active"`
}
