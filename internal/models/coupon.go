package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

type Coupon struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Code             string             `json:"code" bson:"code" validate:"required"`
	Description      string             `json:"description" bson:"description" validate:"required"`
	DiscountType     DiscountType       `json:"discount_type" bson:"discount_type" validate:"required,oneof=percentage fixed"`
	DiscountValue    float64            `json:"discount_value" bson:"discount_value" validate:"required,gt=0"`
	MinBookingAmount float64            `json:"min_booking_amount" bson:"min_booking_amount" default:"0"`
	MaxDiscount      *float64           `json:"max_discount" bson:"max_discount"` // percentage type only
	ValidFrom        time.Time          `json:"valid_from" bson:"valid_from" validate:"required"`
	ValidUntil       time.Time          `json:"valid_until" bson:"valid_until" validate:"required"`
	UsageLimit       *int64             `json:"usage_limit" bson:"usage_limit"` // nil means unlimited
	UsedCount        int64              `json:"used_count" bson:"used_count" default:"0"`
	IsActive         bool               `json:"is_active" bson:"is_active" default:"true"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at" bson:"updated_at"`
}

// ValidAt reports whether the coupon is active and inside its validity window.
func (c *Coupon) ValidAt(now time.Time) bool {
	return c.IsActive && !now.Before(c.ValidFrom) && !now.After(c.ValidUntil)
}

// Exhausted reports whether a capped coupon has no uses left.
func (c *Coupon) Exhausted() bool {
	return c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit
}
