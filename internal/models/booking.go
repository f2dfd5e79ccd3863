package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string
type PaymentStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"

	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Booking carries two independent state machines: Status tracks the rental
// lifecycle, PaymentStatus tracks gateway reconciliation. Valid combinations:
// pending/confirmed may hold any payment state; cancelled holds whatever
// payment state it had, moving to refunded only through a refund.
type Booking struct {
	ID             primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	CarID          primitive.ObjectID  `json:"car_id" bson:"car_id" validate:"required"`
	UserID         primitive.ObjectID  `json:"user_id" bson:"user_id" validate:"required"`
	OwnerID        primitive.ObjectID  `json:"owner_id" bson:"owner_id" validate:"required"`
	PickupDate     time.Time           `json:"pickup_date" bson:"pickup_date" validate:"required"`
	ReturnDate     time.Time           `json:"return_date" bson:"return_date" validate:"required"`
	Status         BookingStatus       `json:"status" bson:"status" default:"pending"`
	PaymentStatus  PaymentStatus       `json:"payment_status" bson:"payment_status" default:"pending"`
	OriginalPrice  float64             `json:"original_price" bson:"original_price"`
	DiscountAmount float64             `json:"discount_amount" bson:"discount_amount" default:"0"`
	Price          float64             `json:"price" bson:"price"`
	AmountPaid     float64             `json:"amount_paid" bson:"amount_paid" default:"0"`
	AppliedCoupon  *primitive.ObjectID `json:"applied_coupon" bson:"applied_coupon"`
	// CouponRedeemed guards the usage-count increment: flipped at most once
	// per booking, so webhook replays cannot double-increment.
	CouponRedeemed    bool       `json:"coupon_redeemed" bson:"coupon_redeemed" default:"false"`
	RazorpayOrderID   string     `json:"razorpay_order_id" bson:"razorpay_order_id"`
	RazorpayPaymentID string     `json:"razorpay_payment_id" bson:"razorpay_payment_id"`
	RazorpaySignature string     `json:"-" bson:"razorpay_signature"`
	PaymentMethod     string     `json:"payment_method" bson:"payment_method"`
	PaidAt            *time.Time `json:"paid_at" bson:"paid_at"`
	ConfirmedAt       *time.Time `json:"confirmed_at" bson:"confirmed_at"`
	CreatedAt         time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" bson:"updated_at"`
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

// Blocks reports whether a booking in this status blocks other bookings
// for the same car and overlapping dates. Cancelled bookings never block.
func (s BookingStatus) Blocks() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// RemainingBalance is the amount still owed on the booking, floored at zero.
func (b *Booking) RemainingBalance() float64 {
	remaining := b.Price - b.AmountPaid
	if remaining < 0 {
		return 0
	}
	return remaining
}
