package validators

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateOrderRequest struct {
	CarID      primitive.ObjectID `json:"car_id" validate:"required"`
	PickupDate time.Time          `json:"pickup_date" validate:"required"`
	ReturnDate time.Time          `json:"return_date" validate:"required,gtfield=PickupDate"`
	CouponCode string             `json:"coupon_code" validate:"omitempty,coupon_code"`
	PayPartial bool               `json:"pay_partial"`
}

type VerifyPaymentRequest struct {
	BookingID         primitive.ObjectID `json:"booking_id" validate:"required"`
	RazorpayOrderID   string             `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string             `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string             `json:"razorpay_signature" validate:"required"`
}

type PayRemainingRequest struct {
	BookingID primitive.ObjectID `json:"booking_id" validate:"required"`
}

type RefundRequest struct {
	BookingID primitive.ObjectID `json:"booking_id" validate:"required"`
}
