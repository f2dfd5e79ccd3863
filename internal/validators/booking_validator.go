package validators

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateBookingRequest struct {
	CarID      primitive.ObjectID `json:"car_id" validate:"required"`
	PickupDate time.Time          `json:"pickup_date" validate:"required"`
	ReturnDate time.Time          `json:"return_date" validate:"required,gtfield=PickupDate"`
	CouponCode string             `json:"coupon_code" validate:"omitempty,coupon_code"`
}

type ChangeBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed cancelled"`
}

type AvailabilityRequest struct {
	CarID      primitive.ObjectID `json:"car_id" validate:"required"`
	PickupDate time.Time          `json:"pickup_date" validate:"required"`
	ReturnDate time.Time          `json:"return_date" validate:"required,gtfield=PickupDate"`
}

type SearchCarsRequest struct {
	Location   string    `json:"location" validate:"omitempty,max=100"`
	PickupDate time.Time `json:"pickup_date" validate:"required"`
	ReturnDate time.Time `json:"return_date" validate:"required,gtfield=PickupDate"`
}
