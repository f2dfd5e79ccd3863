package validators

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateCarRequest struct {
	Brand           string  `json:"brand" validate:"required,min=2,max=50"`
	Model           string  `json:"model" validate:"required,min=1,max=50"`
	Year            int     `json:"year" validate:"required,min=1990,max=2030"`
	Category        string  `json:"category" validate:"omitempty,max=50"`
	SeatingCapacity int     `json:"seating_capacity" validate:"omitempty,min=2,max=12"`
	FuelType        string  `json:"fuel_type" validate:"omitempty,oneof=petrol diesel electric hybrid cng"`
	Transmission    string  `json:"transmission" validate:"omitempty,oneof=manual automatic"`
	PricePerDay     float64 `json:"price_per_day" validate:"required,gt=0"`
	Location        string  `json:"location" validate:"required,max=100"`
	Description     string  `json:"description" validate:"omitempty,max=1000"`
	Image           string  `json:"image" validate:"omitempty,url"`
}

type UpdateCarRequest struct {
	Brand           string   `json:"brand" validate:"omitempty,min=2,max=50"`
	Model           string   `json:"model" validate:"omitempty,min=1,max=50"`
	Year            *int     `json:"year" validate:"omitempty,min=1990,max=2030"`
	Category        string   `json:"category" validate:"omitempty,max=50"`
	SeatingCapacity *int     `json:"seating_capacity" validate:"omitempty,min=2,max=12"`
	FuelType        string   `json:"fuel_type" validate:"omitempty,oneof=petrol diesel electric hybrid cng"`
	Transmission    string   `json:"transmission" validate:"omitempty,oneof=manual automatic"`
	PricePerDay     *float64 `json:"price_per_day" validate:"omitempty,gt=0"`
	Location        string   `json:"location" validate:"omitempty,max=100"`
	Description     string   `json:"description" validate:"omitempty,max=1000"`
	Image           string   `json:"image" validate:"omitempty,url"`
	IsAvailable     *bool    `json:"is_available"`
}

type ApproveCarRequest struct {
	Approved bool `json:"approved"`
}

type AttachCouponRequest struct {
	CouponID *primitive.ObjectID `json:"coupon_id"`
}
