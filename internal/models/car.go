package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Car struct {
	ID              primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	OwnerID         primitive.ObjectID  `json:"owner_id" bson:"owner_id" validate:"required"`
	Brand           string              `json:"brand" bson:"brand" validate:"required"`
	Model           string              `json:"model" bson:"model" validate:"required"`
	Year            int                 `json:"year" bson:"year" validate:"required"`
	Category        string              `json:"category" bson:"category"`
	SeatingCapacity int                 `json:"seating_capacity" bson:"seating_capacity"`
	FuelType        string              `json:"fuel_type" bson:"fuel_type"`
	Transmission    string              `json:"transmission" bson:"transmission"`
	PricePerDay     float64             `json:"price_per_day" bson:"price_per_day" validate:"required,gt=0"`
	Location        string              `json:"location" bson:"location" validate:"required"`
	Description     string              `json:"description" bson:"description"`
	Image           string              `json:"image" bson:"image"`
	IsAvailable     bool                `json:"is_available" bson:"is_available" default:"true"`
	IsApproved      bool                `json:"is_approved" bson:"is_approved" default:"false"`
	AppliedCoupon   *primitive.ObjectID `json:"applied_coupon" bson:"applied_coupon"`
	CreatedAt       time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at" bson:"updated_at"`
}

// CarAvailability pairs a car with the result of a date-range check.
type CarAvailability struct {
	Car         *Car `json:"car"`
	IsAvailable bool `json:"is_available"`
}
