package services

import (
	"math"
	"time"

	"github.com/sshrey15/car-rental-goa-backend/internal/models"
	"github.com/sshrey15/car-rental-goa-backend/internal/utils"
)

// Quote is a fully priced rental: the undiscounted total, the discount a
// coupon contributed and the amount the renter actually owes.
type Quote struct {
	Days           int     `json:"days"`
	OriginalPrice  float64 `json:"original_price"`
	DiscountAmount float64 `json:"discount_amount"`
	FinalPrice     float64 `json:"final_price"`
}

// RentalDays is the number of billable days between pickup and return.
// Partial days bill as whole days, so a 25 hour rental costs two days.
func RentalDays(pickupDate, returnDate time.Time) (int, error) {
	if !returnDate.After(pickupDate) {
		return 0, ErrInvalidDateRange
	}

	days := int(math.Ceil(returnDate.Sub(pickupDate).Hours() / 24))
	if days < 1 {
		days = 1
	}

	return days, nil
}

// ComputeQuote prices a rental at the car's daily rate, then applies the
// resolved coupon. Percentage discounts are capped by the coupon's
// max discount; no discount can push the final price below zero.
func ComputeQuote(pricePerDay float64, pickupDate, returnDate time.Time, coupon *models.Coupon) (*Quote, error) {
	days, err := RentalDays(pickupDate, returnDate)
	if err != nil {
		return nil, err
	}

	original := pricePerDay * float64(days)

	var discount float64
	if coupon != nil {
		switch coupon.DiscountType {
		case models.DiscountTypePercentage:
			discount = original * coupon.DiscountValue / 100
			if coupon.MaxDiscount != nil && discount > *coupon.MaxDiscount {
				discount = *coupon.MaxDiscount
			}
		case models.DiscountTypeFixed:
			discount = coupon.DiscountValue
		}
	}

	// The discount is reported as computed; only the price owed is floored.
	final := original - discount
	if final < 0 {
		final = 0
	}

	return &Quote{
		Days:           days,
		OriginalPrice:  original,
		DiscountAmount: discount,
		FinalPrice:     final,
	}, nil
}

// PartialAmount is the upfront half of the final price, rounded up to the
// next whole rupee so the two halves never undershoot the total.
func PartialAmount(finalPrice float64) float64 {
	return math.Ceil(finalPrice / 2)
}

// ToPaise converts a rupee amount to paise for the gateway boundary.
func ToPaise(amount float64) int64 {
	return int64(math.Round(amount * utils.PaiseMultiplier))
}

// FromPaise converts a gateway paise amount back to rupees.
func FromPaise(amount int64) float64 {
	return float64(amount) / utils.PaiseMultiplier
}
