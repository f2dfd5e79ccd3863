package services

import (
	"context"
	"time"

	"github.com/sshrey15/car-rental-goa-backend/internal/models"
	"github.com/sshrey15/car-rental-goa-backend/internal/repositories/interfaces"
	"github.com/sshrey15/car-rental-goa-backend/internal/utils"
	"github.com/sshrey15/car-rental-goa-backend/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingService interface {
	// Availability
	CheckAvailability(ctx context.Context, carID primitive.ObjectID, pickupDate, returnDate time.Time) (bool, error)
	SearchAvailableCars(ctx context.Context, location string, pickupDate, returnDate time.Time) ([]*models.CarAvailability, error)

	// Lifecycle. CreateBooking is the direct path and consumes the coupon
	// immediately; CreatePendingBooking backs the gateway order flow, where
	// the coupon is consumed only once a payment is verified.
	CreateBooking(ctx context.Context, userID, carID primitive.ObjectID, pickupDate, returnDate time.Time, couponCode string) (*models.Booking, error)
	CreatePendingBooking(ctx context.Context, userID, carID primitive.ObjectID, pickupDate, returnDate time.Time, couponCode string) (*models.Booking, error)
	ChangeStatus(ctx context.Context, bookingID, actorID primitive.ObjectID, role models.UserRole, status models.BookingStatus) (*models.Booking, error)

	// Retrieval
	GetBooking(ctx context.Context, bookingID, actorID primitive.ObjectID, role models.UserRole) (*models.Booking, error)
	GetUserBookings(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	GetOwnerBookings(ctx context.Context, ownerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	GetAllBookings(ctx context.Context, params *utils.PaginationParams) ([]*models.Booking, int64, error)
}

type bookingService struct {
	bookingRepo   interfaces.BookingRepository
	carRepo       interfaces.CarRepository
	couponService CouponService
	locks         *carLocks
	logger        *logger.Logger
}

func NewBookingService(bookingRepo interfaces.BookingRepository, carRepo interfaces.CarRepository, couponService CouponService, logger *logger.Logger) BookingService {
	return &bookingService{
		bookingRepo:   bookingRepo,
		carRepo:       carRepo,
		couponService: couponService,
		locks:         newCarLocks(),
		logger:        logger,
	}
}

// Availability

func (s *bookingService) CheckAvailability(ctx context.Context, carID primitive.ObjectID, pickupDate, returnDate time.Time) (bool, error) {
	if _, err := RentalDays(pickupDate, returnDate); err != nil {
		return false, err
	}

	count, err := s.bookingRepo.CountOverlapping(ctx, carID, pickupDate, returnDate, nil)
	if err != nil {
		return false, err
	}

	return count == 0, nil
}

func (s *bookingService) SearchAvailableCars(ctx context.Context, location string, pickupDate, returnDate time.Time) ([]*models.CarAvailability, error) {
	if _, err := RentalDays(pickupDate, returnDate); err != nil {
		return nil, err
	}

	var cars []*models.Car
	var err error
	if location != "" {
		cars, err = s.carRepo.GetAvailableByLocation(ctx, location)
	} else {
		cars, err = s.carRepo.GetAvailable(ctx)
	}
	if err != nil {
		return nil, err
	}

	results := make([]*models.CarAvailability, 0, len(cars))
	for _, car := range cars {
		count, err := s.bookingRepo.CountOverlapping(ctx, car.ID, pickupDate, returnDate, nil)
		if err != nil {
			return nil, err
		}
		results = append(results, &models.CarAvailability{
			Car:         car,
			IsAvailable: count == 0,
		})
	}

	return results, nil
}

// Lifecycle

func (s *bookingService) CreateBooking(ctx context.Context, userID, carID primitive.ObjectID, pickupDate, returnDate time.Time, couponCode string) (*models.Booking, error) {
	booking, err := s.createPending(ctx, userID, carID, pickupDate, returnDate, couponCode)
	if err != nil {
		return nil, err
	}

	if err := s.couponService.RedeemForBooking(ctx, booking); err != nil {
		s.logger.WithError(err).WithBookingID(booking.ID).Error("coupon redemption failed")
	}

	return booking, nil
}

func (s *bookingService) CreatePendingBooking(ctx context.Context, userID, carID primitive.ObjectID, pickupDate, returnDate time.Time, couponCode string) (*models.Booking, error) {
	return s.createPending(ctx, userID, carID, pickupDate, returnDate, couponCode)
}

func (s *bookingService) createPending(ctx context.Context, userID, carID primitive.ObjectID, pickupDate, returnDate time.Time, couponCode string) (*models.Booking, error) {
	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		return nil, ErrCarNotFound
	}
	if !car.IsAvailable || !car.IsApproved {
		return nil, ErrCarUnavailable
	}

	days, err := RentalDays(pickupDate, returnDate)
	if err != nil {
		return nil, err
	}

	// The lock covers the overlap check and the insert so two renters
	// cannot both see the car as free for the same dates.
	s.locks.Lock(carID.Hex())
	defer s.locks.Unlock(carID.Hex())

	count, err := s.bookingRepo.CountOverlapping(ctx, carID, pickupDate, returnDate, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCarUnavailable
	}

	original := car.PricePerDay * float64(days)
	coupon, err := s.couponService.Resolve(ctx, couponCode, car.AppliedCoupon, original)
	if err != nil {
		return nil, err
	}

	quote, err := ComputeQuote(car.PricePerDay, pickupDate, returnDate, coupon)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		CarID:          carID,
		UserID:         userID,
		OwnerID:        car.OwnerID,
		PickupDate:     pickupDate,
		ReturnDate:     returnDate,
		Status:         models.BookingStatusPending,
		PaymentStatus:  models.PaymentStatusPending,
		OriginalPrice:  quote.OriginalPrice,
		DiscountAmount: quote.DiscountAmount,
		Price:          quote.FinalPrice,
	}
	if coupon != nil {
		booking.AppliedCoupon = &coupon.ID
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.LogBookingEvent(booking.ID, "booking_created", map[string]interface{}{
		"car_id": carID.Hex(),
		"days":   days,
		"price":  quote.FinalPrice,
	})

	return booking, nil
}

func (s *bookingService) ChangeStatus(ctx context.Context, bookingID, actorID primitive.ObjectID, role models.UserRole, status models.BookingStatus) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	// A non-owner probing someone else's booking learns nothing beyond
	// "not found".
	if role != models.UserRoleAdmin && booking.OwnerID != actorID {
		return nil, ErrBookingNotFound
	}

	updates := map[string]interface{}{"status": status}

	if status == models.BookingStatusConfirmed {
		// The dates may have been taken by a competing booking that was
		// confirmed since this one was created.
		count, err := s.bookingRepo.CountOverlapping(ctx, booking.CarID, booking.PickupDate, booking.ReturnDate, &booking.ID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrCarUnavailable
		}
		// confirmed_at records the first confirmation only.
		if booking.ConfirmedAt == nil {
			updates["confirmed_at"] = time.Now()
		}
	}

	if err := s.bookingRepo.Update(ctx, bookingID, updates); err != nil {
		return nil, err
	}

	s.logger.LogBookingEvent(bookingID, "booking_status_changed", map[string]interface{}{
		"status": string(status),
	})

	return s.bookingRepo.GetByID(ctx, bookingID)
}

// Retrieval

func (s *bookingService) GetBooking(ctx context.Context, bookingID, actorID primitive.ObjectID, role models.UserRole) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	if role != models.UserRoleAdmin && booking.UserID != actorID && booking.OwnerID != actorID {
		return nil, ErrBookingNotFound
	}

	return booking, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return s.bookingRepo.GetByUserID(ctx, userID, params)
}

func (s *bookingService) GetOwnerBookings(ctx context.Context, ownerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return s.bookingRepo.GetByOwnerID(ctx, ownerID, params)
}

func (s *bookingService) GetAllBookings(ctx context.Context, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return s.bookingRepo.GetAll(ctx, params)
}
