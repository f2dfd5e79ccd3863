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

type CouponService interface {
	// Resolve picks the coupon for a booking: an explicit code wins over the
	// car's attached coupon, an unusable code falls back to the attached one.
	Resolve(ctx context.Context, code string, carCouponID *primitive.ObjectID, bookingAmount float64) (*models.Coupon, error)

	// RedeemForBooking counts the booking's coupon as used, at most once per
	// booking regardless of how many payment events arrive.
	RedeemForBooking(ctx context.Context, booking *models.Booking) error

	// Administration
	CreateCoupon(ctx context.Context, coupon *models.Coupon) error
	GetCoupon(ctx context.Context, id primitive.ObjectID) (*models.Coupon, error)
	UpdateCoupon(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	DeleteCoupon(ctx context.Context, id primitive.ObjectID) error
	ListCoupons(ctx context.Context, params *utils.PaginationParams) ([]*models.Coupon, int64, error)
	ListActiveCoupons(ctx context.Context) ([]*models.Coupon, error)
}

type couponService struct {
	couponRepo  interfaces.CouponRepository
	bookingRepo interfaces.BookingRepository
	logger      *logger.Logger
}

func NewCouponService(couponRepo interfaces.CouponRepository, bookingRepo interfaces.BookingRepository, logger *logger.Logger) CouponService {
	return &couponService{
		couponRepo:  couponRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

func (s *couponService) Resolve(ctx context.Context, code string, carCouponID *primitive.ObjectID, bookingAmount float64) (*models.Coupon, error) {
	now := time.Now()

	if code != "" {
		coupon, err := s.couponRepo.GetByCode(ctx, utils.NormalizeCouponCode(code))
		if err == nil && coupon.ValidAt(now) {
			if coupon.Exhausted() {
				return nil, ErrCouponLimitReached
			}
			if bookingAmount < coupon.MinBookingAmount {
				// The code is real and overrides the car's coupon, but the
				// booking is too small for it. The booking proceeds at full
				// price rather than being blocked.
				return nil, nil
			}
			return coupon, nil
		}
		// A code that does not resolve to a usable coupon falls through to
		// the car's attached coupon rather than failing the booking.
	}

	if carCouponID == nil {
		return nil, nil
	}

	coupon, err := s.couponRepo.GetByID(ctx, *carCouponID)
	if err != nil {
		s.logger.WithError(err).WithField("coupon_id", carCouponID.Hex()).Warn("attached coupon lookup failed")
		return nil, nil
	}
	if !coupon.ValidAt(now) || coupon.Exhausted() || bookingAmount < coupon.MinBookingAmount {
		return nil, nil
	}

	return coupon, nil
}

func (s *couponService) RedeemForBooking(ctx context.Context, booking *models.Booking) error {
	if booking.AppliedCoupon == nil {
		return nil
	}

	flipped, err := s.bookingRepo.MarkCouponRedeemed(ctx, booking.ID)
	if err != nil {
		return err
	}
	if !flipped {
		// Already redeemed by an earlier payment event.
		return nil
	}

	bumped, err := s.couponRepo.IncrementUsage(ctx, *booking.AppliedCoupon)
	if err != nil {
		return err
	}
	if !bumped {
		// The limit was reached between resolution and redemption. The
		// booking keeps its discount; the coupon simply stops matching
		// future bookings.
		s.logger.WithBookingID(booking.ID).WithField("coupon_id", booking.AppliedCoupon.Hex()).Warn("coupon exhausted before redemption")
	}

	return nil
}

// Administration

func (s *couponService) CreateCoupon(ctx context.Context, coupon *models.Coupon) error {
	coupon.Code = utils.NormalizeCouponCode(coupon.Code)
	coupon.UsedCount = 0

	if err := s.couponRepo.Create(ctx, coupon); err != nil {
		return err
	}

	s.logger.WithField("coupon_code", coupon.Code).Info("coupon created")
	return nil
}

func (s *couponService) GetCoupon(ctx context.Context, id primitive.ObjectID) (*models.Coupon, error) {
	return s.couponRepo.GetByID(ctx, id)
}

func (s *couponService) UpdateCoupon(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	if code, ok := updates["code"].(string); ok {
		updates["code"] = utils.NormalizeCouponCode(code)
	}
	return s.couponRepo.Update(ctx, id, updates)
}

func (s *couponService) DeleteCoupon(ctx context.Context, id primitive.ObjectID) error {
	return s.couponRepo.Delete(ctx, id)
}

func (s *couponService) ListCoupons(ctx context.Context, params *utils.PaginationParams) ([]*models.Coupon, int64, error) {
	return s.couponRepo.GetAll(ctx, params)
}

func (s *couponService) ListActiveCoupons(ctx context.Context) ([]*models.Coupon, error) {
	return s.couponRepo.GetActive(ctx)
}
