package services

import (
	"context"

	"github.com/sshrey15/car-rental-goa-backend/internal/models"
	"github.com/sshrey15/car-rental-goa-backend/internal/repositories/interfaces"
)

// DashboardStats is the admin overview of the marketplace.
type DashboardStats struct {
	TotalBookings     int64   `json:"total_bookings"`
	PendingBookings   int64   `json:"pending_bookings"`
	ConfirmedBookings int64   `json:"confirmed_bookings"`
	CancelledBookings int64   `json:"cancelled_bookings"`
	TotalCars         int64   `json:"total_cars"`
	TotalUsers        int64   `json:"total_users"`
	TotalCoupons      int64   `json:"total_coupons"`
	TotalRevenue      float64 `json:"total_revenue"`
}

type AdminService interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
}

type adminService struct {
	bookingRepo interfaces.BookingRepository
	carRepo     interfaces.CarRepository
	userRepo    interfaces.UserRepository
	couponRepo  interfaces.CouponRepository
}

func NewAdminService(bookingRepo interfaces.BookingRepository, carRepo interfaces.CarRepository, userRepo interfaces.UserRepository, couponRepo interfaces.CouponRepository) AdminService {
	return &adminService{
		bookingRepo: bookingRepo,
		carRepo:     carRepo,
		userRepo:    userRepo,
		couponRepo:  couponRepo,
	}
}

func (s *adminService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.TotalBookings, err = s.bookingRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.PendingBookings, err = s.bookingRepo.CountByStatus(ctx, models.BookingStatusPending); err != nil {
		return nil, err
	}
	if stats.ConfirmedBookings, err = s.bookingRepo.CountByStatus(ctx, models.BookingStatusConfirmed); err != nil {
		return nil, err
	}
	if stats.CancelledBookings, err = s.bookingRepo.CountByStatus(ctx, models.BookingStatusCancelled); err != nil {
		return nil, err
	}
	if stats.TotalCars, err = s.carRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalCoupons, err = s.couponRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalRevenue, err = s.bookingRepo.TotalRevenue(ctx); err != nil {
		return nil, err
	}

	return stats, nil
}
