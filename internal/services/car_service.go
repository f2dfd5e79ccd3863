package services

import (
	"context"

	"github.com/sshrey15/car-rental-goa-backend/internal/models"
	"github.com/sshrey15/car-rental-goa-backend/internal/repositories/interfaces"
	"github.com/sshrey15/car-rental-goa-backend/internal/utils"
	"github.com/sshrey15/car-rental-goa-backend/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CarService interface {
	CreateCar(ctx context.Context, ownerID primitive.ObjectID, car *models.Car) (*models.Car, error)
	GetCar(ctx context.Context, id primitive.ObjectID) (*models.Car, error)
	UpdateCar(ctx context.Context, id, actorID primitive.ObjectID, role models.UserRole, updates map[string]interface{}) (*models.Car, error)
	DeleteCar(ctx context.Context, id, actorID primitive.ObjectID, role models.UserRole) error

	ListCars(ctx context.Context, params *utils.PaginationParams) ([]*models.Car, int64, error)
	ListOwnerCars(ctx context.Context, ownerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Car, int64, error)

	// Moderation
	ApproveCar(ctx context.Context, id primitive.ObjectID, approved bool) error
	ListPendingCars(ctx context.Context, params *utils.PaginationParams) ([]*models.Car, int64, error)

	// AttachCoupon pins a coupon to a car so every booking of that car gets
	// the discount unless the renter overrides it with a code.
	AttachCoupon(ctx context.Context, carID, actorID primitive.ObjectID, role models.UserRole, couponID *primitive.ObjectID) error
}

type carService struct {
	carRepo    interfaces.CarRepository
	couponRepo interfaces.CouponRepository
	logger     *logger.Logger
}

func NewCarService(carRepo interfaces.CarRepository, couponRepo interfaces.CouponRepository, logger *logger.Logger) CarService {
	return &carService{
		carRepo:    carRepo,
		couponRepo: couponRepo,
		logger:     logger,
	}
}

func (s *carService) CreateCar(ctx context.Context, ownerID primitive.ObjectID, car *models.Car) (*models.Car, error) {
	car.OwnerID = ownerID
	car.IsAvailable = true
	// New listings wait for an admin to approve them.
	car.IsApproved = false

	if err := s.carRepo.Create(ctx, car); err != nil {
		return nil, err
	}

	s.logger.WithCarID(car.ID).WithUserID(ownerID).Info("car listed")

	return car, nil
}

func (s *carService) GetCar(ctx context.Context, id primitive.ObjectID) (*models.Car, error) {
	car, err := s.carRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrCarNotFound
	}
	return car, nil
}

func (s *carService) UpdateCar(ctx context.Context, id, actorID primitive.ObjectID, role models.UserRole, updates map[string]interface{}) (*models.Car, error) {
	car, err := s.carRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrCarNotFound
	}
	if role != models.UserRoleAdmin && car.OwnerID != actorID {
		return nil, ErrCarNotFound
	}

	// Owners cannot self-approve.
	if role != models.UserRoleAdmin {
		delete(updates, "is_approved")
	}
	delete(updates, "owner_id")

	if err := s.carRepo.Update(ctx, id, updates); err != nil {
		return nil, err
	}

	return s.carRepo.GetByID(ctx, id)
}

func (s *carService) DeleteCar(ctx context.Context, id, actorID primitive.ObjectID, role models.UserRole) error {
	car, err := s.carRepo.GetByID(ctx, id)
	if err != nil {
		return ErrCarNotFound
	}
	if role != models.UserRoleAdmin && car.OwnerID != actorID {
		return ErrCarNotFound
	}

	return s.carRepo.Delete(ctx, id)
}

func (s *carService) ListCars(ctx context.Context, params *utils.PaginationParams) ([]*models.Car, int64, error) {
	return s.carRepo.GetAll(ctx, params)
}

func (s *carService) ListOwnerCars(ctx context.Context, ownerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Car, int64, error) {
	return s.carRepo.GetByOwnerID(ctx, ownerID, params)
}

func (s *carService) ApproveCar(ctx context.Context, id primitive.ObjectID, approved bool) error {
	if _, err := s.carRepo.GetByID(ctx, id); err != nil {
		return ErrCarNotFound
	}

	if err := s.carRepo.SetApproval(ctx, id, approved); err != nil {
		return err
	}

	s.logger.WithCarID(id).WithField("approved", approved).Info("car approval changed")
	return nil
}

func (s *carService) ListPendingCars(ctx context.Context, params *utils.PaginationParams) ([]*models.Car, int64, error) {
	return s.carRepo.GetPendingApproval(ctx, params)
}

func (s *carService) AttachCoupon(ctx context.Context, carID, actorID primitive.ObjectID, role models.UserRole, couponID *primitive.ObjectID) error {
	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		return ErrCarNotFound
	}
	if role != models.UserRoleAdmin && car.OwnerID != actorID {
		return ErrCarNotFound
	}

	if couponID != nil {
		if _, err := s.couponRepo.GetByID(ctx, *couponID); err != nil {
			return err
		}
	}

	return s.carRepo.Update(ctx, carID, map[string]interface{}{
		"applied_coupon": couponID,
	})
}
