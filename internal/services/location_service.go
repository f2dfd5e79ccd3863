package services

import (
	"context"

	"github.com/sshrey15/car-rental-goa-backend/internal/models"
	"github.com/sshrey15/car-rental-goa-backend/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LocationService interface {
	CreateLocation(ctx context.Context, location *models.Location) error
	GetLocation(ctx context.Context, id primitive.ObjectID) (*models.Location, error)
	UpdateLocation(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	DeleteLocation(ctx context.Context, id primitive.ObjectID) error
	ListLocations(ctx context.Context) ([]*models.Location, error)
	ListActiveLocations(ctx context.Context) ([]*models.Location, error)
}

type locationService struct {
	locationRepo interfaces.LocationRepository
}

func NewLocationService(locationRepo interfaces.LocationRepository) LocationService {
	return &locationService{locationRepo: locationRepo}
}

func (s *locationService) CreateLocation(ctx context.Context, location *models.Location) error {
	location.IsActive = true
	return s.locationRepo.Create(ctx, location)
}

func (s *locationService) GetLocation(ctx context.Context, id primitive.ObjectID) (*models.Location, error) {
	return s.locationRepo.GetByID(ctx, id)
}

func (s *locationService) UpdateLocation(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return s.locationRepo.Update(ctx, id, updates)
}

func (s *locationService) DeleteLocation(ctx context.Context, id primitive.ObjectID) error {
	return s.locationRepo.Delete(ctx, id)
}

func (s *locationService) ListLocations(ctx context.Context) ([]*models.Location, error) {
	return s.locationRepo.GetAll(ctx)
}

func (s *locationService) ListActiveLocations(ctx context.Context) ([]*models.Location, error) {
	return s.locationRepo.GetActive(ctx)
}
