package interfaces

import (
	"context"

	"github.com/sshrey15/car-rental-goa-backend/internal/models"
	"github.com/sshrey15/car-rental-goa-backend/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CarRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, car *models.Car) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Car, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Catalog queries
	GetAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Car, int64, error)
	GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Car, int64, error)
	GetAvailableByLocation(ctx context.Context, location string) ([]*models.Car, error)
	GetAvailable(ctx context.Context) ([]*models.Car, error)

	// Moderation
	SetApproval(ctx context.Context, id primitive.ObjectID, approved bool) error
	GetPendingApproval(ctx context.Context, params *utils.PaginationParams) ([]*models.Car, int64, error)

	// Reporting
	Count(ctx context.Context) (int64, error)
}
