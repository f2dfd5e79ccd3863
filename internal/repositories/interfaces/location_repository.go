package interfaces

import (
	"context"

	"github.com/sshrey15/car-rental-goa-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LocationRepository interface {
	Create(ctx context.Context, location *models.Location) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Location, error)
	GetByName(ctx context.Context, name string) (*models.Location, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	GetAll(ctx context.Context) ([]*models.Location, error)
	GetActive(ctx context.Context) ([]*models.Location, error)
}
