package interfaces

import (
	"context"

	"github.com/sshrey15/car-rental-goa-backend/internal/models"
	"github.com/sshrey15/car-rental-goa-backend/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CouponRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, coupon *models.Coupon) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Coupon, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Code lookup. GetByCode expects an already normalized code.
	GetByCode(ctx context.Context, code string) (*models.Coupon, error)

	// IncrementUsage atomically bumps used_count while the usage limit
	// still allows it. Returns false when the coupon is exhausted.
	IncrementUsage(ctx context.Context, id primitive.ObjectID) (bool, error)

	// Listing
	GetAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Coupon, int64, error)
	GetActive(ctx context.Context) ([]*models.Coupon, error)
	Count(ctx context.Context) (int64, error)
}
