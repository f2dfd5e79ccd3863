package interfaces

import (
	"context"
	"time"

	"github.com/sshrey15/car-rental-goa-backend/internal/models"
	"github.com/sshrey15/car-rental-goa-backend/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Availability queries
	CountOverlapping(ctx context.Context, carID primitive.ObjectID, pickupDate, returnDate time.Time, excludeID *primitive.ObjectID) (int64, error)

	// Listing queries
	GetByUserID(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	GetByCarID(ctx context.Context, carID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	GetAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Booking, int64, error)

	// Payment correlation
	GetByOrderID(ctx context.Context, orderID string) (*models.Booking, error)
	GetByPaymentID(ctx context.Context, paymentID string) (*models.Booking, error)

	// Conditional transitions. Each returns true when the guard matched
	// and the document was updated, false when it was already past the
	// guarded state.
	MarkPaid(ctx context.Context, id primitive.ObjectID, paymentID, signature string, paidAt time.Time) (bool, error)
	MarkPaidByOrderID(ctx context.Context, orderID, paymentID string, paidAt time.Time) (bool, error)
	MarkFailedByOrderID(ctx context.Context, orderID string) (bool, error)
	MarkRefundedByPaymentID(ctx context.Context, paymentID string) (bool, error)
	MarkCouponRedeemed(ctx context.Context, id primitive.ObjectID) (bool, error)

	// Reporting
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.BookingStatus) (int64, error)
	TotalRevenue(ctx context.Context) (float64, error)
}
