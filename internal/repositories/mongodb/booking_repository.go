package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/sshrey15/car-rental-goa-backend/internal/models"
	"github.com/sshrey15/car-rental-goa-backend/internal/repositories/interfaces"
	"github.com/sshrey15/car-rental-goa-backend/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type bookingRepository struct {
	collection *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) interfaces.BookingRepository {
	return &bookingRepository{
		collection: db.Collection("bookings"),
	}
}

// Basic CRUD operations
func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	booking.ID = primitive.NewObjectID()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	var booking models.Booking
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("booking not found")
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &booking, nil
}

func (r *bookingRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	return nil
}

// Availability queries

// CountOverlapping counts bookings for the car whose date range intersects
// [pickupDate, returnDate], both boundaries inclusive. Only pending and
// confirmed bookings block; excludeID lets a booking skip itself when it is
// re-checked during confirmation.
func (r *bookingRepository) CountOverlapping(ctx context.Context, carID primitive.ObjectID, pickupDate, returnDate time.Time, excludeID *primitive.ObjectID) (int64, error) {
	filter := bson.M{
		"car_id": carID,
		"status": bson.M{"$in": []models.BookingStatus{
			models.BookingStatusPending,
			models.BookingStatusConfirmed,
		}},
		"pickup_date": bson.M{"$lte": returnDate},
		"return_date": bson.M{"$gte": pickupDate},
	}
	if excludeID != nil {
		filter["_id"] = bson.M{"$ne": *excludeID}
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count overlapping bookings: %w", err)
	}

	return count, nil
}

// Listing queries
func (r *bookingRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return r.findPaginated(ctx, bson.M{"user_id": userID}, params)
}

func (r *bookingRepository) GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return r.findPaginated(ctx, bson.M{"owner_id": ownerID}, params)
}

func (r *bookingRepository) GetByCarID(ctx context.Context, carID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return r.findPaginated(ctx, bson.M{"car_id": carID}, params)
}

func (r *bookingRepository) GetAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return r.findPaginated(ctx, bson.M{}, params)
}

func (r *bookingRepository) findPaginated(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, total, nil
}

// Payment correlation
func (r *bookingRepository) GetByOrderID(ctx context.Context, orderID string) (*models.Booking, error) {
	var booking models.Booking
	err := r.collection.FindOne(ctx, bson.M{"razorpay_order_id": orderID}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("booking not found")
		}
		return nil, fmt.Errorf("failed to get booking by order: %w", err)
	}

	return &booking, nil
}

func (r *bookingRepository) GetByPaymentID(ctx context.Context, paymentID string) (*models.Booking, error) {
	var booking models.Booking
	err := r.collection.FindOne(ctx, bson.M{"razorpay_payment_id": paymentID}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("booking not found")
		}
		return nil, fmt.Errorf("failed to get booking by payment: %w", err)
	}

	return &booking, nil
}

// Conditional transitions

// MarkPaid records a verified payment. The payment_status guard keeps a
// replayed verification from rewriting an outcome that already settled.
func (r *bookingRepository) MarkPaid(ctx context.Context, id primitive.ObjectID, paymentID, signature string, paidAt time.Time) (bool, error) {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{
			"_id":            id,
			"payment_status": models.PaymentStatusPending,
		},
		bson.M{"$set": bson.M{
			"payment_status":      models.PaymentStatusPaid,
			"razorpay_payment_id": paymentID,
			"razorpay_signature":  signature,
			"paid_at":             paidAt,
			"updated_at":          time.Now(),
		}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark booking paid: %w", err)
	}

	return result.ModifiedCount > 0, nil
}

func (r *bookingRepository) MarkPaidByOrderID(ctx context.Context, orderID, paymentID string, paidAt time.Time) (bool, error) {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{
			"razorpay_order_id": orderID,
			"payment_status":    bson.M{"$ne": models.PaymentStatusPaid},
		},
		bson.M{"$set": bson.M{
			"payment_status":      models.PaymentStatusPaid,
			"razorpay_payment_id": paymentID,
			"paid_at":             paidAt,
			"updated_at":          time.Now(),
		}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark booking paid: %w", err)
	}

	return result.ModifiedCount > 0, nil
}

func (r *bookingRepository) MarkFailedByOrderID(ctx context.Context, orderID string) (bool, error) {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{
			"razorpay_order_id": orderID,
			"payment_status":    models.PaymentStatusPending,
		},
		bson.M{"$set": bson.M{
			"payment_status": models.PaymentStatusFailed,
			"updated_at":     time.Now(),
		}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark booking failed: %w", err)
	}

	return result.ModifiedCount > 0, nil
}

func (r *bookingRepository) MarkRefundedByPaymentID(ctx context.Context, paymentID string) (bool, error) {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{
			"razorpay_payment_id": paymentID,
			"payment_status":      bson.M{"$ne": models.PaymentStatusRefunded},
		},
		bson.M{"$set": bson.M{
			"payment_status": models.PaymentStatusRefunded,
			"updated_at":     time.Now(),
		}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark booking refunded: %w", err)
	}

	return result.ModifiedCount > 0, nil
}

// MarkCouponRedeemed flips the redemption flag exactly once. The first
// caller gets true; everyone after gets false, so the coupon usage count
// is only ever incremented on behalf of a single payment event.
func (r *bookingRepository) MarkCouponRedeemed(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{
			"_id":             id,
			"coupon_redeemed": false,
		},
		bson.M{"$set": bson.M{
			"coupon_redeemed": true,
			"updated_at":      time.Now(),
		}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark coupon redeemed: %w", err)
	}

	return result.ModifiedCount > 0, nil
}

// Reporting
func (r *bookingRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) CountByStatus(ctx context.Context, status models.BookingStatus) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings by status: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) TotalRevenue(ctx context.Context) (float64, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"payment_status": bson.M{"$in": []models.PaymentStatus{
			models.PaymentStatusPaid,
			models.PaymentStatusRefunded,
		}}}},
		{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$amount_paid"},
		}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to get revenue: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("failed to decode revenue: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}

	return results[0].Total, nil
}
