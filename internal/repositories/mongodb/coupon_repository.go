package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/sshrey15/car-rental-goa-backend/internal/models"
	"github.com/sshrey15/car-rental-goa-backend/internal/repositories/interfaces"
	"github.com/sshrey15/car-rental-goa-backend/internal/services"
	"github.com/sshrey15/car-rental-goa-backend/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type couponRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewCouponRepository(db *mongo.Database, cache services.CacheService) interfaces.CouponRepository {
	return &couponRepository{
		collection: db.Collection("coupons"),
		cache:      cache,
	}
}

// Basic CRUD operations
func (r *couponRepository) Create(ctx context.Context, coupon *models.Coupon) error {
	coupon.ID = primitive.NewObjectID()
	coupon.CreatedAt = time.Now()
	coupon.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, coupon)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("coupon code already exists")
		}
		return fmt.Errorf("failed to create coupon: %w", err)
	}

	return nil
}

func (r *couponRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Coupon, error) {
	// Try cache first
	if coupon := r.getCouponFromCache(ctx, fmt.Sprintf(utils.CacheKeyCoupon, id.Hex())); coupon != nil {
		return coupon, nil
	}

	var coupon models.Coupon
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&coupon)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("coupon not found")
		}
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}

	r.cacheCoupon(ctx, &coupon)

	return &coupon, nil
}

func (r *couponRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update coupon: %w", err)
	}

	r.invalidateCouponCache(ctx, id)

	return nil
}

func (r *couponRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete coupon: %w", err)
	}

	r.invalidateCouponCache(ctx, id)

	return nil
}

// Code lookup
func (r *couponRepository) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	if coupon := r.getCouponFromCache(ctx, fmt.Sprintf(utils.CacheKeyCouponCode, code)); coupon != nil {
		return coupon, nil
	}

	var coupon models.Coupon
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&coupon)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("coupon not found")
		}
		return nil, fmt.Errorf("failed to get coupon by code: %w", err)
	}

	r.cacheCoupon(ctx, &coupon)

	return &coupon, nil
}

// IncrementUsage bumps used_count only while the document still has uses
// left. The filter carries the cap so concurrent redeemers cannot push a
// capped coupon past its limit; uncapped coupons always match.
func (r *couponRepository) IncrementUsage(ctx context.Context, id primitive.ObjectID) (bool, error) {
	filter := bson.M{
		"_id": id,
		"$or": []bson.M{
			{"usage_limit": nil},
			{"$expr": bson.M{"$lt": []string{"$used_count", "$usage_limit"}}},
		},
	}

	result, err := r.collection.UpdateOne(
		ctx,
		filter,
		bson.M{
			"$inc": bson.M{"used_count": 1},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return false, fmt.Errorf("failed to increment coupon usage: %w", err)
	}

	r.invalidateCouponCache(ctx, id)

	return result.ModifiedCount > 0, nil
}

// Listing
func (r *couponRepository) GetAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Coupon, int64, error) {
	filter := bson.M{}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count coupons: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get coupons: %w", err)
	}
	defer cursor.Close(ctx)

	var coupons []*models.Coupon
	if err := cursor.All(ctx, &coupons); err != nil {
		return nil, 0, fmt.Errorf("failed to decode coupons: %w", err)
	}

	return coupons, total, nil
}

func (r *couponRepository) GetActive(ctx context.Context) ([]*models.Coupon, error) {
	now := time.Now()
	cursor, err := r.collection.Find(ctx, bson.M{
		"is_active":   true,
		"valid_from":  bson.M{"$lte": now},
		"valid_until": bson.M{"$gte": now},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get active coupons: %w", err)
	}
	defer cursor.Close(ctx)

	var coupons []*models.Coupon
	if err := cursor.All(ctx, &coupons); err != nil {
		return nil, fmt.Errorf("failed to decode coupons: %w", err)
	}

	return coupons, nil
}

func (r *couponRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count coupons: %w", err)
	}

	return count, nil
}

// Cache helpers
func (r *couponRepository) cacheCoupon(ctx context.Context, coupon *models.Coupon) {
	r.cache.Set(ctx, fmt.Sprintf(utils.CacheKeyCoupon, coupon.ID.Hex()), coupon, 10*time.Minute)
	r.cache.Set(ctx, fmt.Sprintf(utils.CacheKeyCouponCode, coupon.Code), coupon, 10*time.Minute)
}

func (r *couponRepository) getCouponFromCache(ctx context.Context, key string) *models.Coupon {
	var coupon models.Coupon
	if err := r.cache.Get(ctx, key, &coupon); err != nil {
		return nil
	}
	return &coupon
}

func (r *couponRepository) invalidateCouponCache(ctx context.Context, id primitive.ObjectID) {
	var coupon models.Coupon
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&coupon)
	keys := []string{fmt.Sprintf(utils.CacheKeyCoupon, id.Hex())}
	if err == nil {
		keys = append(keys, fmt.Sprintf(utils.CacheKeyCouponCode, coupon.Code))
	}
	r.cache.Delete(ctx, keys...)
}
