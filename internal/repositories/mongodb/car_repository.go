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

type carRepository struct {
	collection *mongo.Collection
}

func NewCarRepository(db *mongo.Database) interfaces.CarRepository {
	return &carRepository{
		collection: db.Collection("cars"),
	}
}

// Basic CRUD operations
func (r *carRepository) Create(ctx context.Context, car *models.Car) error {
	car.ID = primitive.NewObjectID()
	car.CreatedAt = time.Now()
	car.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, car)
	if err != nil {
		return fmt.Errorf("failed to create car: %w", err)
	}

	return nil
}

func (r *carRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Car, error) {
	var car models.Car
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&car)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("car not found")
		}
		return nil, fmt.Errorf("failed to get car: %w", err)
	}

	return &car, nil
}

func (r *carRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update car: %w", err)
	}

	return nil
}

func (r *carRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete car: %w", err)
	}

	return nil
}

// Catalog queries
func (r *carRepository) GetAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Car, int64, error) {
	return r.findPaginated(ctx, bson.M{}, params)
}

func (r *carRepository) GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Car, int64, error) {
	return r.findPaginated(ctx, bson.M{"owner_id": ownerID}, params)
}

func (r *carRepository) GetAvailableByLocation(ctx context.Context, location string) ([]*models.Car, error) {
	return r.findAvailable(ctx, bson.M{
		"location":     location,
		"is_available": true,
		"is_approved":  true,
	})
}

func (r *carRepository) GetAvailable(ctx context.Context) ([]*models.Car, error) {
	return r.findAvailable(ctx, bson.M{
		"is_available": true,
		"is_approved":  true,
	})
}

func (r *carRepository) findAvailable(ctx context.Context, filter bson.M) ([]*models.Car, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get cars: %w", err)
	}
	defer cursor.Close(ctx)

	var cars []*models.Car
	if err := cursor.All(ctx, &cars); err != nil {
		return nil, fmt.Errorf("failed to decode cars: %w", err)
	}

	return cars, nil
}

func (r *carRepository) findPaginated(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Car, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count cars: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get cars: %w", err)
	}
	defer cursor.Close(ctx)

	var cars []*models.Car
	if err := cursor.All(ctx, &cars); err != nil {
		return nil, 0, fmt.Errorf("failed to decode cars: %w", err)
	}

	return cars, total, nil
}

// Moderation
func (r *carRepository) SetApproval(ctx context.Context, id primitive.ObjectID, approved bool) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"is_approved": approved,
			"updated_at":  time.Now(),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to set car approval: %w", err)
	}

	return nil
}

func (r *carRepository) GetPendingApproval(ctx context.Context, params *utils.PaginationParams) ([]*models.Car, int64, error) {
	return r.findPaginated(ctx, bson.M{"is_approved": false}, params)
}

// Reporting
func (r *carRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count cars: %w", err)
	}

	return count, nil
}
