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

type locationRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewLocationRepository(db *mongo.Database, cache services.CacheService) interfaces.LocationRepository {
	return &locationRepository{
		collection: db.Collection("locations"),
		cache:      cache,
	}
}

func (r *locationRepository) Create(ctx context.Context, location *models.Location) error {
	location.ID = primitive.NewObjectID()
	location.CreatedAt = time.Now()
	location.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, location)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("location already exists")
		}
		return fmt.Errorf("failed to create location: %w", err)
	}

	r.cache.Delete(ctx, utils.CacheKeyActiveLocations)

	return nil
}

func (r *locationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Location, error) {
	var location models.Location
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&location)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("location not found")
		}
		return nil, fmt.Errorf("failed to get location: %w", err)
	}

	return &location, nil
}

func (r *locationRepository) GetByName(ctx context.Context, name string) (*models.Location, error) {
	var location models.Location
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&location)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("location not found")
		}
		return nil, fmt.Errorf("failed to get location by name: %w", err)
	}

	return &location, nil
}

func (r *locationRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update location: %w", err)
	}

	r.cache.Delete(ctx, utils.CacheKeyActiveLocations)

	return nil
}

func (r *locationRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}

	r.cache.Delete(ctx, utils.CacheKeyActiveLocations)

	return nil
}

func (r *locationRepository) GetAll(ctx context.Context) ([]*models.Location, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to get locations: %w", err)
	}
	defer cursor.Close(ctx)

	var locations []*models.Location
	if err := cursor.All(ctx, &locations); err != nil {
		return nil, fmt.Errorf("failed to decode locations: %w", err)
	}

	return locations, nil
}

func (r *locationRepository) GetActive(ctx context.Context) ([]*models.Location, error) {
	var cached []*models.Location
	if err := r.cache.Get(ctx, utils.CacheKeyActiveLocations, &cached); err == nil && len(cached) > 0 {
		return cached, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"is_active": true})
	if err != nil {
		return nil, fmt.Errorf("failed to get active locations: %w", err)
	}
	defer cursor.Close(ctx)

	var locations []*models.Location
	if err := cursor.All(ctx, &locations); err != nil {
		return nil, fmt.Errorf("failed to decode locations: %w", err)
	}

	r.cache.Set(ctx, utils.CacheKeyActiveLocations, locations, 30*time.Minute)

	return locations, nil
}
