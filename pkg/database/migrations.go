package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Migration struct {
	Version     int
	Description string
	Up          func(*mongo.Database) error
}

type Migrator struct {
	db         *mongo.Database
	migrations []Migration
}

func NewMigrator(db *mongo.Database) *Migrator {
	return &Migrator{
		db:         db,
		migrations: getMigrations(),
	}
}

func (m *Migrator) Up() error {
	currentVersion, err := m.getCurrentVersion()
	if err != nil {
		return err
	}

	for _, migration := range m.migrations {
		if migration.Version > currentVersion {
			log.Printf("Running migration %d: %s", migration.Version, migration.Description)

			err := migration.Up(m.db)
			if err != nil {
				return fmt.Errorf("migration %d failed: %w", migration.Version, err)
			}

			err = m.updateVersion(migration.Version)
			if err != nil {
				return fmt.Errorf("failed to update migration version: %w", err)
			}
		}
	}

	return nil
}

func (m *Migrator) getCurrentVersion() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var result struct {
		Version int `bson:"version"`
	}

	err := m.db.Collection("migrations").FindOne(
		ctx,
		bson.M{},
		options.FindOne().SetSort(bson.D{{Key: "version", Value: -1}}),
	).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read migration version: %w", err)
	}

	return result.Version, nil
}

func (m *Migrator) updateVersion(version int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := m.db.Collection("migrations").InsertOne(ctx, bson.M{
		"version":    version,
		"applied_at": time.Now(),
	})
	return err
}

func getMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "Create booking indexes",
			Up: func(db *mongo.Database) error {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				_, err := db.Collection("bookings").Indexes().CreateMany(ctx, []mongo.IndexModel{
					{
						// Serves the overlap query: car + blocking statuses + date range.
						Keys: bson.D{
							{Key: "car_id", Value: 1},
							{Key: "status", Value: 1},
							{Key: "pickup_date", Value: 1},
							{Key: "return_date", Value: 1},
						},
					},
					{
						Keys:    bson.D{{Key: "razorpay_order_id", Value: 1}},
						Options: options.Index().SetUnique(true).SetSparse(true),
					},
					{
						Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
					},
					{
						Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}},
					},
				})
				return err
			},
		},
		{
			Version:     2,
			Description: "Create coupon and location indexes",
			Up: func(db *mongo.Database) error {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				_, err := db.Collection("coupons").Indexes().CreateOne(ctx, mongo.IndexModel{
					Keys:    bson.D{{Key: "code", Value: 1}},
					Options: options.Index().SetUnique(true),
				})
				if err != nil {
					return err
				}

				_, err = db.Collection("locations").Indexes().CreateOne(ctx, mongo.IndexModel{
					Keys:    bson.D{{Key: "name", Value: 1}},
					Options: options.Index().SetUnique(true),
				})
				return err
			},
		},
		{
			Version:     3,
			Description: "Create car and user indexes",
			Up: func(db *mongo.Database) error {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				_, err := db.Collection("cars").Indexes().CreateOne(ctx, mongo.IndexModel{
					Keys: bson.D{
						{Key: "location", Value: 1},
						{Key: "is_available", Value: 1},
						{Key: "is_approved", Value: 1},
					},
				})
				if err != nil {
					return err
				}

				_, err = db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
					Keys:    bson.D{{Key: "phone", Value: 1}},
					Options: options.Index().SetUnique(true),
				})
				return err
			},
		},
	}
}
