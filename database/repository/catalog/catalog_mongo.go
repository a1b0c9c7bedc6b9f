package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"dineflow/database"
	"dineflow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCatalogRepo implements CatalogRepository using MongoDB.
type MongoCatalogRepo struct {
	restaurants *mongo.Collection
	tables      *mongo.Collection
}

// NewMongoCatalogRepo creates a CatalogRepository backed by the
// "restaurants" and "tables" collections.
func NewMongoCatalogRepo() CatalogRepository {
	repo := &MongoCatalogRepo{
		restaurants: database.Collection("restaurants"),
		tables:      database.Collection("tables"),
	}
	if err := repo.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("catalog repo: failed to ensure indexes: %v", err))
	}
	return repo
}

func (r *MongoCatalogRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.tables.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "restaurant_id", Value: 1}, {Key: "is_available", Value: 1}, {Key: "capacity", Value: 1}}},
	})
	return err
}

func (r *MongoCatalogRepo) ListRestaurants() ([]models.Restaurant, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.restaurants.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Restaurant
	for cursor.Next(ctx) {
		var rec models.Restaurant
		if err := cursor.Decode(&rec); err != nil {
			return nil, fmt.Errorf("failed to decode restaurant: %w", err)
		}
		free, err := r.countFreeTables(ctx, rec.ID)
		if err != nil {
			return nil, err
		}
		rec.AvailableTables = free
		out = append(out, rec)
	}
	return out, nil
}

func (r *MongoCatalogRepo) countFreeTables(ctx context.Context, restaurantID int) (int, error) {
	n, err := r.tables.CountDocuments(ctx, bson.M{"restaurant_id": restaurantID, "is_available": true})
	if err != nil {
		return 0, fmt.Errorf("failed to count tables for restaurant %d: %w", restaurantID, err)
	}
	return int(n), nil
}

func (r *MongoCatalogRepo) GetRestaurant(id int) (*models.Restaurant, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var rec models.Restaurant
	if err := r.restaurants.FindOne(ctx, bson.M{"_id": id}).Decode(&rec); err != nil {
		return nil, fmt.Errorf("failed to fetch restaurant %d: %w", id, err)
	}
	free, err := r.countFreeTables(ctx, id)
	if err != nil {
		return nil, err
	}
	rec.AvailableTables = free
	return &rec, nil
}

func (r *MongoCatalogRepo) FreeTables(restaurantID, partySize int) ([]models.Table, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"restaurant_id": restaurantID,
		"is_available":  true,
		"capacity":      bson.M{"$gte": partySize},
	}
	opts := options.Find().SetSort(bson.D{{Key: "capacity", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.tables.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query free tables: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Table
	for cursor.Next(ctx) {
		var t models.Table
		if err := cursor.Decode(&t); err != nil {
			return nil, fmt.Errorf("failed to decode table: %w", err)
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *MongoCatalogRepo) GetTable(id int) (*models.Table, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var t models.Table
	if err := r.tables.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return nil, fmt.Errorf("failed to fetch table %d: %w", id, err)
	}
	return &t, nil
}

func (r *MongoCatalogRepo) SetTableAvailability(id int, available bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := r.tables.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"is_available": available}})
	if err != nil {
		return fmt.Errorf("failed to update table %d: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("table %d not found", id)
	}
	return nil
}

func (r *MongoCatalogRepo) InsertRestaurant(rec models.Restaurant) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := r.restaurants.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("failed to insert restaurant %q: %w", rec.Name, err)
	}
	return nil
}

func (r *MongoCatalogRepo) InsertTable(t models.Table) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := r.tables.InsertOne(ctx, t); err != nil {
		return fmt.Errorf("failed to insert table %d: %w", t.ID, err)
	}
	return nil
}

func (r *MongoCatalogRepo) CountRestaurants() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	n, err := r.restaurants.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count restaurants: %w", err)
	}
	return n, nil
}
