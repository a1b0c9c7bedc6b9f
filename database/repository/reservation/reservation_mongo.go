package reservationRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dineflow/database"
	"dineflow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const statusConfirmed = "confirmed"
const statusCancelled = "cancelled"

// MongoReservationRepo implements ReservationRepository using MongoDB.
// Sequential reservation ids come from a counters collection.
type MongoReservationRepo struct {
	reservations *mongo.Collection
	counters     *mongo.Collection
}

// NewMongoReservationRepo creates a ReservationRepository backed by the
// "reservations" collection.
func NewMongoReservationRepo() ReservationRepository {
	repo := &MongoReservationRepo{
		reservations: database.Collection("reservations"),
		counters:     database.Collection("counters"),
	}
	if err := repo.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("reservation repo: failed to ensure indexes: %v", err))
	}
	return repo
}

func (r *MongoReservationRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.reservations.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "table_id", Value: 1}, {Key: "date", Value: 1}, {Key: "time", Value: 1}, {Key: "status", Value: 1}}},
	})
	return err
}

func (r *MongoReservationRepo) nextID(ctx context.Context) (int, error) {
	var doc struct {
		Seq int `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": "reservations"},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate reservation id: %w", err)
	}
	return doc.Seq, nil
}

func (r *MongoReservationRepo) Insert(res models.Reservation) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id, err := r.nextID(ctx)
	if err != nil {
		return 0, err
	}
	res.ID = id
	res.Status = statusConfirmed
	if _, err := r.reservations.InsertOne(ctx, res); err != nil {
		return 0, fmt.Errorf("failed to insert reservation: %w", err)
	}
	return id, nil
}

func (r *MongoReservationRepo) GetByID(id int) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var res models.Reservation
	if err := r.reservations.FindOne(ctx, bson.M{"_id": id}).Decode(&res); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("reservation %d not found", id)
		}
		return nil, fmt.Errorf("failed to fetch reservation %d: %w", id, err)
	}
	return &res, nil
}

func (r *MongoReservationRepo) Cancel(id int) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var res models.Reservation
	err := r.reservations.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": statusConfirmed},
		bson.M{"$set": bson.M{"status": statusCancelled}},
	).Decode(&res)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, fmt.Errorf("reservation %d not found", id)
		}
		return 0, fmt.Errorf("failed to cancel reservation %d: %w", id, err)
	}
	return res.TableID, nil
}

func (r *MongoReservationRepo) TableReserved(tableID int, date, timeStr string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	n, err := r.reservations.CountDocuments(ctx, bson.M{
		"table_id": tableID,
		"date":     date,
		"time":     timeStr,
		"status":   statusConfirmed,
	})
	if err != nil {
		return false, fmt.Errorf("failed to check reservations for table %d: %w", tableID, err)
	}
	return n > 0, nil
}

func (r *MongoReservationRepo) MarkReminderSent(id int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.reservations.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"reminder_sent": true}})
	if err != nil {
		return fmt.Errorf("failed to mark reminder sent for reservation %d: %w", id, err)
	}
	return nil
}
