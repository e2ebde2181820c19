package slot

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"barberbook/models"
)

// MongoRepo is the alternative Repository implementation, selected with
// STORE_BACKEND=mongo.
type MongoRepo struct {
	coll *mongo.Collection
}

func NewMongoRepo(client *mongo.Client, dbName string) *MongoRepo {
	return &MongoRepo{coll: client.Database(dbName).Collection(slotsCollection)}
}

func (r *MongoRepo) GetSlot(ctx context.Context, id string) (*models.Slot, error) {
	var s models.Slot
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slot %s: %w", id, err)
	}
	return &s, nil
}

// BookSlot relies on a conditional update: the filter matches only while
// status is still available, so Mongo applies at most one transition no
// matter how many deliveries race.
func (r *MongoRepo) BookSlot(ctx context.Context, id string, details models.BookingDetails) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"_id": id, "status": models.SlotStatusAvailable}
	update := bson.M{"$set": bson.M{
		"status":        models.SlotStatusBooked,
		"customerName":  details.CustomerName,
		"customerPhone": details.CustomerPhone,
		"customerEmail": details.CustomerEmail,
		"paymentType":   details.PaymentType,
		"serviceType":   details.ServiceType,
		"address":       details.Address,
		"amount":        details.Amount,
		"bookedAt":      details.BookedAt,
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to book slot %s: %w", id, err)
	}
	if res.MatchedCount == 1 {
		return true, nil
	}

	// No match: either the slot is gone or it lost the race.
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to check slot %s after conditional update: %w", id, err)
	}
	if n == 0 {
		return false, ErrNotFound
	}
	return false, nil
}

func (r *MongoRepo) ListSlots(ctx context.Context) ([]models.Slot, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	defer cursor.Close(ctx)

	var slots []models.Slot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("failed to decode slots: %w", err)
	}
	return slots, nil
}
