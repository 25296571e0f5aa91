package notificationstore

import (
	"context"
	"time"

	"github.com/buzzboard/buzzboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("notifications")}
}

// Notify enqueues a notification for a user. Callers in the membership
// workflow treat this as fire-and-forget: a returned error is logged but
// never fails the transition that produced it.
func (s *Store) Notify(ctx context.Context, userID primitive.ObjectID, typ, message string, meta bson.M) error {
	now := time.Now().UTC()
	_, err := s.c.InsertOne(ctx, models.Notification{
		ID:        primitive.NewObjectID(),
		User:      userID,
		Type:      typ,
		Message:   message,
		Meta:      meta,
		Read:      false,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return err
}

// ListByUser returns the account's notifications, newest first, capped
// at 100 for the polling client.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	cur, err := s.c.Find(ctx, bson.M{"user": userID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(100))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.Notification
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// MarkRead flips the read flag on the account's own notification.
// Returns mongo.ErrNoDocuments when the id does not exist or belongs to
// another account.
func (s *Store) MarkRead(ctx context.Context, id, userID primitive.ObjectID) (models.Notification, error) {
	var n models.Notification
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "user": userID},
		bson.M{"$set": bson.M{"read": true, "updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&n)
	if err != nil {
		return models.Notification{}, err
	}
	return n, nil
}
