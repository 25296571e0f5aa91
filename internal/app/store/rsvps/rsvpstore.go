package rsvpstore

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
	return &Store{c: db.Collection("rsvps")}
}

// Upsert sets the caller's RSVP status for an event. Keyed by
// (user, event): re-RSVP overwrites the prior status, never creating a
// second document.
func (s *Store) Upsert(ctx context.Context, userID, eventID primitive.ObjectID, status string) (models.RSVP, error) {
	if status == "" {
		status = models.RSVPGoing
	}
	now := time.Now().UTC()

	var rsvp models.RSVP
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"user": userID, "event": eventID},
		bson.M{
			"$set":         bson.M{"status": status, "updatedAt": now},
			"$setOnInsert": bson.M{"user": userID, "event": eventID, "createdAt": now},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&rsvp)
	if err != nil {
		return models.RSVP{}, err
	}
	return rsvp, nil
}

// ListByUser returns all of an account's RSVPs.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.RSVP, error) {
	cur, err := s.c.Find(ctx, bson.M{"user": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.RSVP
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Cancel flips an existing RSVP to cancelled. Missing RSVPs are a no-op,
// matching the upsert-by-pair semantics.
func (s *Store) Cancel(ctx context.Context, userID, eventID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"user": userID, "event": eventID},
		bson.M{"$set": bson.M{"status": models.RSVPCancelled, "updatedAt": time.Now().UTC()}})
	return err
}
