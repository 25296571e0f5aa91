package volunteerstore

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
	return &Store{c: db.Collection("volunteers")}
}

// Apply upserts the caller's volunteer application for an event. Keyed
// by (user, event); re-applying resets the status to pending.
func (s *Store) Apply(ctx context.Context, userID, eventID primitive.ObjectID, role string) (models.Volunteer, error) {
	now := time.Now().UTC()

	var v models.Volunteer
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"user": userID, "event": eventID},
		bson.M{
			"$set":         bson.M{"role": role, "status": models.VolunteerPending, "updatedAt": now},
			"$setOnInsert": bson.M{"user": userID, "event": eventID, "createdAt": now},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&v)
	if err != nil {
		return models.Volunteer{}, err
	}
	return v, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Volunteer, error) {
	var v models.Volunteer
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&v); err != nil {
		return models.Volunteer{}, err
	}
	return v, nil
}

// List returns applications, optionally scoped to one event.
func (s *Store) List(ctx context.Context, eventID *primitive.ObjectID) ([]models.Volunteer, error) {
	q := bson.M{}
	if eventID != nil {
		q["event"] = *eventID
	}
	cur, err := s.c.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.Volunteer
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SetStatus updates an application's status and returns the new document.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (models.Volunteer, error) {
	var v models.Volunteer
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&v)
	if err != nil {
		return models.Volunteer{}, err
	}
	return v, nil
}
