package eventstore

import (
	"context"
	"strings"
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
	return &Store{c: db.Collection("events")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Event, error) {
	var e models.Event
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return models.Event{}, err
	}
	return e, nil
}

func (s *Store) Create(ctx context.Context, e models.Event) (models.Event, error) {
	now := time.Now().UTC()
	e.ID = primitive.NewObjectID()
	e.Location.Type = "Point"
	e.CreatedAt = now
	e.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.Event{}, err
	}
	return e, nil
}

// Filter narrows List results. Geo filtering needs all three of
// Lat/Lng/RadiusKm set.
type Filter struct {
	Lat, Lng, RadiusKm *float64
	City, State        string
}

// List returns upcoming events (startAt >= now), soonest first, capped
// at 100. With a geo filter the $near sort replaces the startAt sort,
// matching how the store orders $near results by distance.
func (s *Store) List(ctx context.Context, f Filter) ([]models.Event, error) {
	query := bson.M{"startAt": bson.M{"$gte": time.Now().UTC()}}

	geo := f.Lat != nil && f.Lng != nil && f.RadiusKm != nil
	if geo {
		query["location"] = bson.M{"$near": bson.M{
			"$geometry": bson.M{
				"type":        "Point",
				"coordinates": bson.A{*f.Lng, *f.Lat},
			},
			"$maxDistance": *f.RadiusKm * 1000,
		}}
	}
	if city := strings.TrimSpace(f.City); city != "" {
		query["location.city"] = primitive.Regex{Pattern: city, Options: "i"}
	}
	if state := strings.TrimSpace(f.State); state != "" {
		query["location.state"] = primitive.Regex{Pattern: state, Options: "i"}
	}

	opts := options.Find().SetLimit(100)
	if !geo {
		opts.SetSort(bson.D{{Key: "startAt", Value: 1}})
	}

	cur, err := s.c.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []models.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Update applies a partial update and returns the new document.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (models.Event, error) {
	set["updatedAt"] = time.Now().UTC()
	var e models.Event
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&e)
	if err != nil {
		return models.Event{}, err
	}
	return e, nil
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
