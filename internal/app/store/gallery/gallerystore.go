package gallerystore

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
	return &Store{c: db.Collection("galleries")}
}

// Append pushes images onto the event's gallery document, creating it on
// first upload. One document per event.
func (s *Store) Append(ctx context.Context, eventID, uploaderID primitive.ObjectID, images []models.GalleryImage) (models.Gallery, error) {
	if images == nil {
		images = []models.GalleryImage{}
	}
	now := time.Now().UTC()

	var g models.Gallery
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"event": eventID},
		bson.M{
			"$push":        bson.M{"images": bson.M{"$each": images}},
			"$set":         bson.M{"updatedAt": now},
			"$setOnInsert": bson.M{"event": eventID, "uploadedBy": uploaderID, "createdAt": now},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&g)
	if err != nil {
		return models.Gallery{}, err
	}
	return g, nil
}

// List returns galleries newest first, optionally scoped to one event.
func (s *Store) List(ctx context.Context, eventID *primitive.ObjectID) ([]models.Gallery, error) {
	q := bson.M{}
	if eventID != nil {
		q["event"] = *eventID
	}
	cur, err := s.c.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.Gallery
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
